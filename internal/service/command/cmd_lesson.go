package command

import (
	"context"
	"fmt"

	"github.com/gestasai/academy-tutor/internal/core"
)

type LessonCommand struct {
	state     core.SessionState
	lessons   core.LessonRepository
	formatter *ResponseFormatter
}

func NewLessonCommand(state core.SessionState, lessons core.LessonRepository) *LessonCommand {
	return &LessonCommand{
		state:     state,
		lessons:   lessons,
		formatter: NewResponseFormatter(),
	}
}

func (c *LessonCommand) Name() string {
	return "lesson"
}

func (c *LessonCommand) Description() string {
	return "Show or change the active lesson"
}

func (c *LessonCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.show(ctx, sessionID)
	}

	id := args[0]
	lesson, err := c.lessons.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return "", fmt.Errorf("unknown lesson: %s", id)
	}

	c.state.SetLessonID(sessionID, id)
	return c.formatter.Combine(
		c.formatter.Success(fmt.Sprintf("Active lesson: `%s` — %s", lesson.ID, lesson.Title)),
	), nil
}

func (c *LessonCommand) show(ctx context.Context, sessionID string) (string, error) {
	current := c.state.LessonID(sessionID)

	lessons, err := c.lessons.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list lessons: %w", err)
	}

	items := make([]string, 0, len(lessons))
	for _, l := range lessons {
		marker := ""
		if l.ID == current {
			marker = " (active)"
		}
		items = append(items, fmt.Sprintf("`%s` — %s%s", l.ID, l.Title, marker))
	}
	if len(items) == 0 {
		items = append(items, "no lessons imported yet")
	}

	return c.formatter.Combine(
		c.formatter.Info("Lessons"),
		c.formatter.List(items),
		c.formatter.Usage("/lesson [lesson-id]"),
	), nil
}
