package command

import (
	"context"
	"fmt"

	"github.com/gestasai/academy-tutor/internal/core"
)

type ModelCommand struct {
	state     core.SessionState
	formatter *ResponseFormatter
}

func NewModelCommand(state core.SessionState) *ModelCommand {
	return &ModelCommand{
		state:     state,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show or change the generation model"
}

func (c *ModelCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		model, err := c.state.CurrentModel(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to read model: %w", err)
		}
		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Model", model),
			c.formatter.Usage("/model [model-id]"),
			c.formatter.Examples([]string{
				"/model gemini-1.5-flash",
				"/model gemini-2.0-flash",
			}),
		), nil
	}

	if err := c.state.ChangeModel(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to set model: %w", err)
	}

	return c.formatter.Combine(
		c.formatter.Success(fmt.Sprintf("Model changed to: `%s`", args[0])),
	), nil
}
