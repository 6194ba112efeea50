// Package tutor handles one chat turn end to end: slash commands, session
// lesson lookup, the resolution chain, and the persisted conversation log.
// Both transports delegate here so they stay thin.
package tutor

import (
	"context"
	"fmt"

	"github.com/gestasai/academy-tutor/internal/config"
	"github.com/gestasai/academy-tutor/internal/core"
	"github.com/gestasai/academy-tutor/pkg/log"
)

type Tutor struct {
	cfg      *config.AppConfig
	resolver core.Resolver
	lessons  core.LessonRepository
	messages core.MessagesRepository
	state    core.SessionState
	router   core.CmdRouter
}

func New(
	cfg *config.AppConfig,
	resolver core.Resolver,
	lessons core.LessonRepository,
	messages core.MessagesRepository,
	state core.SessionState,
	router core.CmdRouter,
) *Tutor {
	return &Tutor{
		cfg:      cfg,
		resolver: resolver,
		lessons:  lessons,
		messages: messages,
		state:    state,
		router:   router,
	}
}

// HandleMessage processes a single learner input and returns the renderable
// result. Slash commands bypass the resolver and the conversation log.
func (t *Tutor) HandleMessage(ctx context.Context, sessionID, input string) (core.ResolutionResult, error) {
	logger := log.FromCtx(ctx)

	if out, handled := t.router.Execute(ctx, sessionID, input); handled {
		return core.ResolutionResult{Text: out}, nil
	}

	// History is read before the new input is appended; the resolver adds
	// the current query as its own turn.
	history, err := t.messages.GetMessages(ctx, sessionID, t.cfg.HistoryWindowSize)
	if err != nil {
		logger.Warn().Err(err).Msg("history unavailable, resolving without it")
		history = nil
	}

	userMsg := core.ChatMessage{Role: core.RoleUser, Content: input}
	if err := t.messages.AddMessage(ctx, sessionID, userMsg); err != nil {
		return core.ResolutionResult{}, fmt.Errorf("failed to save user message: %w", err)
	}

	res := t.resolver.Resolve(ctx, input, t.lesson(ctx, sessionID), history)

	assistantMsg := core.ChatMessage{
		Role:    core.RoleAssistant,
		Content: res.Text,
		Type:    res.Type,
		Source:  res.Source,
	}
	if err := t.messages.AddMessage(ctx, sessionID, assistantMsg); err != nil {
		logger.Error().Err(err).Msg("failed to save assistant message")
	}

	return res, nil
}

func (t *Tutor) lesson(ctx context.Context, sessionID string) *core.LessonContext {
	lessonID := t.state.LessonID(sessionID)
	if lessonID == "" {
		return nil
	}

	lesson, err := t.lessons.Get(ctx, lessonID)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("lesson", lessonID).
			Msg("lesson load failed, answering without lesson scope")
		return nil
	}
	if lesson == nil {
		log.FromCtx(ctx).Warn().Str("lesson", lessonID).Msg("selected lesson not found")
	}
	return lesson
}
