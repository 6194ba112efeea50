package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}

// SessionState tracks per-session runtime choices (active lesson) and the
// deployment-wide model selection.
type SessionState interface {
	LessonID(sessionID string) string
	SetLessonID(sessionID, lessonID string)
	ChangeModel(ctx context.Context, model string) error
	CurrentModel(ctx context.Context) (string, error)
}
