package core

import (
	"context"
	"time"
)

// VaultEntry is a previously approved question/answer pair, scoped to a
// lesson. Immutable once written; deletion happens only when the lesson
// itself is deleted, outside this engine.
type VaultEntry struct {
	ID        string    `json:"id"`
	LessonID  string    `json:"lesson_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings is the single per-deployment provider configuration record.
type Settings struct {
	GeminiAPIKey string `json:"gemini_api_key"`
	GeminiModel  string `json:"gemini_model"`
}

type VaultRepository interface {
	ListByLesson(ctx context.Context, lessonID string) ([]VaultEntry, error)
	Create(ctx context.Context, entry VaultEntry) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

type LessonRepository interface {
	Get(ctx context.Context, id string) (*LessonContext, error)
	List(ctx context.Context) ([]LessonContext, error)
	Upsert(ctx context.Context, lesson *LessonContext) error
}

type MessagesRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg ChatMessage) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]ChatMessage, error)
}
