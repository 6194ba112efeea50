package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gestasai/academy-tutor/internal/core"
)

// SettingsRepo holds the single provider configuration row. A missing
// row reads back as zero-value settings, not an error.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context) (core.Settings, error) {
	query := `SELECT gemini_api_key, gemini_model FROM settings WHERE id = 1`

	var s core.Settings
	err := r.db.QueryRowContext(ctx, query).Scan(&s.GeminiAPIKey, &s.GeminiModel)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Settings{}, nil
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s core.Settings) error {
	query := `
		INSERT INTO settings (id, gemini_api_key, gemini_model, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			gemini_api_key = excluded.gemini_api_key,
			gemini_model = excluded.gemini_model,
			updated_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query, s.GeminiAPIKey, s.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
