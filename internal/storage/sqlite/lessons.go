package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gestasai/academy-tutor/internal/core"
)

// LessonRepo stores lesson contexts as JSON documents. Lessons arrive as
// structured exports and are always read back whole, so a payload column
// beats a dozen join tables here.
type LessonRepo struct {
	db *sql.DB
}

func NewLessonRepo(db *sql.DB) *LessonRepo {
	return &LessonRepo{db: db}
}

func (r *LessonRepo) Get(ctx context.Context, id string) (*core.LessonContext, error) {
	query := `SELECT payload FROM lessons WHERE id = ?`

	var payload string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson: %w", err)
	}

	var lesson core.LessonContext
	if err := json.Unmarshal([]byte(payload), &lesson); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lesson %s: %w", id, err)
	}
	return &lesson, nil
}

func (r *LessonRepo) List(ctx context.Context) ([]core.LessonContext, error) {
	query := `SELECT payload FROM lessons ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []core.LessonContext
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		var lesson core.LessonContext
		if err := json.Unmarshal([]byte(payload), &lesson); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

func (r *LessonRepo) Upsert(ctx context.Context, lesson *core.LessonContext) error {
	if lesson.ID == "" {
		return errors.New("lesson id is required")
	}

	payload, err := json.Marshal(lesson)
	if err != nil {
		return fmt.Errorf("failed to marshal lesson: %w", err)
	}

	query := `
		INSERT INTO lessons (id, title, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, lesson.ID, lesson.Title, string(payload)); err != nil {
		return fmt.Errorf("failed to upsert lesson: %w", err)
	}
	return nil
}
