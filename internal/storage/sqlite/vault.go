package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gestasai/academy-tutor/internal/core"
)

type VaultRepo struct {
	db *sql.DB
}

func NewVaultRepo(db *sql.DB) *VaultRepo {
	return &VaultRepo{db: db}
}

func (r *VaultRepo) ListByLesson(ctx context.Context, lessonID string) ([]core.VaultEntry, error) {
	query := `SELECT id, lesson_id, query, response, created_at FROM vault_entries WHERE lesson_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vault entries: %w", err)
	}
	defer rows.Close()

	var entries []core.VaultEntry
	for rows.Next() {
		var e core.VaultEntry
		if err := rows.Scan(&e.ID, &e.LessonID, &e.Query, &e.Response, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vault entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *VaultRepo) Create(ctx context.Context, entry core.VaultEntry) error {
	query := `INSERT INTO vault_entries (id, lesson_id, query, response, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.LessonID, entry.Query, entry.Response, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vault entry: %w", err)
	}
	return nil
}
