package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gestasai/academy-tutor/internal/core"
	"github.com/gestasai/academy-tutor/pkg/log"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (h *MessagesRepo) AddMessage(ctx context.Context, sessionID string, msg core.ChatMessage) error {
	query := `INSERT INTO messages (session_id, role, content, result_type, source) VALUES (?, ?, ?, ?, ?)`

	_, err := h.db.ExecContext(ctx, query, sessionID, msg.Role, msg.Content, msg.Type, msg.Source)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (h *MessagesRepo) GetMessages(ctx context.Context, sessionID string, limit int) ([]core.ChatMessage, error) {
	// Fetch the LAST 'limit' messages by ordering DESC
	query := `SELECT role, content, result_type, source FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := h.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.ChatMessage
	for rows.Next() {
		var msg core.ChatMessage
		var content sql.NullString

		if err := rows.Scan(&msg.Role, &content, &msg.Type, &msg.Source); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Content = content.String

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query returned newest first; flip back to chronological order
	// before handing the window to the provider.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Msg("loaded history messages")
	return messages, nil
}
