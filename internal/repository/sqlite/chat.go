package sqlite

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/xid"

	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

var _ repository.ChatRepository = (*DB)(nil)

// CreateMessage keeps a caller-supplied timestamp (seeded history) and
// assigns a fresh ID.
func (db *DB) CreateMessage(ctx context.Context, m *model.ChatMessage) error {
	m.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO chat_messages (id, team_id, sender_id, sender_name, sender_initials, text, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.TeamID, m.SenderID, m.SenderName, m.SenderInitials, m.Text, m.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting chat message: %w", err)
	}
	return nil
}

func (db *DB) ListMessages(ctx context.Context, teamID string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = -1
	}
	// Newest N, then reversed so the page reads top to bottom.
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, team_id, sender_id, sender_name, sender_initials, text, timestamp
		 FROM chat_messages WHERE team_id = ?
		 ORDER BY timestamp DESC, id DESC LIMIT ?`, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing chat for %s: %w", teamID, err)
	}
	defer rows.Close()

	msgs := []model.ChatMessage{}
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.TeamID, &m.SenderID, &m.SenderName, &m.SenderInitials, &m.Text, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("sqlite: scanning chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(msgs)
	return msgs, nil
}
