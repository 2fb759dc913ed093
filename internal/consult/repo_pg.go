package consult

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, msg ChatMessage) (ChatMessage, error) {
	const query = `
INSERT INTO chat_messages (document_id, user_id, sender, text, created_at)
VALUES ($1, $2, $3, $4, now())
RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctx, query,
		msg.DocumentID,
		msg.UserID,
		msg.Sender,
		msg.Text,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return ChatMessage{}, err
	}
	return msg, nil
}

func (r *PGRepo) ListByDocument(ctx context.Context, documentID string) ([]ChatMessage, error) {
	const query = `
SELECT id, document_id, user_id, sender, text, created_at
FROM chat_messages
WHERE document_id = $1
ORDER BY id ASC`

	rows, err := r.DB.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChatMessage
	for rows.Next() {
		var msg ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.DocumentID,
			&msg.UserID,
			&msg.Sender,
			&msg.Text,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
