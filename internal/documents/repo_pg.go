package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, title, storage_key, report_key, extracted_text, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	var reportKey sql.NullString
	if doc.ReportKey != "" {
		reportKey = sql.NullString{String: doc.ReportKey, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.StorageKey,
		reportKey,
		doc.ExtractedText,
		doc.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, title, storage_key, report_key, extracted_text, created_at, updated_at
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`

	var doc Document
	var reportKey sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID, documentID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.StorageKey,
		&reportKey,
		&doc.ExtractedText,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	if reportKey.Valid {
		doc.ReportKey = reportKey.String
	}
	return doc, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, title, storage_key, report_key, extracted_text, created_at, updated_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var reportKey sql.NullString
		if err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.Title,
			&doc.StorageKey,
			&reportKey,
			&doc.ExtractedText,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if reportKey.Valid {
			doc.ReportKey = reportKey.String
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
