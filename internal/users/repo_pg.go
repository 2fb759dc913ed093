package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, login_id, user_name, password, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.LoginID,
		user.UserName,
		user.PasswordHash,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) GetByLoginID(ctx context.Context, loginID string) (User, error) {
	const query = `
SELECT id, login_id, user_name, password, created_at
FROM users
WHERE login_id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, loginID))
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, login_id, user_name, password, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.LoginID,
		&user.UserName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// isUniqueViolation matches pgx-reported unique constraint errors without
// importing the driver error types here.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
