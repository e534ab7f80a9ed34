package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userColumns = "id, email, password_hash, nome, role, google_sub, created_at, updated_at"

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, password_hash, nome, role, google_sub, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	now := time.Now().UTC()
	_, err := r.DB.ExecContext(
		ctx,
		query,
		user.ID,
		strings.ToLower(user.Email),
		nullString(user.PasswordHash),
		user.Nome,
		user.Role,
		nullString(user.GoogleSub),
		now,
	)
	if err != nil && strings.Contains(err.Error(), "users_email_key") {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", userID)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", strings.ToLower(email))
}

func (r *PGRepo) GetByGoogleSub(ctx context.Context, sub string) (User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE google_sub = $1", sub)
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	const query = `
UPDATE users
SET email = $2, password_hash = $3, nome = $4, role = $5, google_sub = $6, updated_at = $7
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		user.ID,
		strings.ToLower(user.Email),
		nullString(user.PasswordHash),
		user.Nome,
		user.Role,
		nullString(user.GoogleSub),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	var passwordHash, googleSub sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&passwordHash,
		&user.Nome,
		&user.Role,
		&googleSub,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if passwordHash.Valid {
		user.PasswordHash = passwordHash.String
	}
	if googleSub.Valid {
		user.GoogleSub = googleSub.String
	}
	return user, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
