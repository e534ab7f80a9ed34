package curriculos

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const curriculoColumns = "id, user_id, file_name, file_path, file_size, uploaded_at, updated_at"

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Curriculo, error) {
	return r.getOne(ctx, "SELECT "+curriculoColumns+" FROM curriculos WHERE user_id = $1", userID)
}

func (r *PGRepo) GetByPath(ctx context.Context, userID, filePath string) (Curriculo, error) {
	return r.getOne(
		ctx,
		"SELECT "+curriculoColumns+" FROM curriculos WHERE user_id = $1 AND file_path = $2",
		userID,
		filePath,
	)
}

// Upsert replaces the user's résumé record in place. The row keeps its
// original ID across replacements.
func (r *PGRepo) Upsert(ctx context.Context, curriculo Curriculo) (Curriculo, error) {
	const query = `
INSERT INTO curriculos (id, user_id, file_name, file_path, file_size, uploaded_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (user_id) DO UPDATE SET
    file_name = EXCLUDED.file_name,
    file_path = EXCLUDED.file_path,
    file_size = EXCLUDED.file_size,
    uploaded_at = EXCLUDED.uploaded_at,
    updated_at = EXCLUDED.updated_at
RETURNING ` + curriculoColumns

	var stored Curriculo
	err := r.DB.QueryRowContext(
		ctx,
		query,
		curriculo.ID,
		curriculo.UserID,
		curriculo.FileName,
		curriculo.FilePath,
		curriculo.FileSize,
		time.Now().UTC(),
	).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.FileName,
		&stored.FilePath,
		&stored.FileSize,
		&stored.UploadedAt,
		&stored.UpdatedAt,
	)
	if err != nil {
		return Curriculo{}, err
	}
	return stored, nil
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM curriculos WHERE user_id = $1", userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) getOne(ctx context.Context, query string, args ...any) (Curriculo, error) {
	var c Curriculo
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.UserID,
		&c.FileName,
		&c.FilePath,
		&c.FileSize,
		&c.UploadedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Curriculo{}, ErrNotFound
		}
		return Curriculo{}, err
	}
	return c, nil
}

var _ Repo = (*PGRepo)(nil)
