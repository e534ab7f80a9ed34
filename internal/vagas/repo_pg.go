package vagas

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

const vagaColumns = "id, titulo, empresa, descricao, requisitos, local, tipo, ativa, created_at, updated_at"

func (r *PGRepo) List(ctx context.Context, activeOnly bool) ([]Vaga, error) {
	query := "SELECT " + vagaColumns + " FROM vagas"
	if activeOnly {
		query += " WHERE ativa"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Vaga{}
	for rows.Next() {
		v, err := scanVaga(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Vaga, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+vagaColumns+" FROM vagas WHERE id = $1", id)
	v, err := scanVaga(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vaga{}, ErrNotFound
		}
		return Vaga{}, err
	}
	return v, nil
}

func (r *PGRepo) Create(ctx context.Context, vaga Vaga) error {
	const query = `
INSERT INTO vagas (id, titulo, empresa, descricao, requisitos, local, tipo, ativa, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		vaga.ID,
		vaga.Titulo,
		vaga.Empresa,
		vaga.Descricao,
		nullString(vaga.Requisitos),
		nullString(vaga.Local),
		nullString(vaga.Tipo),
		vaga.Ativa,
		time.Now().UTC(),
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, vaga Vaga) error {
	const query = `
UPDATE vagas
SET titulo = $2, empresa = $3, descricao = $4, requisitos = $5, local = $6, tipo = $7, ativa = $8, updated_at = $9
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		vaga.ID,
		vaga.Titulo,
		vaga.Empresa,
		vaga.Descricao,
		nullString(vaga.Requisitos),
		nullString(vaga.Local),
		nullString(vaga.Tipo),
		vaga.Ativa,
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

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM vagas WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CreateCandidatura(ctx context.Context, candidatura Candidatura) error {
	const query = `
INSERT INTO candidaturas (id, user_id, vaga_id, status, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		candidatura.ID,
		candidatura.UserID,
		candidatura.VagaID,
		candidatura.Status,
		candidatura.CreatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "candidaturas_user_id_vaga_id_key") {
		return ErrAlreadyApplied
	}
	return err
}

func (r *PGRepo) ListCandidaturasByUser(ctx context.Context, userID string) ([]Candidatura, error) {
	const query = `
SELECT id, user_id, vaga_id, status, created_at
FROM candidaturas
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Candidatura{}
	for rows.Next() {
		var c Candidatura
		if err := rows.Scan(&c.ID, &c.UserID, &c.VagaID, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVaga(row rowScanner) (Vaga, error) {
	var v Vaga
	var requisitos, local, tipo sql.NullString
	err := row.Scan(
		&v.ID,
		&v.Titulo,
		&v.Empresa,
		&v.Descricao,
		&requisitos,
		&local,
		&tipo,
		&v.Ativa,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return Vaga{}, err
	}
	v.Requisitos = requisitos.String
	v.Local = local.String
	v.Tipo = tipo.String
	return v, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
