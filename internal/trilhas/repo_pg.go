package trilhas

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

const trilhaColumns = "id, titulo, descricao, categoria, carga_horaria, nivel, link, ativa, created_at, updated_at"

func (r *PGRepo) List(ctx context.Context, activeOnly bool) ([]Trilha, error) {
	query := "SELECT " + trilhaColumns + " FROM trilhas"
	if activeOnly {
		query += " WHERE ativa"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Trilha{}
	for rows.Next() {
		t, err := scanTrilha(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Trilha, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+trilhaColumns+" FROM trilhas WHERE id = $1", id)
	t, err := scanTrilha(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trilha{}, ErrNotFound
		}
		return Trilha{}, err
	}
	return t, nil
}

func (r *PGRepo) Create(ctx context.Context, trilha Trilha) error {
	const query = `
INSERT INTO trilhas (id, titulo, descricao, categoria, carga_horaria, nivel, link, ativa, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		trilha.ID,
		trilha.Titulo,
		trilha.Descricao,
		nullString(trilha.Categoria),
		nullInt(trilha.CargaHoraria),
		nullString(trilha.Nivel),
		nullString(trilha.Link),
		trilha.Ativa,
		time.Now().UTC(),
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, trilha Trilha) error {
	const query = `
UPDATE trilhas
SET titulo = $2, descricao = $3, categoria = $4, carga_horaria = $5, nivel = $6, link = $7, ativa = $8, updated_at = $9
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		trilha.ID,
		trilha.Titulo,
		trilha.Descricao,
		nullString(trilha.Categoria),
		nullInt(trilha.CargaHoraria),
		nullString(trilha.Nivel),
		nullString(trilha.Link),
		trilha.Ativa,
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
	res, err := r.DB.ExecContext(ctx, "DELETE FROM trilhas WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CreateInscricao(ctx context.Context, inscricao Inscricao) error {
	const query = `
INSERT INTO trilha_inscricoes (id, user_id, trilha_id, progresso, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		inscricao.ID,
		inscricao.UserID,
		inscricao.TrilhaID,
		inscricao.Progresso,
		inscricao.CreatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "trilha_inscricoes_user_id_trilha_id_key") {
		return ErrAlreadyEnrolled
	}
	return err
}

func (r *PGRepo) ListInscricoesByUser(ctx context.Context, userID string) ([]Inscricao, error) {
	const query = `
SELECT id, user_id, trilha_id, progresso, created_at, updated_at
FROM trilha_inscricoes
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Inscricao{}
	for rows.Next() {
		var i Inscricao
		if err := rows.Scan(&i.ID, &i.UserID, &i.TrilhaID, &i.Progresso, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *PGRepo) UpdateProgresso(ctx context.Context, userID, trilhaID string, progresso int) error {
	const query = `
UPDATE trilha_inscricoes
SET progresso = $3, updated_at = $4
WHERE user_id = $1 AND trilha_id = $2`

	res, err := r.DB.ExecContext(ctx, query, userID, trilhaID, progresso, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotEnrolled
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrilha(row rowScanner) (Trilha, error) {
	var t Trilha
	var categoria, nivel, link sql.NullString
	var cargaHoraria sql.NullInt64
	err := row.Scan(
		&t.ID,
		&t.Titulo,
		&t.Descricao,
		&categoria,
		&cargaHoraria,
		&nivel,
		&link,
		&t.Ativa,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return Trilha{}, err
	}
	t.Categoria = categoria.String
	t.Nivel = nivel.String
	t.Link = link.String
	if cargaHoraria.Valid {
		v := int(cargaHoraria.Int64)
		t.CargaHoraria = &v
	}
	return t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

var _ Repo = (*PGRepo)(nil)
