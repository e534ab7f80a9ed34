package noticias

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

const noticiaColumns = "id, titulo, resumo, conteudo, imagem_url, publicada, created_at, updated_at"

func (r *PGRepo) List(ctx context.Context, publishedOnly bool) ([]Noticia, error) {
	query := "SELECT " + noticiaColumns + " FROM noticias"
	if publishedOnly {
		query += " WHERE publicada"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Noticia{}
	for rows.Next() {
		n, err := scanNoticia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Noticia, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+noticiaColumns+" FROM noticias WHERE id = $1", id)
	n, err := scanNoticia(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Noticia{}, ErrNotFound
		}
		return Noticia{}, err
	}
	return n, nil
}

func (r *PGRepo) Create(ctx context.Context, noticia Noticia) error {
	const query = `
INSERT INTO noticias (id, titulo, resumo, conteudo, imagem_url, publicada, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		noticia.ID,
		noticia.Titulo,
		nullString(noticia.Resumo),
		noticia.Conteudo,
		nullString(noticia.ImagemURL),
		noticia.Publicada,
		time.Now().UTC(),
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, noticia Noticia) error {
	const query = `
UPDATE noticias
SET titulo = $2, resumo = $3, conteudo = $4, imagem_url = $5, publicada = $6, updated_at = $7
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		noticia.ID,
		noticia.Titulo,
		nullString(noticia.Resumo),
		noticia.Conteudo,
		nullString(noticia.ImagemURL),
		noticia.Publicada,
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
	res, err := r.DB.ExecContext(ctx, "DELETE FROM noticias WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNoticia(row rowScanner) (Noticia, error) {
	var n Noticia
	var resumo, imagemURL sql.NullString
	err := row.Scan(
		&n.ID,
		&n.Titulo,
		&resumo,
		&n.Conteudo,
		&imagemURL,
		&n.Publicada,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return Noticia{}, err
	}
	n.Resumo = resumo.String
	n.ImagemURL = imagemURL.String
	return n, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
