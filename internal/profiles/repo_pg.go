package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const profileColumns = "id, nome, idade, bairro, escolaridade, experiencia, interesses, horarios_disponiveis, tem_internet, tem_transporte, created_at, updated_at"

func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	const query = "SELECT " + profileColumns + " FROM profiles WHERE id = $1"

	var p Profile
	var idade sql.NullInt64
	var bairro, escolaridade, experiencia, horarios sql.NullString
	var interesses []byte
	var temInternet, temTransporte sql.NullBool

	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.ID,
		&p.Nome,
		&idade,
		&bairro,
		&escolaridade,
		&experiencia,
		&interesses,
		&horarios,
		&temInternet,
		&temTransporte,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	if idade.Valid {
		v := int(idade.Int64)
		p.Idade = &v
	}
	p.Bairro = bairro.String
	p.Escolaridade = escolaridade.String
	p.Experiencia = experiencia.String
	p.HorariosDisponiveis = horarios.String
	if temInternet.Valid {
		v := temInternet.Bool
		p.TemInternet = &v
	}
	if temTransporte.Valid {
		v := temTransporte.Bool
		p.TemTransporte = &v
	}
	if len(interesses) > 0 {
		if err := json.Unmarshal(interesses, &p.Interesses); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (id, nome, idade, bairro, escolaridade, experiencia, interesses, horarios_disponiveis, tem_internet, tem_transporte, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
ON CONFLICT (id) DO UPDATE SET
    nome = EXCLUDED.nome,
    idade = EXCLUDED.idade,
    bairro = EXCLUDED.bairro,
    escolaridade = EXCLUDED.escolaridade,
    experiencia = EXCLUDED.experiencia,
    interesses = EXCLUDED.interesses,
    horarios_disponiveis = EXCLUDED.horarios_disponiveis,
    tem_internet = EXCLUDED.tem_internet,
    tem_transporte = EXCLUDED.tem_transporte,
    updated_at = EXCLUDED.updated_at`

	var interesses any
	if len(profile.Interesses) > 0 {
		b, err := json.Marshal(profile.Interesses)
		if err != nil {
			return err
		}
		interesses = b
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Nome,
		nullInt(profile.Idade),
		nullString(profile.Bairro),
		nullString(profile.Escolaridade),
		nullString(profile.Experiencia),
		interesses,
		nullString(profile.HorariosDisponiveis),
		nullBool(profile.TemInternet),
		nullBool(profile.TemTransporte),
		time.Now().UTC(),
	)
	return err
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

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
