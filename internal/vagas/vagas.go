package vagas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Vaga is a job opening published by the portal. Residents browse active
// openings and apply once per vaga.
type Vaga struct {
	ID         string    `json:"id"`
	Titulo     string    `json:"titulo"`
	Empresa    string    `json:"empresa"`
	Descricao  string    `json:"descricao"`
	Requisitos string    `json:"requisitos,omitempty"`
	Local      string    `json:"local,omitempty"`
	Tipo       string    `json:"tipo,omitempty"`
	Ativa      bool      `json:"ativa"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Candidatura is a user's application to a vaga.
type Candidatura struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	VagaID    string    `json:"vaga_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusEnviada is the initial application status.
const StatusEnviada = "enviada"

var (
	ErrNotFound       = errors.New("vaga not found")
	ErrValidation     = errors.New("invalid vaga")
	ErrAlreadyApplied = errors.New("already applied to this vaga")
)

// Repo stores job openings and applications.
type Repo interface {
	List(ctx context.Context, activeOnly bool) ([]Vaga, error)
	Get(ctx context.Context, id string) (Vaga, error)
	Create(ctx context.Context, vaga Vaga) error
	Update(ctx context.Context, vaga Vaga) error
	Delete(ctx context.Context, id string) error

	CreateCandidatura(ctx context.Context, candidatura Candidatura) error
	ListCandidaturasByUser(ctx context.Context, userID string) ([]Candidatura, error)
}

// Service owns vaga reads, admin writes and applications.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]Vaga, error) {
	return s.Repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]Vaga, error) {
	return s.Repo.List(ctx, false)
}

func (s *Service) Get(ctx context.Context, id string) (Vaga, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, vaga Vaga) (Vaga, error) {
	if err := validate(&vaga); err != nil {
		return Vaga{}, err
	}
	if err := s.Repo.Create(ctx, vaga); err != nil {
		return Vaga{}, err
	}
	return s.Repo.Get(ctx, vaga.ID)
}

func (s *Service) Update(ctx context.Context, vaga Vaga) (Vaga, error) {
	if err := validate(&vaga); err != nil {
		return Vaga{}, err
	}
	if err := s.Repo.Update(ctx, vaga); err != nil {
		return Vaga{}, err
	}
	return s.Repo.Get(ctx, vaga.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Apply records the user's application to an active vaga.
func (s *Service) Apply(ctx context.Context, userID, vagaID string, candidatura Candidatura) (Candidatura, error) {
	vaga, err := s.Repo.Get(ctx, vagaID)
	if err != nil {
		return Candidatura{}, err
	}
	if !vaga.Ativa {
		return Candidatura{}, ErrNotFound
	}

	candidatura.UserID = userID
	candidatura.VagaID = vagaID
	candidatura.Status = StatusEnviada
	candidatura.CreatedAt = time.Now().UTC()
	if err := s.Repo.CreateCandidatura(ctx, candidatura); err != nil {
		return Candidatura{}, err
	}
	return candidatura, nil
}

// Applications lists the user's own applications.
func (s *Service) Applications(ctx context.Context, userID string) ([]Candidatura, error) {
	return s.Repo.ListCandidaturasByUser(ctx, userID)
}

func validate(vaga *Vaga) error {
	vaga.Titulo = strings.TrimSpace(vaga.Titulo)
	vaga.Empresa = strings.TrimSpace(vaga.Empresa)
	vaga.Descricao = strings.TrimSpace(vaga.Descricao)
	if vaga.Titulo == "" {
		return fmt.Errorf("%w: titulo is required", ErrValidation)
	}
	if vaga.Empresa == "" {
		return fmt.Errorf("%w: empresa is required", ErrValidation)
	}
	if vaga.Descricao == "" {
		return fmt.Errorf("%w: descricao is required", ErrValidation)
	}
	return nil
}
