package trilhas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Trilha is a learning track offered by the portal.
type Trilha struct {
	ID           string    `json:"id"`
	Titulo       string    `json:"titulo"`
	Descricao    string    `json:"descricao"`
	Categoria    string    `json:"categoria,omitempty"`
	CargaHoraria *int      `json:"carga_horaria,omitempty"`
	Nivel        string    `json:"nivel,omitempty"`
	Link         string    `json:"link,omitempty"`
	Ativa        bool      `json:"ativa"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Inscricao is a user's enrollment in a trilha, with progress from 0 to 100.
type Inscricao struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TrilhaID  string    `json:"trilha_id"`
	Progresso int       `json:"progresso"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound        = errors.New("trilha not found")
	ErrValidation      = errors.New("invalid trilha")
	ErrAlreadyEnrolled = errors.New("already enrolled in this trilha")
	ErrNotEnrolled     = errors.New("not enrolled in this trilha")
)

// Repo stores learning tracks and enrollments.
type Repo interface {
	List(ctx context.Context, activeOnly bool) ([]Trilha, error)
	Get(ctx context.Context, id string) (Trilha, error)
	Create(ctx context.Context, trilha Trilha) error
	Update(ctx context.Context, trilha Trilha) error
	Delete(ctx context.Context, id string) error

	CreateInscricao(ctx context.Context, inscricao Inscricao) error
	ListInscricoesByUser(ctx context.Context, userID string) ([]Inscricao, error)
	UpdateProgresso(ctx context.Context, userID, trilhaID string, progresso int) error
}

// Service owns trilha reads, admin writes and enrollments.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]Trilha, error) {
	return s.Repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]Trilha, error) {
	return s.Repo.List(ctx, false)
}

func (s *Service) Get(ctx context.Context, id string) (Trilha, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, trilha Trilha) (Trilha, error) {
	if err := validate(&trilha); err != nil {
		return Trilha{}, err
	}
	if err := s.Repo.Create(ctx, trilha); err != nil {
		return Trilha{}, err
	}
	return s.Repo.Get(ctx, trilha.ID)
}

func (s *Service) Update(ctx context.Context, trilha Trilha) (Trilha, error) {
	if err := validate(&trilha); err != nil {
		return Trilha{}, err
	}
	if err := s.Repo.Update(ctx, trilha); err != nil {
		return Trilha{}, err
	}
	return s.Repo.Get(ctx, trilha.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Enroll adds the user to an active trilha with zero progress.
func (s *Service) Enroll(ctx context.Context, userID, trilhaID string, inscricao Inscricao) (Inscricao, error) {
	trilha, err := s.Repo.Get(ctx, trilhaID)
	if err != nil {
		return Inscricao{}, err
	}
	if !trilha.Ativa {
		return Inscricao{}, ErrNotFound
	}

	now := time.Now().UTC()
	inscricao.UserID = userID
	inscricao.TrilhaID = trilhaID
	inscricao.Progresso = 0
	inscricao.CreatedAt = now
	inscricao.UpdatedAt = now
	if err := s.Repo.CreateInscricao(ctx, inscricao); err != nil {
		return Inscricao{}, err
	}
	return inscricao, nil
}

// Enrollments lists the user's own enrollments.
func (s *Service) Enrollments(ctx context.Context, userID string) ([]Inscricao, error) {
	return s.Repo.ListInscricoesByUser(ctx, userID)
}

// SetProgresso records the user's progress in a trilha, clamped to 0..100.
func (s *Service) SetProgresso(ctx context.Context, userID, trilhaID string, progresso int) error {
	if progresso < 0 || progresso > 100 {
		return fmt.Errorf("%w: progresso must be between 0 and 100", ErrValidation)
	}
	return s.Repo.UpdateProgresso(ctx, userID, trilhaID, progresso)
}

func validate(trilha *Trilha) error {
	trilha.Titulo = strings.TrimSpace(trilha.Titulo)
	trilha.Descricao = strings.TrimSpace(trilha.Descricao)
	if trilha.Titulo == "" {
		return fmt.Errorf("%w: titulo is required", ErrValidation)
	}
	if trilha.Descricao == "" {
		return fmt.Errorf("%w: descricao is required", ErrValidation)
	}
	if trilha.CargaHoraria != nil && *trilha.CargaHoraria < 0 {
		return fmt.Errorf("%w: carga_horaria must not be negative", ErrValidation)
	}
	return nil
}
