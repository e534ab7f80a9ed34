package noticias

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Noticia is a portal news article. Only published articles are visible to
// residents; admins see and manage everything.
type Noticia struct {
	ID        string    `json:"id"`
	Titulo    string    `json:"titulo"`
	Resumo    string    `json:"resumo,omitempty"`
	Conteudo  string    `json:"conteudo"`
	ImagemURL string    `json:"imagem_url,omitempty"`
	Publicada bool      `json:"publicada"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound   = errors.New("noticia not found")
	ErrValidation = errors.New("invalid noticia")
)

// Repo stores news articles.
type Repo interface {
	List(ctx context.Context, publishedOnly bool) ([]Noticia, error)
	Get(ctx context.Context, id string) (Noticia, error)
	Create(ctx context.Context, noticia Noticia) error
	Update(ctx context.Context, noticia Noticia) error
	Delete(ctx context.Context, id string) error
}

// Service owns news reads and admin writes.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) ListPublished(ctx context.Context) ([]Noticia, error) {
	return s.Repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]Noticia, error) {
	return s.Repo.List(ctx, false)
}

func (s *Service) Get(ctx context.Context, id string) (Noticia, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, noticia Noticia) (Noticia, error) {
	if err := validate(&noticia); err != nil {
		return Noticia{}, err
	}
	if err := s.Repo.Create(ctx, noticia); err != nil {
		return Noticia{}, err
	}
	return s.Repo.Get(ctx, noticia.ID)
}

func (s *Service) Update(ctx context.Context, noticia Noticia) (Noticia, error) {
	if err := validate(&noticia); err != nil {
		return Noticia{}, err
	}
	if err := s.Repo.Update(ctx, noticia); err != nil {
		return Noticia{}, err
	}
	return s.Repo.Get(ctx, noticia.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func validate(noticia *Noticia) error {
	noticia.Titulo = strings.TrimSpace(noticia.Titulo)
	noticia.Conteudo = strings.TrimSpace(noticia.Conteudo)
	if noticia.Titulo == "" {
		return fmt.Errorf("%w: titulo is required", ErrValidation)
	}
	if noticia.Conteudo == "" {
		return fmt.Errorf("%w: conteudo is required", ErrValidation)
	}
	return nil
}
