package trilhas

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu         sync.RWMutex
	trilhas    map[string]Trilha
	inscricoes map[string]Inscricao
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		trilhas:    make(map[string]Trilha),
		inscricoes: make(map[string]Inscricao),
	}
}

func (r *MemoryRepo) List(_ context.Context, activeOnly bool) ([]Trilha, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Trilha{}
	for _, t := range r.trilhas {
		if activeOnly && !t.Ativa {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (Trilha, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trilhas[id]
	if !ok {
		return Trilha{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepo) Create(_ context.Context, trilha Trilha) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	trilha.CreatedAt = now
	trilha.UpdatedAt = now
	r.trilhas[trilha.ID] = trilha
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, trilha Trilha) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.trilhas[trilha.ID]
	if !ok {
		return ErrNotFound
	}
	trilha.CreatedAt = existing.CreatedAt
	trilha.UpdatedAt = time.Now().UTC()
	r.trilhas[trilha.ID] = trilha
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trilhas[id]; !ok {
		return ErrNotFound
	}
	delete(r.trilhas, id)
	return nil
}

func (r *MemoryRepo) CreateInscricao(_ context.Context, inscricao Inscricao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.inscricoes {
		if i.UserID == inscricao.UserID && i.TrilhaID == inscricao.TrilhaID {
			return ErrAlreadyEnrolled
		}
	}
	r.inscricoes[inscricao.ID] = inscricao
	return nil
}

func (r *MemoryRepo) ListInscricoesByUser(_ context.Context, userID string) ([]Inscricao, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Inscricao{}
	for _, i := range r.inscricoes {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) UpdateProgresso(_ context.Context, userID, trilhaID string, progresso int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, i := range r.inscricoes {
		if i.UserID == userID && i.TrilhaID == trilhaID {
			i.Progresso = progresso
			i.UpdatedAt = time.Now().UTC()
			r.inscricoes[id] = i
			return nil
		}
	}
	return ErrNotEnrolled
}

var _ Repo = (*MemoryRepo)(nil)
