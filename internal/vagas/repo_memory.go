package vagas

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu           sync.RWMutex
	vagas        map[string]Vaga
	candidaturas map[string]Candidatura
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		vagas:        make(map[string]Vaga),
		candidaturas: make(map[string]Candidatura),
	}
}

func (r *MemoryRepo) List(_ context.Context, activeOnly bool) ([]Vaga, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Vaga{}
	for _, v := range r.vagas {
		if activeOnly && !v.Ativa {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (Vaga, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vagas[id]
	if !ok {
		return Vaga{}, ErrNotFound
	}
	return v, nil
}

func (r *MemoryRepo) Create(_ context.Context, vaga Vaga) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	vaga.CreatedAt = now
	vaga.UpdatedAt = now
	r.vagas[vaga.ID] = vaga
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, vaga Vaga) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.vagas[vaga.ID]
	if !ok {
		return ErrNotFound
	}
	vaga.CreatedAt = existing.CreatedAt
	vaga.UpdatedAt = time.Now().UTC()
	r.vagas[vaga.ID] = vaga
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vagas[id]; !ok {
		return ErrNotFound
	}
	delete(r.vagas, id)
	return nil
}

func (r *MemoryRepo) CreateCandidatura(_ context.Context, candidatura Candidatura) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.candidaturas {
		if c.UserID == candidatura.UserID && c.VagaID == candidatura.VagaID {
			return ErrAlreadyApplied
		}
	}
	r.candidaturas[candidatura.ID] = candidatura
	return nil
}

func (r *MemoryRepo) ListCandidaturasByUser(_ context.Context, userID string) ([]Candidatura, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Candidatura{}
	for _, c := range r.candidaturas {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
