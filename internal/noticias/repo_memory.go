package noticias

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Noticia
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Noticia)}
}

func (r *MemoryRepo) List(_ context.Context, publishedOnly bool) ([]Noticia, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Noticia{}
	for _, n := range r.items {
		if publishedOnly && !n.Publicada {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (Noticia, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.items[id]
	if !ok {
		return Noticia{}, ErrNotFound
	}
	return n, nil
}

func (r *MemoryRepo) Create(_ context.Context, noticia Noticia) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	noticia.CreatedAt = now
	noticia.UpdatedAt = now
	r.items[noticia.ID] = noticia
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, noticia Noticia) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[noticia.ID]
	if !ok {
		return ErrNotFound
	}
	noticia.CreatedAt = existing.CreatedAt
	noticia.UpdatedAt = time.Now().UTC()
	r.items[noticia.ID] = noticia
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
