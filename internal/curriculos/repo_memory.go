package curriculos

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Curriculo // keyed by user ID
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Curriculo)}
}

func (r *MemoryRepo) GetByUser(_ context.Context, userID string) (Curriculo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[userID]
	if !ok {
		return Curriculo{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) GetByPath(_ context.Context, userID, filePath string) (Curriculo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[userID]
	if !ok || c.FilePath != filePath {
		return Curriculo{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) Upsert(_ context.Context, curriculo Curriculo) (Curriculo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.items[curriculo.UserID]; ok {
		curriculo.ID = existing.ID
	}
	curriculo.UploadedAt = now
	curriculo.UpdatedAt = now
	r.items[curriculo.UserID] = curriculo
	return curriculo, nil
}

func (r *MemoryRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[userID]; !ok {
		return ErrNotFound
	}
	delete(r.items, userID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
