package profiles

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Profile)}
}

func (r *MemoryRepo) Get(_ context.Context, userID string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) Upsert(_ context.Context, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.items[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.items[profile.ID] = profile
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
