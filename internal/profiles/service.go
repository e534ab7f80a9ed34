package profiles

import (
	"context"
	"fmt"
	"strings"
)

// Service owns profile reads and writes.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return s.Repo.Get(ctx, userID)
}

// Save validates and upserts the caller's profile. The profile ID is always
// the authenticated user's ID, never taken from the request body.
func (s *Service) Save(ctx context.Context, userID string, profile Profile) (Profile, error) {
	profile.ID = userID
	profile.Nome = strings.TrimSpace(profile.Nome)
	if profile.Nome == "" {
		return Profile{}, fmt.Errorf("%w: nome is required", ErrValidation)
	}
	if profile.Idade != nil && (*profile.Idade < 14 || *profile.Idade > 120) {
		return Profile{}, fmt.Errorf("%w: idade out of range", ErrValidation)
	}

	cleaned := profile.Interesses[:0]
	for _, interesse := range profile.Interesses {
		if v := strings.TrimSpace(interesse); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	profile.Interesses = cleaned

	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return Profile{}, err
	}
	return s.Repo.Get(ctx, userID)
}
