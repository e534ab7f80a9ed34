package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/auth"
)

// Service contains account logic: registration, password login, and Google
// identity linking. It issues access tokens via the shared Tokens helper.
type Service struct {
	Repo   Repo
	Tokens *auth.Tokens
}

func NewService(repo Repo, tokens *auth.Tokens) *Service {
	return &Service{Repo: repo, Tokens: tokens}
}

// Register creates an account with a bcrypt password hash and returns the
// user plus a signed access token.
func (s *Service) Register(ctx context.Context, email, password, nome string) (User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, "", errors.New("valid email is required")
	}
	if len(password) < 8 {
		return User{}, "", errors.New("password must have at least 8 characters")
	}
	if strings.TrimSpace(nome) == "" {
		return User{}, "", errors.New("nome is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Nome:         strings.TrimSpace(nome),
		Role:         auth.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := s.signFor(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies the password and returns the user plus a signed token.
// A wrong email and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if user.PasswordHash == "" {
		return User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.signFor(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// UpsertFromGoogle finds or creates the account linked to a Google identity
// and returns it with a signed token.
func (s *Service) UpsertFromGoogle(ctx context.Context, sub, email, nome string) (User, string, error) {
	if strings.TrimSpace(sub) == "" || strings.TrimSpace(email) == "" {
		return User{}, "", errors.New("google identity is incomplete")
	}

	user, err := s.Repo.GetByGoogleSub(ctx, sub)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		// Link by email if the account already exists, otherwise create one.
		user, err = s.Repo.GetByEmail(ctx, strings.ToLower(email))
		if err == nil {
			user.GoogleSub = sub
			if err := s.Repo.Update(ctx, user); err != nil {
				return User{}, "", err
			}
		} else if errors.Is(err, ErrNotFound) {
			user = User{
				ID:        uuid.NewString(),
				Email:     strings.ToLower(email),
				Nome:      strings.TrimSpace(nome),
				Role:      auth.RoleUser,
				GoogleSub: sub,
				CreatedAt: time.Now().UTC(),
			}
			if err := s.Repo.Create(ctx, user); err != nil {
				return User{}, "", err
			}
		} else {
			return User{}, "", err
		}
	default:
		return User{}, "", err
	}

	token, err := s.signFor(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID returns an account by ID.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) signFor(user User) (string, error) {
	return s.Tokens.Sign(auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Nome:  user.Nome,
		Role:  user.Role,
	})
}
