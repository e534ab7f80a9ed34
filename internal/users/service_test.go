package users

import (
	"context"
	"errors"
	"testing"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/auth"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo(), auth.NewTokens("test-secret"))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Maria@Example.com", "senha-segura", "Maria Silva")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token on registration")
	}
	if user.Email != "maria@example.com" {
		t.Fatalf("email must be lowercased, got %q", user.Email)
	}
	if user.Role != auth.RoleUser {
		t.Fatalf("new accounts must get the user role, got %q", user.Role)
	}

	logged, token, err := svc.Login(ctx, "maria@example.com", "senha-segura")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("login must return the registered account and a token")
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newTestService()

	if _, _, err := svc.Register(context.Background(), "a@b.com", "curta", "Ana"); err == nil {
		t.Fatalf("expected short passwords to be rejected")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@b.com", "senha-segura", "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Register(ctx, "a@b.com", "outra-senha", "Outra Ana"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@b.com", "senha-segura", "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPass := svc.Login(ctx, "a@b.com", "senha-errada")
	_, _, unknownEmail := svc.Login(ctx, "nobody@b.com", "senha-segura")
	if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("both failures must return ErrInvalidCredentials, got %v and %v", wrongPass, unknownEmail)
	}
}

func TestUpsertFromGoogleLinksExistingAccount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "a@b.com", "senha-segura", "Ana")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	linked, token, err := svc.UpsertFromGoogle(ctx, "google-sub-1", "a@b.com", "Ana G")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if linked.ID != registered.ID {
		t.Fatalf("google login must link the existing account, got a new one")
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	// Second login resolves by sub directly.
	again, _, err := svc.UpsertFromGoogle(ctx, "google-sub-1", "a@b.com", "Ana G")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if again.ID != registered.ID {
		t.Fatalf("repeat google login must hit the same account")
	}
}

func TestUpsertFromGoogleCreatesAccount(t *testing.T) {
	svc := newTestService()

	user, _, err := svc.UpsertFromGoogle(context.Background(), "google-sub-2", "novo@b.com", "Novo Usuário")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if user.ID == "" || user.GoogleSub != "google-sub-2" {
		t.Fatalf("expected a fresh linked account, got %+v", user)
	}

	// Password login must not work for a Google-only account.
	if _, _, err := svc.Login(context.Background(), "novo@b.com", "qualquer-coisa"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenCarriesIdentity(t *testing.T) {
	tokens := auth.NewTokens("test-secret")
	svc := NewService(NewMemoryRepo(), tokens)

	user, token, err := svc.Register(context.Background(), "a@b.com", "senha-segura", "Ana")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != user.ID || claims.Email != user.Email || claims.Role != auth.RoleUser {
		t.Fatalf("claims diverge from the account: %+v", claims)
	}
}
