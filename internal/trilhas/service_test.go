package trilhas

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func createTrilha(t *testing.T, svc *Service, ativa bool) Trilha {
	t.Helper()
	trilha, err := svc.Create(context.Background(), Trilha{
		ID:        uuid.NewString(),
		Titulo:    "Logística portuária",
		Descricao: "Introdução à operação de terminais",
		Ativa:     ativa,
	})
	if err != nil {
		t.Fatalf("create trilha: %v", err)
	}
	return trilha
}

func TestEnrollOncePerTrilha(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	trilha := createTrilha(t, svc, true)
	ctx := context.Background()

	inscricao, err := svc.Enroll(ctx, "user-1", trilha.ID, Inscricao{ID: uuid.NewString()})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if inscricao.Progresso != 0 {
		t.Fatalf("new enrollment must start at zero, got %d", inscricao.Progresso)
	}

	_, err = svc.Enroll(ctx, "user-1", trilha.ID, Inscricao{ID: uuid.NewString()})
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestEnrollInactiveTrilha(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	trilha := createTrilha(t, svc, false)

	_, err := svc.Enroll(context.Background(), "user-1", trilha.ID, Inscricao{ID: uuid.NewString()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive trilha, got %v", err)
	}
}

func TestSetProgresso(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	trilha := createTrilha(t, svc, true)
	ctx := context.Background()

	if _, err := svc.Enroll(ctx, "user-1", trilha.ID, Inscricao{ID: uuid.NewString()}); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := svc.SetProgresso(ctx, "user-1", trilha.ID, 60); err != nil {
		t.Fatalf("set progresso: %v", err)
	}

	enrollments, err := svc.Enrollments(ctx, "user-1")
	if err != nil {
		t.Fatalf("enrollments: %v", err)
	}
	if len(enrollments) != 1 || enrollments[0].Progresso != 60 {
		t.Fatalf("progress not recorded: %+v", enrollments)
	}
}

func TestSetProgressoValidatesRange(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.SetProgresso(context.Background(), "user-1", "trilha-1", 101); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSetProgressoRequiresEnrollment(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	trilha := createTrilha(t, svc, true)

	if err := svc.SetProgresso(context.Background(), "user-1", trilha.ID, 10); !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
}
