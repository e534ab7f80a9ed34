package vagas

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func createVaga(t *testing.T, svc *Service, ativa bool) Vaga {
	t.Helper()
	vaga, err := svc.Create(context.Background(), Vaga{
		ID:        uuid.NewString(),
		Titulo:    "Operador de empilhadeira",
		Empresa:   "Porto do Pecém",
		Descricao: "Operação de pátio",
		Ativa:     ativa,
	})
	if err != nil {
		t.Fatalf("create vaga: %v", err)
	}
	return vaga
}

func TestApplyOncePerVaga(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	vaga := createVaga(t, svc, true)
	ctx := context.Background()

	first, err := svc.Apply(ctx, "user-1", vaga.ID, Candidatura{ID: uuid.NewString()})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if first.Status != StatusEnviada {
		t.Fatalf("unexpected status %q", first.Status)
	}

	_, err = svc.Apply(ctx, "user-1", vaga.ID, Candidatura{ID: uuid.NewString()})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}

	apps, err := svc.Applications(ctx, "user-1")
	if err != nil {
		t.Fatalf("applications: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
}

func TestApplyToInactiveVaga(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	vaga := createVaga(t, svc, false)

	_, err := svc.Apply(context.Background(), "user-1", vaga.ID, Candidatura{ID: uuid.NewString()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive vaga, got %v", err)
	}
}

func TestListActiveHidesInactive(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	createVaga(t, svc, true)
	createVaga(t, svc, false)

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active vaga, got %d", len(active))
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 vagas, got %d", len(all))
	}
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Create(context.Background(), Vaga{ID: uuid.NewString(), Titulo: "x"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
