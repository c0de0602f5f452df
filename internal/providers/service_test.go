package providers

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterRequiresName(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Register(context.Background(), "doc@example.com", "  ", "Neurology")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterIsIdempotentPerEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	first, err := svc.Register(context.Background(), "doc@example.com", "Maria Gray", "Neurology")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	second, err := svc.Register(context.Background(), "doc@example.com", "Other Name", "Radiology")
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same provider, got %s vs %s", second.ID, first.ID)
	}
	if second.Name != "Maria Gray" {
		t.Fatalf("existing provider mutated: %q", second.Name)
	}
}

func TestUpdateDetails(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	provider, err := svc.Register(context.Background(), "doc@example.com", "Maria Gray", "Neurology")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	updated, err := svc.UpdateDetails(context.Background(), provider.ID, "Maria Gray-Lopez", "Neuroradiology")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Specialization != "Neuroradiology" {
		t.Fatalf("unexpected specialization %q", updated.Specialization)
	}
	got, err := svc.ByEmail(context.Background(), "doc@example.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if got.Name != "Maria Gray-Lopez" {
		t.Fatalf("update not persisted: %q", got.Name)
	}
}
