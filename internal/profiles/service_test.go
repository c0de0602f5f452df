package profiles

import (
	"context"
	"testing"
)

func TestUpsertFromAuthDefaultsToDoctor(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	profile, err := svc.UpsertFromAuth(context.Background(), "user-1", "doc@example.com", "")
	if err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
	if profile.UserType != UserTypeDoctor {
		t.Fatalf("expected doctor, got %q", profile.UserType)
	}
	if !profile.FirstLogin {
		t.Fatalf("expected first_login true on new profile")
	}
}

func TestUpsertFromAuthKeepsExistingRole(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.UpsertFromAuth(context.Background(), "user-1", "pat@example.com", UserTypePatient); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	profile, err := svc.UpsertFromAuth(context.Background(), "user-1", "pat@example.com", UserTypeDoctor)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if profile.UserType != UserTypePatient {
		t.Fatalf("role overwritten to %q", profile.UserType)
	}
}

func TestCompleteFirstLogin(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.UpsertFromAuth(context.Background(), "user-1", "doc@example.com", UserTypeDoctor); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := svc.CompleteFirstLogin(context.Background(), "user-1"); err != nil {
		t.Fatalf("CompleteFirstLogin: %v", err)
	}
	profile, err := svc.GetByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if profile.FirstLogin {
		t.Fatalf("expected first_login false")
	}
}
