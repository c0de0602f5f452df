package auth

import (
	"strings"
	"testing"
	"time"
)

func TestStateStoreConsumeIsOneShot(t *testing.T) {
	store := newStateStore()
	store.put("abc", "patient", time.Now().Add(time.Minute))

	role, ok := store.consume("abc")
	if !ok || role != "patient" {
		t.Fatalf("expected first consume to succeed with role, got ok=%v role=%q", ok, role)
	}
	if _, ok := store.consume("abc"); ok {
		t.Fatalf("expected second consume to fail")
	}
}

func TestStateStoreRejectsExpired(t *testing.T) {
	store := newStateStore()
	store.put("abc", "doctor", time.Now().Add(-time.Second))

	if _, ok := store.consume("abc"); ok {
		t.Fatalf("expected expired state to be rejected")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://localhost:3000/auth/callback?tab=x", "tok123", false)
	if err != nil {
		t.Fatalf("append token: %v", err)
	}
	if !strings.Contains(got, "token=tok123") || !strings.Contains(got, "tab=x") {
		t.Fatalf("unexpected url %q", got)
	}
	if strings.Contains(got, "firstLogin") {
		t.Fatalf("firstLogin should be omitted: %q", got)
	}

	got, err = appendToken("http://localhost:3000/auth/callback", "tok123", true)
	if err != nil {
		t.Fatalf("append token: %v", err)
	}
	if !strings.Contains(got, "firstLogin=true") {
		t.Fatalf("expected firstLogin flag: %q", got)
	}

	if _, err := appendToken("", "tok", false); err == nil {
		t.Fatalf("expected error for empty redirect url")
	}
}
