package usage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEnsurePeriodInitializesDefaults(t *testing.T) {
	svc := NewService()
	u, err := svc.EnsurePeriod(context.Background(), "prov-1")
	if err != nil {
		t.Fatalf("ensure period: %v", err)
	}
	if u.Plan != "Clinic" || u.Limit != 50 || u.Used != 0 {
		t.Fatalf("unexpected defaults: %+v", u)
	}
	if !u.ResetsAt.After(time.Now()) {
		t.Fatalf("expected future reset, got %v", u.ResetsAt)
	}
}

func TestConsumeStopsAtLimit(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	u, err := svc.Consume(ctx, "prov-1", 49)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if u.Used != 49 {
		t.Fatalf("expected 49 used, got %d", u.Used)
	}

	if _, err := svc.Consume(ctx, "prov-1", 1); err != nil {
		t.Fatalf("consume at limit: %v", err)
	}
	if _, err := svc.Consume(ctx, "prov-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestCanConsumeDoesNotMutate(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	ok, u, err := svc.CanConsume(ctx, "prov-1", 1)
	if err != nil || !ok {
		t.Fatalf("expected allowance, got ok=%v err=%v", ok, err)
	}
	if u.Used != 0 {
		t.Fatalf("CanConsume mutated usage: %+v", u)
	}

	if _, err := svc.Consume(ctx, "prov-1", 50); err != nil {
		t.Fatalf("exhaust: %v", err)
	}
	ok, _, err = svc.CanConsume(ctx, "prov-1", 1)
	if err != nil {
		t.Fatalf("can consume: %v", err)
	}
	if ok {
		t.Fatalf("expected exhausted allowance to be refused")
	}
}

func TestResetClearsUsage(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "prov-1", 10); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.Reset(ctx, "prov-1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected zero used after reset, got %d", u.Used)
	}
}

func TestUsageIsPerProvider(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "prov-1", 5); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.Get(ctx, "prov-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("providers share usage: %+v", u)
	}
}
