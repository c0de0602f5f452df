package patients

import (
	"context"
	"errors"
	"testing"
)

func validPatient() Patient {
	return Patient{
		Name:   "Elena Vasquez",
		Age:    67,
		Gender: GenderFemale,
		Email:  "elena@example.com",
		Phone:  "555-0100",
	}
}

func TestCreateValidatesBeforeStore(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	cases := []struct {
		name   string
		mutate func(*Patient)
	}{
		{"empty name", func(p *Patient) { p.Name = "  " }},
		{"age zero", func(p *Patient) { p.Age = 0 }},
		{"age too high", func(p *Patient) { p.Age = 121 }},
		{"bad gender", func(p *Patient) { p.Gender = "other" }},
		{"bad email", func(p *Patient) { p.Email = "not-an-email" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPatient()
			tc.mutate(&p)
			if _, err := svc.Create(context.Background(), "prov-1", p); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	roster, err := svc.Roster(context.Background(), "prov-1", "")
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 0 {
		t.Fatalf("invalid input reached the store: %d rows", len(roster))
	}
}

func TestCreateAcceptsBoundaryAges(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	for _, age := range []int{1, 120} {
		p := validPatient()
		p.Age = age
		p.Email = ""
		if _, err := svc.Create(context.Background(), "prov-1", p); err != nil {
			t.Fatalf("age %d rejected: %v", age, err)
		}
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	created, err := svc.Create(context.Background(), "prov-1", validPatient())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(context.Background(), "prov-2", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign provider, got %v", err)
	}
}

func TestRosterSearch(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	for _, p := range []Patient{
		{Name: "Elena Vasquez", Age: 67, Gender: GenderFemale, Phone: "555-0100"},
		{Name: "Rajesh Iyer", Age: 72, Gender: GenderMale, Email: "rajesh@example.com"},
		{Name: "Howard Lin", Age: 80, Gender: GenderMale, Phone: "555-0199"},
	} {
		if _, err := svc.Create(ctx, "prov-1", p); err != nil {
			t.Fatalf("create %s: %v", p.Name, err)
		}
	}

	byName, err := svc.Roster(ctx, "prov-1", "vasq")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Elena Vasquez" {
		t.Fatalf("unexpected name match: %+v", byName)
	}

	byPhone, err := svc.Roster(ctx, "prov-1", "0199")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].Name != "Howard Lin" {
		t.Fatalf("unexpected phone match: %+v", byPhone)
	}
}

func TestSelfUpdateOnlyTouchesNameAndPhone(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "prov-1", validPatient())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SelfUpdate(ctx, "elena@example.com", "Elena V. Moreno", "555-0222")
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if updated.Name != "Elena V. Moreno" || updated.Phone != "555-0222" {
		t.Fatalf("self update not applied: %+v", updated)
	}
	if updated.Age != created.Age || updated.Gender != created.Gender ||
		updated.Email != created.Email || updated.ProviderID != created.ProviderID {
		t.Fatalf("self update touched doctor-owned fields: %+v", updated)
	}
}

func TestDeleteRemovesFromRoster(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "prov-1", validPatient())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, "prov-1", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "prov-1", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
