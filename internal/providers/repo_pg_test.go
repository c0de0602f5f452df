package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery(`SELECT "ProviderID", "Name", "Email", "Specialization"`).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"ProviderID", "Name", "Email", "Specialization"}))

	_, err = repo.GetByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateReturnsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{"ProviderID", "Name", "Email", "Specialization"}).
		AddRow("prov-1", "Maria Gray", "doc@example.com", "Neurology")
	mock.ExpectQuery(`INSERT INTO "HealthcareProviders"`).
		WithArgs("prov-1", "Maria Gray", "doc@example.com", "Neurology").
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), Provider{
		ID:             "prov-1",
		Name:           "Maria Gray",
		Email:          "doc@example.com",
		Specialization: "Neurology",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "prov-1" || created.Specialization != "Neurology" {
		t.Fatalf("unexpected row: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
