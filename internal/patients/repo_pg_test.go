package patients

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateReturnsInsertedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{"PatientID", "Name", "Age", "Gender", "Email", "PhoneNumber", "ProviderID"}).
		AddRow("pat-1", "Elena Vasquez", 67, GenderFemale, "elena@example.com", "555-0100", "prov-1")
	mock.ExpectQuery(`INSERT INTO "Patients"`).
		WithArgs("pat-1", "Elena Vasquez", 67, GenderFemale, "elena@example.com", "555-0100", "prov-1").
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), Patient{
		ID:         "pat-1",
		Name:       "Elena Vasquez",
		Age:        67,
		Gender:     GenderFemale,
		Email:      "elena@example.com",
		Phone:      "555-0100",
		ProviderID: "prov-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "pat-1" || created.ProviderID != "prov-1" {
		t.Fatalf("unexpected row: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec(`DELETE FROM "Patients"`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByEmailMapsNulls(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{"PatientID", "Name", "Age", "Gender", "Email", "PhoneNumber", "ProviderID"}).
		AddRow("pat-1", "Rajesh Iyer", 72, GenderMale, nil, nil, "prov-1")
	mock.ExpectQuery(`FROM "Patients"`).
		WithArgs("rajesh@example.com").
		WillReturnRows(rows)

	patient, err := repo.GetByEmail(context.Background(), "rajesh@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if patient.Email != "" || patient.Phone != "" {
		t.Fatalf("null columns not mapped to empty strings: %+v", patient)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
