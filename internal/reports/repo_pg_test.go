package reports

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateReturnsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"ReportID", "PatientID", "ImageID", "ReportURL", "created_at"}).
		AddRow("rep-1", "pat-1", "scan-1", "http://example.com/report.txt", created)
	mock.ExpectQuery(`INSERT INTO "Reports"`).
		WithArgs("rep-1", "pat-1", "scan-1", "http://example.com/report.txt", created).
		WillReturnRows(rows)

	report, err := repo.Create(context.Background(), Report{
		ID:        "rep-1",
		PatientID: "pat-1",
		ScanID:    "scan-1",
		ReportURL: "http://example.com/report.txt",
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if report.ScanID != "scan-1" {
		t.Fatalf("unexpected row: %+v", report)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
