package reports

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const reportColumns = `"ReportID", "PatientID", "ImageID", "ReportURL", created_at`

func (r *PGRepo) Create(ctx context.Context, report Report) (Report, error) {
	const query = `
INSERT INTO "Reports" ("ReportID", "PatientID", "ImageID", "ReportURL", created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + reportColumns
	return r.scanOne(r.DB.QueryRowContext(ctx, query,
		report.ID,
		report.PatientID,
		report.ScanID,
		report.ReportURL,
		report.CreatedAt,
	))
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Report, error) {
	const query = `
SELECT ` + reportColumns + `
FROM "Reports"
WHERE "ReportID" = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) ListByPatient(ctx context.Context, patientID string) ([]Report, error) {
	const query = `
SELECT ` + reportColumns + `
FROM "Reports"
WHERE "PatientID" = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Report{}
	for rows.Next() {
		var report Report
		if err := rows.Scan(
			&report.ID,
			&report.PatientID,
			&report.ScanID,
			&report.ReportURL,
			&report.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (Report, error) {
	var report Report
	err := row.Scan(
		&report.ID,
		&report.PatientID,
		&report.ScanID,
		&report.ReportURL,
		&report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	return report, nil
}

var _ Repo = (*PGRepo)(nil)
