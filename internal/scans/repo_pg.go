package scans

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const scanColumns = `"ImageID", "PatientID", "ImageType", "Date", "ImageURL"`

func (r *PGRepo) Create(ctx context.Context, scan Scan) (Scan, error) {
	const query = `
INSERT INTO "BrainScans" ("ImageID", "PatientID", "ImageType", "Date", "ImageURL")
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + scanColumns
	return r.scanOne(r.DB.QueryRowContext(ctx, query,
		scan.ID,
		scan.PatientID,
		nullableString(scan.ImageType),
		scan.Date,
		scan.ImageURL,
	))
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Scan, error) {
	const query = `
SELECT ` + scanColumns + `
FROM "BrainScans"
WHERE "ImageID" = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) ListByPatient(ctx context.Context, patientID string) ([]Scan, error) {
	const query = `
SELECT ` + scanColumns + `
FROM "BrainScans"
WHERE "PatientID" = $1
ORDER BY "Date" DESC`
	rows, err := r.DB.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Scan{}
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, scan)
	}
	return out, rows.Err()
}

func (r *PGRepo) LatestForPatient(ctx context.Context, patientID string) (Scan, error) {
	const query = `
SELECT ` + scanColumns + `
FROM "BrainScans"
WHERE "PatientID" = $1
ORDER BY "Date" DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, patientID))
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM "BrainScans" WHERE "ImageID" = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row *sql.Row) (Scan, error) {
	scan, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Scan{}, ErrNotFound
		}
		return Scan{}, err
	}
	return scan, nil
}

func scanRow(row rowScanner) (Scan, error) {
	var scan Scan
	var imageType sql.NullString
	err := row.Scan(
		&scan.ID,
		&scan.PatientID,
		&imageType,
		&scan.Date,
		&scan.ImageURL,
	)
	if err != nil {
		return Scan{}, err
	}
	if imageType.Valid {
		scan.ImageType = imageType.String
	}
	return scan, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
