package patients

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const patientColumns = `"PatientID", "Name", "Age", "Gender", "Email", "PhoneNumber", "ProviderID"`

func (r *PGRepo) Create(ctx context.Context, patient Patient) (Patient, error) {
	const query = `
INSERT INTO "Patients" ("PatientID", "Name", "Age", "Gender", "Email", "PhoneNumber", "ProviderID")
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + patientColumns
	return r.scanOne(r.DB.QueryRowContext(ctx, query,
		patient.ID,
		patient.Name,
		patient.Age,
		patient.Gender,
		nullableString(patient.Email),
		nullableString(patient.Phone),
		patient.ProviderID,
	))
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Patient, error) {
	const query = `
SELECT ` + patientColumns + `
FROM "Patients"
WHERE "PatientID" = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Patient, error) {
	const query = `
SELECT ` + patientColumns + `
FROM "Patients"
WHERE lower("Email") = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) ListByProvider(ctx context.Context, providerID string) ([]Patient, error) {
	const query = `
SELECT ` + patientColumns + `
FROM "Patients"
WHERE "ProviderID" = $1
ORDER BY "Name"`
	rows, err := r.DB.QueryContext(ctx, query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Patient{}
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, patient)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, patient Patient) error {
	const query = `
UPDATE "Patients"
SET "Name" = $1, "Age" = $2, "Gender" = $3, "Email" = $4, "PhoneNumber" = $5
WHERE "PatientID" = $6`
	res, err := r.DB.ExecContext(ctx, query,
		patient.Name,
		patient.Age,
		patient.Gender,
		nullableString(patient.Email),
		nullableString(patient.Phone),
		patient.ID,
	)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM "Patients" WHERE "PatientID" = $1`
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

func (r *PGRepo) scanOne(row *sql.Row) (Patient, error) {
	patient, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Patient{}, ErrNotFound
		}
		return Patient{}, err
	}
	return patient, nil
}

func scanPatient(row rowScanner) (Patient, error) {
	var patient Patient
	var email sql.NullString
	var phone sql.NullString
	err := row.Scan(
		&patient.ID,
		&patient.Name,
		&patient.Age,
		&patient.Gender,
		&email,
		&phone,
		&patient.ProviderID,
	)
	if err != nil {
		return Patient{}, err
	}
	if email.Valid {
		patient.Email = email.String
	}
	if phone.Valid {
		patient.Phone = phone.String
	}
	return patient, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
