package providers

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, provider Provider) (Provider, error) {
	const query = `
INSERT INTO "HealthcareProviders" ("ProviderID", "Name", "Email", "Specialization")
VALUES ($1, $2, $3, $4)
RETURNING "ProviderID", "Name", "Email", "Specialization"`
	return r.scanOne(r.DB.QueryRowContext(ctx, query,
		provider.ID,
		provider.Name,
		provider.Email,
		nullableString(provider.Specialization),
	))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Provider, error) {
	const query = `
SELECT "ProviderID", "Name", "Email", "Specialization"
FROM "HealthcareProviders"
WHERE lower("Email") = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Provider, error) {
	const query = `
SELECT "ProviderID", "Name", "Email", "Specialization"
FROM "HealthcareProviders"
WHERE "ProviderID" = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) Update(ctx context.Context, provider Provider) error {
	const query = `
UPDATE "HealthcareProviders"
SET "Name" = $1, "Specialization" = $2
WHERE "ProviderID" = $3`
	res, err := r.DB.ExecContext(ctx, query,
		provider.Name,
		nullableString(provider.Specialization),
		provider.ID,
	)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Provider, error) {
	var provider Provider
	var specialization sql.NullString
	err := row.Scan(
		&provider.ID,
		&provider.Name,
		&provider.Email,
		&specialization,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Provider{}, ErrNotFound
		}
		return Provider{}, err
	}
	if specialization.Valid {
		provider.Specialization = specialization.String
	}
	return provider, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
