package profiles

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts the profile or refreshes the email of an existing one.
// Role and first_login are never overwritten once set.
func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (id, email, user_type, first_login, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.UserType,
		profile.FirstLogin,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	const query = `
SELECT id, email, user_type, first_login, created_at, updated_at
FROM profiles
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Profile, error) {
	const query = `
SELECT id, email, user_type, first_login, created_at, updated_at
FROM profiles
WHERE lower(email) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) MarkFirstLoginDone(ctx context.Context, id string) error {
	const query = `
UPDATE profiles
SET first_login = false, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Profile, error) {
	var profile Profile
	var updatedAt sql.NullTime
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.UserType,
		&profile.FirstLogin,
		&profile.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if updatedAt.Valid {
		profile.UpdatedAt = updatedAt.Time
	} else {
		profile.UpdatedAt = time.Now().UTC()
	}
	return profile, nil
}

var _ Repo = (*PGRepo)(nil)
