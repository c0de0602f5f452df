package usage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed usage store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, providerID string) (Usage, error) {
	u, err := s.ensure(ctx, providerID)
	return u, err
}

func (s *pgStore) EnsurePeriod(ctx context.Context, providerID string) (Usage, error) {
	return s.ensure(ctx, providerID)
}

func (s *pgStore) Consume(ctx context.Context, providerID string, n int) (Usage, error) {
	if n <= 0 {
		return s.ensure(ctx, providerID)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	u, err := s.lockAndEnsure(ctx, tx, providerID)
	if err != nil {
		return Usage{}, err
	}

	if u.Used+n > u.Limit {
		err = ErrLimitReached
		return Usage{}, err
	}
	u.Used += n
	if _, err = tx.ExecContext(ctx, `
UPDATE screening_usage SET used = $1 WHERE provider_id = $2`, u.Used, providerID); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) Reset(ctx context.Context, providerID string) (Usage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	now := time.Now().UTC()
	resetsAt := now.Add(periodDays * 24 * time.Hour)
	if _, err = tx.ExecContext(ctx, `
INSERT INTO screening_usage (provider_id, plan, limit_amount, used, resets_at)
VALUES ($1, 'Clinic', 50, 0, $2)
ON CONFLICT (provider_id) DO UPDATE SET used = 0, resets_at = EXCLUDED.resets_at`, providerID, resetsAt); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return Usage{Plan: "Clinic", Limit: 50, Used: 0, ResetsAt: resetsAt}, nil
}

func (s *pgStore) ensure(ctx context.Context, providerID string) (Usage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	u, err := s.lockAndEnsure(ctx, tx, providerID)
	if err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, providerID string) (Usage, error) {
	var u Usage
	row := tx.QueryRowContext(ctx, `
SELECT plan, limit_amount, used, resets_at FROM screening_usage WHERE provider_id = $1 FOR UPDATE`, providerID)
	err := row.Scan(&u.Plan, &u.Limit, &u.Used, &u.ResetsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			u = defaultUsage()
			if _, err = tx.ExecContext(ctx, `
INSERT INTO screening_usage (provider_id, plan, limit_amount, used, resets_at) VALUES ($1, $2, $3, $4, $5)`,
				providerID, u.Plan, u.Limit, u.Used, u.ResetsAt); err != nil {
				return Usage{}, err
			}
			return u, nil
		}
		return Usage{}, err
	}

	now := time.Now().UTC()
	if now.After(u.ResetsAt) || now.Equal(u.ResetsAt) {
		u.Used = 0
		u.ResetsAt = now.Add(periodDays * 24 * time.Hour)
		if _, err = tx.ExecContext(ctx, `UPDATE screening_usage SET used = $1, resets_at = $2 WHERE provider_id = $3`, u.Used, u.ResetsAt, providerID); err != nil {
			return Usage{}, err
		}
	}
	return u, nil
}
