package usage

import "context"

type store interface {
	Get(ctx context.Context, providerID string) (Usage, error)
	EnsurePeriod(ctx context.Context, providerID string) (Usage, error)
	Consume(ctx context.Context, providerID string, n int) (Usage, error)
	Reset(ctx context.Context, providerID string) (Usage, error)
}

// Service manages screening allowances via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Get returns the current usage for a provider, initializing defaults if absent.
func (s *Service) Get(ctx context.Context, providerID string) (Usage, error) {
	return s.store.Get(ctx, providerID)
}

// EnsurePeriod resets usage if the period has expired.
func (s *Service) EnsurePeriod(ctx context.Context, providerID string) (Usage, error) {
	return s.store.EnsurePeriod(ctx, providerID)
}

// CanConsume reports whether the provider can start n more screenings.
func (s *Service) CanConsume(ctx context.Context, providerID string, n int) (bool, Usage, error) {
	u, err := s.store.EnsurePeriod(ctx, providerID)
	if err != nil {
		return false, Usage{}, err
	}
	if n <= 0 {
		return true, u, nil
	}
	if u.Used+n > u.Limit {
		return false, u, nil
	}
	return true, u, nil
}

// Consume increments usage by n if within limit.
func (s *Service) Consume(ctx context.Context, providerID string, n int) (Usage, error) {
	return s.store.Consume(ctx, providerID, n)
}

// Reset sets usage to zero and resets the window.
func (s *Service) Reset(ctx context.Context, providerID string) (Usage, error) {
	return s.store.Reset(ctx, providerID)
}
