package providers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates the provider row for a doctor completing their first
// login. Email comes from the authenticated session, never the form.
func (s *Service) Register(ctx context.Context, email, name, specialization string) (Provider, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	specialization = strings.TrimSpace(specialization)

	if email == "" {
		return Provider{}, errors.New("provider email is required")
	}
	if name == "" {
		return Provider{}, ErrInvalidInput
	}

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Provider{}, err
	}

	return s.Repo.Create(ctx, Provider{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		Specialization: specialization,
	})
}

// ByEmail resolves the provider for the authenticated doctor.
func (s *Service) ByEmail(ctx context.Context, email string) (Provider, error) {
	if strings.TrimSpace(email) == "" {
		return Provider{}, errors.New("provider email is required")
	}
	return s.Repo.GetByEmail(ctx, email)
}

func (s *Service) ByID(ctx context.Context, id string) (Provider, error) {
	if strings.TrimSpace(id) == "" {
		return Provider{}, errors.New("provider id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// UpdateDetails changes the provider's name and specialization.
func (s *Service) UpdateDetails(ctx context.Context, id, name, specialization string) (Provider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Provider{}, ErrInvalidInput
	}
	provider, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Provider{}, err
	}
	provider.Name = name
	provider.Specialization = strings.TrimSpace(specialization)
	if err := s.Repo.Update(ctx, provider); err != nil {
		return Provider{}, err
	}
	return provider, nil
}
