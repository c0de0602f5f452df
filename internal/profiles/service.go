package profiles

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth records the signed-in account's profile. A brand new
// account gets the requested role with first_login set; an existing
// profile keeps its stored role.
func (s *Service) UpsertFromAuth(ctx context.Context, id, email, requestedRole string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("profiles service not configured")
	}
	if strings.TrimSpace(id) == "" || strings.TrimSpace(email) == "" {
		return Profile{}, errors.New("profile id and email are required")
	}

	role := strings.ToLower(strings.TrimSpace(requestedRole))
	if role != UserTypeDoctor && role != UserTypePatient {
		role = UserTypeDoctor
	}

	if err := s.Repo.Upsert(ctx, Profile{
		ID:         id,
		Email:      email,
		UserType:   role,
		FirstLogin: true,
	}); err != nil {
		return Profile{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("profiles service not configured")
	}
	if strings.TrimSpace(id) == "" {
		return Profile{}, errors.New("profile id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// RoleOf reports the stored portal role for an account.
func (s *Service) RoleOf(ctx context.Context, id string) (string, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return profile.UserType, nil
}

// CompleteFirstLogin flips first_login after provider registration.
func (s *Service) CompleteFirstLogin(ctx context.Context, id string) error {
	if s == nil || s.Repo == nil {
		return errors.New("profiles service not configured")
	}
	return s.Repo.MarkFirstLoginDone(ctx, id)
}
