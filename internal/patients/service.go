package patients

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create adds a patient to the provider's roster. Validation runs before
// any store call.
func (s *Service) Create(ctx context.Context, providerID string, patient Patient) (Patient, error) {
	if strings.TrimSpace(providerID) == "" {
		return Patient{}, errors.New("provider id is required")
	}
	patient.Name = strings.TrimSpace(patient.Name)
	patient.Email = strings.TrimSpace(patient.Email)
	patient.Phone = strings.TrimSpace(patient.Phone)
	if err := validate(patient); err != nil {
		return Patient{}, err
	}
	patient.ID = uuid.NewString()
	patient.ProviderID = providerID
	return s.Repo.Create(ctx, patient)
}

// Get returns a roster patient, enforcing provider ownership.
func (s *Service) Get(ctx context.Context, providerID, patientID string) (Patient, error) {
	patient, err := s.Repo.GetByID(ctx, patientID)
	if err != nil {
		return Patient{}, err
	}
	if patient.ProviderID != providerID {
		return Patient{}, ErrNotFound
	}
	return patient, nil
}

// Update rewrites a roster patient's details.
func (s *Service) Update(ctx context.Context, providerID, patientID string, updated Patient) (Patient, error) {
	existing, err := s.Get(ctx, providerID, patientID)
	if err != nil {
		return Patient{}, err
	}
	existing.Name = strings.TrimSpace(updated.Name)
	existing.Age = updated.Age
	existing.Gender = updated.Gender
	existing.Email = strings.TrimSpace(updated.Email)
	existing.Phone = strings.TrimSpace(updated.Phone)
	if err := validate(existing); err != nil {
		return Patient{}, err
	}
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Patient{}, err
	}
	return existing, nil
}

// Delete removes a roster patient.
func (s *Service) Delete(ctx context.Context, providerID, patientID string) error {
	if _, err := s.Get(ctx, providerID, patientID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, patientID)
}

// Roster lists the provider's patients, optionally filtered by a
// case-insensitive substring over name, email and phone.
func (s *Service) Roster(ctx context.Context, providerID, search string) ([]Patient, error) {
	list, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return list, nil
	}
	out := []Patient{}
	for _, patient := range list {
		if strings.Contains(strings.ToLower(patient.Name), search) ||
			strings.Contains(strings.ToLower(patient.Email), search) ||
			strings.Contains(strings.ToLower(patient.Phone), search) {
			out = append(out, patient)
		}
	}
	return out, nil
}

// SelfByEmail resolves the patient record for a signed-in patient account.
func (s *Service) SelfByEmail(ctx context.Context, email string) (Patient, error) {
	if strings.TrimSpace(email) == "" {
		return Patient{}, errors.New("patient email is required")
	}
	return s.Repo.GetByEmail(ctx, email)
}

// SelfUpdate lets a patient change their own name and phone. All other
// fields are doctor-owned and are left untouched.
func (s *Service) SelfUpdate(ctx context.Context, email, name, phone string) (Patient, error) {
	patient, err := s.SelfByEmail(ctx, email)
	if err != nil {
		return Patient{}, err
	}
	patient.Name = strings.TrimSpace(name)
	patient.Phone = strings.TrimSpace(phone)
	if err := validate(patient); err != nil {
		return Patient{}, err
	}
	if err := s.Repo.Update(ctx, patient); err != nil {
		return Patient{}, err
	}
	return patient, nil
}
