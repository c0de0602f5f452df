package patients

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	patients map[string]Patient
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{patients: make(map[string]Patient)}
}

func (r *MemoryRepo) Create(ctx context.Context, patient Patient) (Patient, error) {
	if err := ctx.Err(); err != nil {
		return Patient{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[patient.ID] = patient
	return patient, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Patient, error) {
	if err := ctx.Err(); err != nil {
		return Patient{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	patient, ok := r.patients[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return patient, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Patient, error) {
	if err := ctx.Err(); err != nil {
		return Patient{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, patient := range r.patients {
		if strings.EqualFold(patient.Email, email) {
			return patient, nil
		}
	}
	return Patient{}, ErrNotFound
}

func (r *MemoryRepo) ListByProvider(ctx context.Context, providerID string) ([]Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Patient{}
	for _, patient := range r.patients {
		if patient.ProviderID == providerID {
			out = append(out, patient)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, patient Patient) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[patient.ID]; !ok {
		return ErrNotFound
	}
	r.patients[patient.ID] = patient
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return ErrNotFound
	}
	delete(r.patients, id)
	return nil
}
