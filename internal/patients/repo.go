package patients

import "context"

type Repo interface {
	Create(ctx context.Context, patient Patient) (Patient, error)
	GetByID(ctx context.Context, id string) (Patient, error)
	GetByEmail(ctx context.Context, email string) (Patient, error)
	ListByProvider(ctx context.Context, providerID string) ([]Patient, error)
	Update(ctx context.Context, patient Patient) error
	Delete(ctx context.Context, id string) error
}
