package providers

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "provider not found" }

type Repo interface {
	Create(ctx context.Context, provider Provider) (Provider, error)
	GetByEmail(ctx context.Context, email string) (Provider, error)
	GetByID(ctx context.Context, id string) (Provider, error)
	Update(ctx context.Context, provider Provider) error
}
