package providers

import (
	"context"
	"strings"
	"sync"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{providers: make(map[string]Provider)}
}

func (r *MemoryRepo) Create(ctx context.Context, provider Provider) (Provider, error) {
	if err := ctx.Err(); err != nil {
		return Provider{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.ID] = provider
	return provider, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Provider, error) {
	if err := ctx.Err(); err != nil {
		return Provider{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, provider := range r.providers {
		if strings.EqualFold(provider.Email, email) {
			return provider, nil
		}
	}
	return Provider{}, ErrNotFound
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Provider, error) {
	if err := ctx.Err(); err != nil {
		return Provider{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[id]
	if !ok {
		return Provider{}, ErrNotFound
	}
	return provider, nil
}

func (r *MemoryRepo) Update(ctx context.Context, provider Provider) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[provider.ID]; !ok {
		return ErrNotFound
	}
	r.providers[provider.ID] = provider
	return nil
}
