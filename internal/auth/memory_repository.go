package auth

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Credential
}

// NewMemoryRepository constructs an in-memory credential repository for
// tests and database-less deployments.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Credential)}
}

func (r *memoryRepository) Create(_ context.Context, cred Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[cred.Principal]; exists {
		return ErrPrincipalExists
	}
	r.storage[cred.Principal] = cred
	return nil
}

func (r *memoryRepository) Find(_ context.Context, principal string) (Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.storage[principal]
	if !ok {
		return Credential{}, ErrPrincipalNotFound
	}
	return cred, nil
}
