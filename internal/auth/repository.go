package auth

import (
	"context"
	"errors"
	"time"
)

// ErrPrincipalExists indicates a registration for an already-known principal.
var ErrPrincipalExists = errors.New("principal already registered")

// ErrPrincipalNotFound indicates no credential is stored for a principal.
var ErrPrincipalNotFound = errors.New("principal not found")

// Credential binds a principal identifier to its hashed secret.
type Credential struct {
	Principal  string
	SecretHash []byte
	CreatedAt  time.Time
}

// Repository persists principal credentials.
type Repository interface {
	Create(ctx context.Context, cred Credential) error
	Find(ctx context.Context, principal string) (Credential, error)
}
