package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// ErrInvalidSecret indicates a login attempt with a wrong secret.
var ErrInvalidSecret = errors.New("invalid secret")

// Service manages principal credentials and issues bearer tokens. A
// principal here is the opaque identifier the ledger knows accounts and the
// minter by; the service only authenticates that a caller controls it.
type Service struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates an auth service signing tokens with the given secret.
func NewService(repo Repository, secret string) *Service {
	return &Service{repo: repo, secret: []byte(secret), tokenTTL: defaultTokenTTL}
}

// Register stores a bcrypt-hashed secret for a new principal.
func (s *Service) Register(ctx context.Context, principal, secret string) error {
	if principal == "" {
		return errors.New("principal is required")
	}
	if len(secret) < 8 {
		return errors.New("secret must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.Create(ctx, Credential{
		Principal:  principal,
		SecretHash: hash,
		CreatedAt:  time.Now().UTC(),
	})
}

// Login verifies the secret and returns a bearer token for the principal.
func (s *Service) Login(ctx context.Context, principal, secret string) (string, error) {
	cred, err := s.repo.Find(ctx, principal)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword(cred.SecretHash, []byte(secret)); err != nil {
		return "", ErrInvalidSecret
	}
	return SignPrincipal(principal, s.secret, s.tokenTTL)
}

// Verify validates a bearer token and returns the caller principal.
func (s *Service) Verify(token string) (string, error) {
	return VerifyPrincipal(token, s.secret)
}
