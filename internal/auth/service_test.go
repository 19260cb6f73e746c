package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), "test-signing-secret")
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Register(ctx, "SP000WALLETA", "correct horse battery"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, "SP000WALLETA", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	principal, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal != "SP000WALLETA" {
		t.Fatalf("verify returned principal %q", principal)
	}
}

func TestLoginWrongSecret(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Register(ctx, "SP000WALLETA", "correct horse battery"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, "SP000WALLETA", "wrong secret entirely")
	if !errors.Is(err, ErrInvalidSecret) {
		t.Fatalf("expected ErrInvalidSecret, got %v", err)
	}
}

func TestLoginUnknownPrincipal(t *testing.T) {
	svc := newTestService()

	_, err := svc.Login(context.Background(), "SP000NOBODY", "whatever whatever")
	if !errors.Is(err, ErrPrincipalNotFound) {
		t.Fatalf("expected ErrPrincipalNotFound, got %v", err)
	}
}

func TestRegisterDuplicatePrincipal(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Register(ctx, "SP000WALLETA", "correct horse battery"); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := svc.Register(ctx, "SP000WALLETA", "another long secret")
	if !errors.Is(err, ErrPrincipalExists) {
		t.Fatalf("expected ErrPrincipalExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Register(ctx, "", "long enough secret"); err == nil {
		t.Fatal("expected error for empty principal")
	}
	if err := svc.Register(ctx, "SP000WALLETA", "short"); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestTokenSignatureMismatch(t *testing.T) {
	token, err := SignPrincipal("SP000WALLETA", []byte("secret-one"), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyPrincipal(token, []byte("secret-two")); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestTokenExpiry(t *testing.T) {
	token, err := SignPrincipal("SP000WALLETA", []byte("secret-one"), -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyPrincipal(token, []byte("secret-one")); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenMalformed(t *testing.T) {
	for _, tok := range []string{"", "a.b", "a.b.c.d", "!!!.???.###"} {
		if _, err := VerifyPrincipal(tok, []byte("secret-one")); err == nil {
			t.Fatalf("expected malformed token %q to be rejected", tok)
		}
	}
}
