package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores principal credentials in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a credential repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the credentials table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS principal_credentials (
            principal   TEXT PRIMARY KEY,
            secret_hash BYTEA NOT NULL,
            created_at  TIMESTAMPTZ NOT NULL
        );`
	if _, err := r.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure credentials schema: %w", err)
	}
	return nil
}

// Create inserts a credential record.
func (r *PostgresRepository) Create(ctx context.Context, cred Credential) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO principal_credentials (principal, secret_hash, created_at) VALUES ($1, $2, $3)`,
		cred.Principal, cred.SecretHash, cred.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrPrincipalExists
	}
	return err
}

// Find fetches a credential by principal identifier.
func (r *PostgresRepository) Find(ctx context.Context, principal string) (Credential, error) {
	row := r.db.QueryRow(ctx,
		`SELECT principal, secret_hash, created_at FROM principal_credentials WHERE principal = $1`, principal)
	var cred Credential
	if err := row.Scan(&cred.Principal, &cred.SecretHash, &cred.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Credential{}, ErrPrincipalNotFound
		}
		return Credential{}, err
	}
	return cred, nil
}
