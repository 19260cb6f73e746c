package token

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists balances and aggregate counters in PostgreSQL.
// Every Apply runs in a single transaction that locks the aggregates row
// first, so mutating operations are serialized into a strict total order.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Balances are stored in BIGINT columns, so the practical ceiling is
// MaxInt64 rather than the full uint64 range.
const maxStoredAmount = math.MaxInt64

// EnsureSchema creates the ledger tables and the aggregates row when they
// do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS token_accounts (
            principal TEXT PRIMARY KEY,
            balance   BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0)
        );
        CREATE TABLE IF NOT EXISTS token_aggregates (
            id           SMALLINT PRIMARY KEY CHECK (id = 1),
            total_supply BIGINT NOT NULL DEFAULT 0,
            total_burned BIGINT NOT NULL DEFAULT 0,
            total_fees   BIGINT NOT NULL DEFAULT 0
        );
        INSERT INTO token_aggregates (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure token schema: %w", err)
	}
	return nil
}

// Balance returns the stored balance for a principal, zero when unknown.
func (s *PostgresStore) Balance(ctx context.Context, account string) (uint64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `SELECT balance FROM token_accounts WHERE principal = $1`, account).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read balance for %s: %w", account, err)
	}
	return uint64(balance), nil
}

// Aggregates returns the system-wide counters.
func (s *PostgresStore) Aggregates(ctx context.Context) (Aggregates, error) {
	var supply, burned, fees int64
	err := s.db.QueryRow(ctx,
		`SELECT total_supply, total_burned, total_fees FROM token_aggregates WHERE id = 1`,
	).Scan(&supply, &burned, &fees)
	if err != nil {
		return Aggregates{}, fmt.Errorf("read aggregates: %w", err)
	}
	return Aggregates{
		TotalSupply: uint64(supply),
		TotalBurned: uint64(burned),
		TotalFees:   uint64(fees),
	}, nil
}

// Apply commits a changeset in one transaction. Validation happens on the
// locked rows, so nothing is written unless every mutation is admissible.
func (s *PostgresStore) Apply(ctx context.Context, cs Changeset) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin apply: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var supply, burned, fees int64
	err = tx.QueryRow(ctx,
		`SELECT total_supply, total_burned, total_fees FROM token_aggregates WHERE id = 1 FOR UPDATE`,
	).Scan(&supply, &burned, &fees)
	if err != nil {
		return fmt.Errorf("lock aggregates: %w", err)
	}

	staged := make(map[string]int64)
	load := func(account string) (int64, error) {
		if v, ok := staged[account]; ok {
			return v, nil
		}
		var balance int64
		err := tx.QueryRow(ctx,
			`SELECT balance FROM token_accounts WHERE principal = $1 FOR UPDATE`, account,
		).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		if err != nil {
			return 0, fmt.Errorf("lock balance for %s: %w", account, err)
		}
		return balance, nil
	}

	for _, d := range cs.Debits {
		if d.Amount > maxStoredAmount {
			return ErrInsufficientBalance
		}
		bal, err := load(d.Account)
		if err != nil {
			return err
		}
		if bal < int64(d.Amount) {
			return ErrInsufficientBalance
		}
		staged[d.Account] = bal - int64(d.Amount)
	}
	for _, c := range cs.Credits {
		bal, err := load(c.Account)
		if err != nil {
			return err
		}
		if c.Amount > maxStoredAmount || bal > maxStoredAmount-int64(c.Amount) {
			return ErrArithmeticOverflow
		}
		staged[c.Account] = bal + int64(c.Amount)
	}

	for _, step := range []struct {
		cur   *int64
		delta uint64
	}{
		{&supply, cs.Supply},
		{&burned, cs.Burned},
		{&fees, cs.Fees},
	} {
		if step.delta > maxStoredAmount || *step.cur > maxStoredAmount-int64(step.delta) {
			return ErrArithmeticOverflow
		}
		*step.cur += int64(step.delta)
	}

	for account, bal := range staged {
		_, err := tx.Exec(ctx, `INSERT INTO token_accounts (principal, balance) VALUES ($1, $2)
            ON CONFLICT (principal) DO UPDATE SET balance = EXCLUDED.balance`, account, bal)
		if err != nil {
			return fmt.Errorf("write balance for %s: %w", account, err)
		}
	}
	_, err = tx.Exec(ctx,
		`UPDATE token_aggregates SET total_supply = $1, total_burned = $2, total_fees = $3 WHERE id = 1`,
		supply, burned, fees)
	if err != nil {
		return fmt.Errorf("write aggregates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit apply: %w", err)
	}
	return nil
}
