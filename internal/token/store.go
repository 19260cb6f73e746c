package token

import "context"

// Aggregates are the system-wide counters maintained by the ledger.
// TotalSupply only ever grows through mints; burned tokens stay counted in
// it. Effective supply is derived, never stored.
type Aggregates struct {
	TotalSupply uint64
	TotalBurned uint64
	TotalFees   uint64
}

// EffectiveSupply returns the circulating amount excluding everything ever
// routed to the burn sink.
func (a Aggregates) EffectiveSupply() uint64 {
	return a.TotalSupply - a.TotalBurned
}

// Entry is a single balance mutation inside a changeset.
type Entry struct {
	Account string
	Amount  uint64
}

// Changeset is the full set of mutations produced by one committed
// operation. A store applies it atomically: either every debit, credit and
// counter delta lands, or none do.
type Changeset struct {
	Debits  []Entry
	Credits []Entry

	// Counter deltas, added to the corresponding aggregate.
	Supply uint64
	Burned uint64
	Fees   uint64
}

// Store is the persistence contract for balances and aggregate counters.
// Unknown accounts read as zero; accounts are created implicitly on first
// credit and never deleted.
type Store interface {
	Balance(ctx context.Context, account string) (uint64, error)
	Aggregates(ctx context.Context) (Aggregates, error)

	// Apply commits a changeset atomically. It fails with
	// ErrInsufficientBalance if any debit exceeds the account balance and
	// with ErrArithmeticOverflow if any credit or counter would wrap; on
	// failure no mutation is persisted.
	Apply(ctx context.Context, cs Changeset) error
}
