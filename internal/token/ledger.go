// Package token implements the sBurn fungible-token ledger: an
// account-balance store with a burn-and-fee transfer mechanism. Every
// transfer deducts a protocol fee from the moved amount, splits it between
// a burn sink and a fee recipient, and maintains system-wide counters that
// tie individual balances to total, burned and effective supply.
package token

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sburn-labs/sburn/internal/events"
)

// Ledger is the per-operation state-transition engine. It owns the
// validation sequence and builds the atomic changesets applied to the
// store; it never mutates balances or counters outside of Store.Apply.
type Ledger struct {
	store  Store
	params Params
	sink   events.Sink
	logger *slog.Logger
}

// NewLedger validates params and constructs a ledger instance. A nil sink
// disables event emission.
func NewLedger(store Store, params Params, sink events.Sink, logger *slog.Logger) (*Ledger, error) {
	if params.CheckOrder == "" {
		params.CheckOrder = OrderMinFirst
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("ledger params: %w", err)
	}
	return &Ledger{store: store, params: params, sink: sink, logger: logger}, nil
}

// Params returns the immutable configuration of this instance.
func (l *Ledger) Params() Params {
	return l.params
}

// TransferInput captures one transfer request. The sender is the
// authenticated caller; delegated transfers do not exist in this design.
type TransferInput struct {
	Sender    string
	Recipient string
	Amount    uint64
	Memo      string
}

// TransferResult reports the committed split and resulting balances.
type TransferResult struct {
	Burn             uint64
	Fee              uint64
	Net              uint64
	SenderBalance    uint64
	RecipientBalance uint64
}

// Transfer validates and applies a burn-and-fee transfer. Validation fully
// precedes mutation: on any failure the ledger state is untouched.
func (l *Ledger) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	if input.Amount == 0 {
		return TransferResult{}, ErrInvalidAmount
	}

	checkMin := func() error {
		if input.Amount < l.params.MinTransfer {
			return ErrBelowMinimum
		}
		return nil
	}
	checkBalance := func() error {
		balance, err := l.store.Balance(ctx, input.Sender)
		if err != nil {
			return err
		}
		if balance < input.Amount {
			return ErrInsufficientBalance
		}
		return nil
	}

	first, last := checkMin, checkBalance
	if l.params.CheckOrder == OrderBalanceFirst {
		first, last = checkBalance, checkMin
	}

	if err := first(); err != nil {
		return TransferResult{}, err
	}
	if input.Recipient == l.params.BurnSink {
		return TransferResult{}, ErrInvalidRecipient
	}
	if input.Sender == input.Recipient && !l.params.AllowSelfTransfer {
		return TransferResult{}, ErrSelfTransfer
	}
	if err := last(); err != nil {
		return TransferResult{}, err
	}

	split := ComputeSplit(input.Amount, l.params.BurnRateBps, l.params.FeeRateBps)

	cs := Changeset{
		Debits: []Entry{{Account: input.Sender, Amount: input.Amount}},
		Credits: []Entry{
			{Account: input.Recipient, Amount: split.Net},
			{Account: l.params.BurnSink, Amount: split.Burn},
			{Account: l.params.FeeRecipient, Amount: split.Fee},
		},
		Burned: split.Burn,
		Fees:   split.Fee,
	}
	if err := l.store.Apply(ctx, cs); err != nil {
		return TransferResult{}, err
	}

	senderBalance, err := l.store.Balance(ctx, input.Sender)
	if err != nil {
		return TransferResult{}, err
	}
	recipientBalance, err := l.store.Balance(ctx, input.Recipient)
	if err != nil {
		return TransferResult{}, err
	}

	l.emit(ctx, events.Event{
		ID:        events.NewID(),
		Kind:      events.KindTransfer,
		Sender:    input.Sender,
		Recipient: input.Recipient,
		Amount:    input.Amount,
		Burn:      split.Burn,
		Fee:       split.Fee,
		Net:       split.Net,
		Memo:      input.Memo,
	})

	return TransferResult{
		Burn:             split.Burn,
		Fee:              split.Fee,
		Net:              split.Net,
		SenderBalance:    senderBalance,
		RecipientBalance: recipientBalance,
	}, nil
}

// MintInput captures one issuance request.
type MintInput struct {
	Caller    string
	Recipient string
	Amount    uint64
}

// MintResult reports the recipient balance and total supply after issuance.
type MintResult struct {
	RecipientBalance uint64
	TotalSupply      uint64
}

// Mint issues new tokens to the recipient. Only the configured minter
// principal may mint.
func (l *Ledger) Mint(ctx context.Context, input MintInput) (MintResult, error) {
	if input.Caller != l.params.Minter {
		return MintResult{}, ErrUnauthorized
	}
	if input.Amount == 0 {
		return MintResult{}, ErrInvalidAmount
	}
	if l.params.MaxMint > 0 && input.Amount > l.params.MaxMint {
		return MintResult{}, ErrAmountTooLarge
	}

	cs := Changeset{
		Credits: []Entry{{Account: input.Recipient, Amount: input.Amount}},
		Supply:  input.Amount,
	}
	if err := l.store.Apply(ctx, cs); err != nil {
		return MintResult{}, err
	}

	balance, err := l.store.Balance(ctx, input.Recipient)
	if err != nil {
		return MintResult{}, err
	}
	agg, err := l.store.Aggregates(ctx)
	if err != nil {
		return MintResult{}, err
	}

	l.emit(ctx, events.Event{
		ID:        events.NewID(),
		Kind:      events.KindMint,
		Recipient: input.Recipient,
		Amount:    input.Amount,
	})

	return MintResult{RecipientBalance: balance, TotalSupply: agg.TotalSupply}, nil
}

func (l *Ledger) emit(ctx context.Context, event events.Event) {
	if l.sink == nil {
		return
	}
	if err := l.sink.Emit(ctx, event); err != nil && l.logger != nil {
		l.logger.Warn("event sink failed", "event_id", event.ID, "kind", event.Kind, "error", err)
	}
}

// GetBalance returns the balance for any principal, zero when unknown.
func (l *Ledger) GetBalance(ctx context.Context, account string) (uint64, error) {
	return l.store.Balance(ctx, account)
}

// TotalSupply returns the sum of all minted tokens.
func (l *Ledger) TotalSupply(ctx context.Context) (uint64, error) {
	agg, err := l.store.Aggregates(ctx)
	return agg.TotalSupply, err
}

// EffectiveSupply returns total supply minus everything ever burned.
func (l *Ledger) EffectiveSupply(ctx context.Context) (uint64, error) {
	agg, err := l.store.Aggregates(ctx)
	return agg.EffectiveSupply(), err
}

// TotalBurned returns the sum of all amounts routed to the burn sink.
func (l *Ledger) TotalBurned(ctx context.Context) (uint64, error) {
	agg, err := l.store.Aggregates(ctx)
	return agg.TotalBurned, err
}

// TotalFeesCollected returns the sum of all amounts routed to the fee
// recipient.
func (l *Ledger) TotalFeesCollected(ctx context.Context) (uint64, error) {
	agg, err := l.store.Aggregates(ctx)
	return agg.TotalFees, err
}

// Metadata aggregates token identity, rates and counters into one value.
type Metadata struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Decimals        uint8  `json:"decimals"`
	TokenURI        string `json:"token_uri"`
	BurnRateBps     uint32 `json:"burn_rate_bps"`
	FeeRateBps      uint32 `json:"fee_rate_bps"`
	MinTransfer     uint64 `json:"min_transfer"`
	TotalSupply     uint64 `json:"total_supply"`
	TotalBurned     uint64 `json:"total_burned"`
	TotalFees       uint64 `json:"total_fees_collected"`
	EffectiveSupply uint64 `json:"effective_supply"`
}

// Metadata returns the combined token metadata and aggregate counters.
// Results are identical regardless of caller identity.
func (l *Ledger) Metadata(ctx context.Context) (Metadata, error) {
	agg, err := l.store.Aggregates(ctx)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Name:            l.params.Name,
		Symbol:          l.params.Symbol,
		Decimals:        l.params.Decimals,
		TokenURI:        l.params.TokenURI,
		BurnRateBps:     l.params.BurnRateBps,
		FeeRateBps:      l.params.FeeRateBps,
		MinTransfer:     l.params.MinTransfer,
		TotalSupply:     agg.TotalSupply,
		TotalBurned:     agg.TotalBurned,
		TotalFees:       agg.TotalFees,
		EffectiveSupply: agg.EffectiveSupply(),
	}, nil
}
