package token

import "fmt"

// Check orders for transfer validation. Deployments observed in the wild
// disagree on whether the minimum-amount check runs before or after the
// balance check, so the order is a deployment policy rather than a constant.
const (
	OrderMinFirst     = "min-first"
	OrderBalanceFirst = "balance-first"
)

const bpsDenominator = 10_000

// Params holds the configuration constants fixed for the lifetime of a
// ledger instance.
type Params struct {
	Name     string
	Symbol   string
	Decimals uint8
	TokenURI string

	BurnRateBps uint32
	FeeRateBps  uint32
	MinTransfer uint64

	BurnSink     string
	FeeRecipient string
	Minter       string

	// MaxMint caps a single mint operation. Zero disables the ceiling.
	MaxMint uint64

	AllowSelfTransfer bool
	CheckOrder        string
}

// Validate checks configuration-time invariants. Rates are not re-validated
// per operation.
func (p Params) Validate() error {
	if p.Name == "" || p.Symbol == "" {
		return fmt.Errorf("token name and symbol are required")
	}
	if p.BurnRateBps+p.FeeRateBps > bpsDenominator {
		return fmt.Errorf("burn rate %d + fee rate %d exceeds %d bps", p.BurnRateBps, p.FeeRateBps, bpsDenominator)
	}
	if p.Minter == "" {
		return fmt.Errorf("minter principal is required")
	}
	if p.BurnSink == "" || p.FeeRecipient == "" {
		return fmt.Errorf("burn sink and fee recipient principals are required")
	}
	if p.BurnSink == p.FeeRecipient {
		return fmt.Errorf("burn sink and fee recipient must be distinct principals")
	}
	switch p.CheckOrder {
	case OrderMinFirst, OrderBalanceFirst:
	default:
		return fmt.Errorf("unknown transfer check order %q", p.CheckOrder)
	}
	return nil
}
