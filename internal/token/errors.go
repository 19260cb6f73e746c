package token

import "errors"

var (
	// ErrUnauthorized occurs when a caller without the minter privilege
	// attempts to mint.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidAmount indicates a zero or otherwise structurally invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrBelowMinimum indicates a transfer amount under the configured floor.
	ErrBelowMinimum = errors.New("amount below minimum transfer")

	// ErrInvalidRecipient indicates a disallowed recipient, such as the burn sink.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrInsufficientBalance occurs when the sender balance cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSelfTransfer indicates sender and recipient are the same principal.
	ErrSelfTransfer = errors.New("self transfer not allowed")

	// ErrAmountTooLarge indicates a mint amount above the configured ceiling.
	ErrAmountTooLarge = errors.New("amount exceeds mint ceiling")

	// ErrArithmeticOverflow occurs when a balance or counter update would
	// wrap its unsigned 64-bit range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

// Contract-style numeric codes reported on the wire. The values follow the
// u1xx convention of the deployed contract.
const (
	CodeUnauthorized        uint32 = 100
	CodeInvalidAmount       uint32 = 101
	CodeBelowMinimum        uint32 = 102
	CodeInvalidRecipient    uint32 = 103
	CodeInsufficientBalance uint32 = 104
	CodeSelfTransfer        uint32 = 105
	CodeAmountTooLarge      uint32 = 106
	CodeOverflow            uint32 = 107
)

// Code maps a ledger error to its numeric contract code. Unknown errors map
// to 0 so callers can distinguish ledger rejections from infrastructure
// failures.
func Code(err error) uint32 {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrBelowMinimum):
		return CodeBelowMinimum
	case errors.Is(err, ErrInvalidRecipient):
		return CodeInvalidRecipient
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer
	case errors.Is(err, ErrAmountTooLarge):
		return CodeAmountTooLarge
	case errors.Is(err, ErrArithmeticOverflow):
		return CodeOverflow
	default:
		return 0
	}
}
