package token

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the ledger operations and queries over HTTP.
type Handler struct {
	ledger *Ledger
}

// NewHandler constructs a ledger HTTP handler.
func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

type transferRequest struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Memo      string `json:"memo"`
}

type mintRequest struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// Transfer applies a burn-and-fee transfer from the authenticated principal.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	sender, _ := c.Locals("principal").(string)
	if sender == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing caller principal")
	}

	res, err := h.ledger.Transfer(c.UserContext(), TransferInput{
		Sender:    sender,
		Recipient: req.Recipient,
		Amount:    req.Amount,
		Memo:      req.Memo,
	})
	if err != nil {
		return rejectLedgerError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"burn":              res.Burn,
		"fee":               res.Fee,
		"net":               res.Net,
		"sender_balance":    res.SenderBalance,
		"recipient_balance": res.RecipientBalance,
	})
}

// Mint issues tokens; the ledger rejects callers other than the minter.
func (h *Handler) Mint(c *fiber.Ctx) error {
	var req mintRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	caller, _ := c.Locals("principal").(string)
	if caller == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing caller principal")
	}

	res, err := h.ledger.Mint(c.UserContext(), MintInput{
		Caller:    caller,
		Recipient: req.Recipient,
		Amount:    req.Amount,
	})
	if err != nil {
		return rejectLedgerError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"recipient_balance": res.RecipientBalance,
		"total_supply":      res.TotalSupply,
	})
}

// Balance returns the balance for any principal.
func (h *Handler) Balance(c *fiber.Ctx) error {
	principal := c.Params("principal")
	balance, err := h.ledger.GetBalance(c.UserContext(), principal)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"principal": principal,
		"balance":   balance,
	})
}

// Supply returns the supply counters.
func (h *Handler) Supply(c *fiber.Ctx) error {
	meta, err := h.ledger.Metadata(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"total_supply":     meta.TotalSupply,
		"effective_supply": meta.EffectiveSupply,
	})
}

// Stats returns the burn and fee counters.
func (h *Handler) Stats(c *fiber.Ctx) error {
	meta, err := h.ledger.Metadata(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"total_burned":         meta.TotalBurned,
		"total_fees_collected": meta.TotalFees,
	})
}

// Info returns the full token metadata document.
func (h *Handler) Info(c *fiber.Ctx) error {
	meta, err := h.ledger.Metadata(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(meta)
}

// rejectLedgerError maps ledger rejections to HTTP responses carrying the
// contract-style numeric code.
func rejectLedgerError(c *fiber.Ctx, err error) error {
	code := Code(err)
	if code == 0 {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	status := http.StatusUnprocessableEntity
	switch code {
	case CodeUnauthorized:
		status = http.StatusForbidden
	case CodeInvalidAmount, CodeBelowMinimum, CodeInvalidRecipient, CodeSelfTransfer, CodeAmountTooLarge:
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
