package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sburn-labs/sburn/internal/token"
)

// RegisterTokenRoutes wires ledger operations and read-only queries.
// Queries stay public: results are identical regardless of caller identity.
func RegisterTokenRoutes(public, protected fiber.Router, h *token.Handler) {
	protected.Post("/token/transfer", h.Transfer)
	protected.Post("/token/mint", h.Mint)

	public.Get("/token/balance/:principal", h.Balance)
	public.Get("/token/supply", h.Supply)
	public.Get("/token/stats", h.Stats)
	public.Get("/token/metadata", h.Info)
}
