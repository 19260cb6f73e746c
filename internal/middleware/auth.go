package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sburn-labs/sburn/internal/auth"
)

// Auth validates bearer tokens and stores the caller principal in request
// locals. Every mutating ledger route runs behind it; the ledger trusts the
// principal it finds there as the authenticated caller.
func Auth(service *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		principal, err := service.Verify(strings.TrimSpace(authz[len("Bearer "):]))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		c.Locals("principal", principal)
		return c.Next()
	}
}
