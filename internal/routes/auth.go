package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sburn-labs/sburn/internal/auth"
)

// RegisterAuthRoutes wires credential endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
}
