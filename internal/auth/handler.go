package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes credential endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type credentialRequest struct {
	Principal string `json:"principal"`
	Secret    string `json:"secret"`
}

// Register stores credentials for a new principal.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.Register(c.UserContext(), req.Principal, req.Secret); err != nil {
		if errors.Is(err, ErrPrincipalExists) {
			return fiber.NewError(http.StatusConflict, "principal already registered")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"principal": req.Principal})
}

// Login verifies credentials and issues a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tok, err := h.service.Login(c.UserContext(), req.Principal, req.Secret)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) || errors.Is(err, ErrInvalidSecret) {
			return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"access_token": tok, "token_type": "Bearer"})
}
