package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tedytech/backoffice-service/internal/api/dto"
	"github.com/tedytech/backoffice-service/internal/auth"
	apperrors "github.com/tedytech/backoffice-service/pkg/util"
)

// AuthHandler exposes the access-code gate.
type AuthHandler struct {
	gate *auth.AccessGate
}

// NewAuthHandler constructs handler.
func NewAuthHandler(gate *auth.AccessGate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// Access POST /auth/access.
func (h *AuthHandler) Access(c *fiber.Ctx) error {
	var req dto.AccessRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.AccessCode) == "" {
		return apperrors.NewValidationError("accessCode required", nil)
	}

	token, expiresAt, err := h.gate.Exchange(req.AccessCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AccessResponse{Token: token, ExpiresAt: expiresAt}})
}
