package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexushub/internal/api/dto"
	"github.com/spec-kit/nexushub/internal/auth"
	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/service"
	apperrors "github.com/spec-kit/nexushub/pkg/util/errorutil"
)

// SessionHandler exposes login and logout.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login POST /auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	role := domain.Role(strings.ToLower(strings.TrimSpace(string(req.Role))))
	if !role.Valid() {
		return apperrors.NewValidationError("role must be admin or standard", map[string]any{"role": req.Role})
	}
	result, err := h.sessions.Login(c.UserContext(), req.Email, role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Identity:  identityResponse(result.Identity),
	}})
}

// Logout POST /auth/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	if err := h.sessions.Logout(c.UserContext(), principal.SessionID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me GET /auth/me.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	return c.JSON(fiber.Map{"data": identityResponse(principal.Identity)})
}
