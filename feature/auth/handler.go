package auth

import (
	"catalog-manager/core/apperr"
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errBadBody = apperr.NewValidation("Auth.Body.Invalid", "Request body is not valid JSON.")

// Handler handles HTTP requests for accounts and tokens.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the auth routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/auth")
	group.Post("/register", h.HandleRegister)
	group.Post("/login", h.HandleLogin)
	group.Post("/refresh", h.HandleRefresh)
	group.Post("/logout", h.HandleLogout)
}

// HandleRegister creates a customer account.
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.RegisterRequest true "Account"
// @Success 201 {object} auth.UserResponse
// @Failure 400 {object} apperr.Error
// @Failure 409 {object} apperr.Error
// @Router /api/v1/auth/register [post]
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, errBadBody)
	}
	out, err := h.service.Register(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HandleLogin exchanges credentials for a token pair.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.LoginRequest true "Credentials"
// @Success 200 {object} auth.TokenPair
// @Failure 401 {object} apperr.Error
// @Router /api/v1/auth/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, errBadBody)
	}
	out, err := h.service.Login(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleRefresh rotates a refresh token.
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.RefreshRequest true "Refresh token"
// @Success 200 {object} auth.TokenPair
// @Failure 400 {object} apperr.Error
// @Router /api/v1/auth/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, errBadBody)
	}
	out, err := h.service.Refresh(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleLogout revokes a refresh token.
// @Summary Logout
// @Tags auth
// @Accept json
// @Param body body auth.RefreshRequest true "Refresh token"
// @Success 204
// @Router /api/v1/auth/logout [post]
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, errBadBody)
	}
	if err := h.service.Logout(c.Context(), req); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if apperr.KindOf(err) == apperr.Unexpected {
		logger.WithRayID(h.service.logger, c).Error("Auth request failed", zap.Error(err))
	}
	return apperr.Respond(c, err)
}
