package category

import (
	"catalog-manager/core/apperr"
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errBadID = apperr.NewValidation("Category.Id.Invalid", "Category id must be a UUID.")

// Handler handles HTTP requests for categories.
type Handler struct {
	service *Service
	guards  []fiber.Handler
}

// NewHandler creates a new HTTP handler. guards run before every mutating route.
func NewHandler(service *Service, guards ...fiber.Handler) *Handler {
	return &Handler{service: service, guards: guards}
}

// RegisterRoutes registers the category routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/categories")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/", h.guarded(h.HandleCreate)...)
	group.Put("/:id", h.guarded(h.HandleUpdate)...)
	group.Delete("/:id", h.guarded(h.HandleDelete)...)
}

func (h *Handler) guarded(fn fiber.Handler) []fiber.Handler {
	return append(append([]fiber.Handler{}, h.guards...), fn)
}

// HandleList lists categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} category.Response
// @Router /api/v1/categories [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	out, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleGet returns one category.
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} category.Response
// @Failure 404 {object} apperr.Error
// @Router /api/v1/categories/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, errBadID)
	}
	out, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleCreate creates a category.
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param body body category.Request true "Category"
// @Success 201 {object} category.Response
// @Failure 400 {object} apperr.Error
// @Failure 409 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/categories [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	out, err := h.service.Create(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HandleUpdate updates a category.
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param body body category.Request true "Category"
// @Success 200 {object} category.Response
// @Failure 404 {object} apperr.Error
// @Failure 409 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/categories/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, errBadID)
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	out, err := h.service.Update(c.Context(), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleDelete deletes an unused category.
// @Summary Delete category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} apperr.Error
// @Failure 409 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/categories/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, errBadID)
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if apperr.KindOf(err) == apperr.Unexpected {
		logger.WithRayID(h.service.logger, c).Error("Category request failed", zap.Error(err))
	}
	return apperr.Respond(c, err)
}
