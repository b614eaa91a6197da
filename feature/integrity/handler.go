package integrity

import (
	"catalog-manager/core/apperr"
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
	guards  []fiber.Handler
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, guards ...fiber.Handler) *Handler {
	return &Handler{service: service, guards: guards}
}

// RegisterRoutes registers the integrity routes behind the guards.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity", h.guards...)
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/images", h.HandleImageCheck)
}

// HandleIntegrityCheck runs every check.
// @Summary Run All Integrity Checks
// @Description Checks the database schema and the product images in storage.
// @Tags integrity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /api/v1/integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := fiber.Map{}

	if schema, err := h.service.CheckSchema(ctx); err != nil {
		l.Error("Schema check failed", zap.Error(err))
		report["schema"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if images, err := h.service.CheckImages(ctx); err != nil {
		l.Error("Image check failed", zap.Error(err))
		report["images"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["images"] = images
	}

	return c.JSON(report)
}

// HandleSchemaCheck compares the live schema with the models.
// @Summary Check Schema
// @Tags integrity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} integrity.SchemaReport
// @Failure 500 {object} apperr.Error
// @Router /api/v1/integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// HandleImageCheck compares image rows with stored objects.
// @Summary Check Images
// @Description Lists image rows without an object and objects without a row. With fix=true orphaned objects are deleted.
// @Tags integrity
// @Produce json
// @Security BearerAuth
// @Param fix query boolean false "Delete orphaned objects"
// @Success 200 {object} integrity.ImageReport
// @Failure 500 {object} apperr.Error
// @Router /api/v1/integrity/images [get]
func (h *Handler) HandleImageCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckImages(c.Context())
	if err != nil {
		return h.fail(c, err)
	}

	if len(report.Missing) > 0 {
		logger.WithRayID(h.service.logger, c).Warn("Image rows without objects", zap.Strings("missing", report.Missing))
	}
	if c.QueryBool("fix") && len(report.Orphans) > 0 {
		h.service.FixImages(c.Context(), report)
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	logger.WithRayID(h.service.logger, c).Error("Integrity check failed", zap.Error(err))
	return apperr.Respond(c, err)
}
