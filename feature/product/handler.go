package product

import (
	"io"

	"catalog-manager/core/apperr"
	"catalog-manager/core/filestore"
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errBadBody = apperr.NewValidation("Product.Body.Invalid", "Request body is not valid JSON.")

// Handler handles HTTP requests for products.
type Handler struct {
	service *Service
	guards  []fiber.Handler
}

// NewHandler creates a new HTTP handler. guards run before every mutating route.
func NewHandler(service *Service, guards ...fiber.Handler) *Handler {
	return &Handler{service: service, guards: guards}
}

// RegisterRoutes registers the product routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/products")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/", h.guarded(h.HandleCreate)...)
	group.Put("/:id", h.guarded(h.HandleUpdate)...)
	group.Delete("/:id", h.guarded(h.HandleDelete)...)

	images := group.Group("/:id/colors/:colorId/images")
	images.Post("/", h.guarded(h.HandleAddImage)...)
	images.Delete("/:imageId", h.guarded(h.HandleRemoveImage)...)
	images.Put("/:imageId/main", h.guarded(h.HandleSetMainImage)...)
}

func (h *Handler) guarded(fn fiber.Handler) []fiber.Handler {
	return append(append([]fiber.Handler{}, h.guards...), fn)
}

type listParams struct {
	Search     string `query:"search"`
	CategoryID string `query:"categoryId"`
	Page       int    `query:"page"`
	PageSize   int    `query:"pageSize"`
	SortBy     string `query:"sortBy"`
	Desc       bool   `query:"desc"`
}

// HandleList lists products.
// @Summary List products
// @Tags products
// @Produce json
// @Param search query string false "Name contains"
// @Param categoryId query string false "Category ID"
// @Param page query int false "Page, from 1"
// @Param pageSize query int false "Page size, 1 to 100"
// @Param sortBy query string false "price or name"
// @Param desc query bool false "Descending order"
// @Success 200 {object} product.PagedResult
// @Router /api/v1/products [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	var p listParams
	if err := c.QueryParser(&p); err != nil {
		return apperr.Respond(c, apperr.NewValidation("Product.Query.Invalid", "Query parameters are not valid."))
	}

	q := ListQuery{Search: p.Search, Page: p.Page, PageSize: p.PageSize, SortBy: p.SortBy, Desc: p.Desc}
	if p.CategoryID != "" {
		id, err := uuid.Parse(p.CategoryID)
		if err != nil {
			return apperr.Respond(c, errBadID)
		}
		q.CategoryID = id
	}

	out, err := h.service.ListProducts(c.Context(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleGet returns one product with its colors, variants and images.
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} product.Detail
// @Failure 404 {object} apperr.Error
// @Router /api/v1/products/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, errBadID)
	}
	out, err := h.service.GetProduct(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleCreate creates a product.
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param body body product.productPayload true "Product"
// @Success 201 {object} product.Detail
// @Failure 400 {object} apperr.Error
// @Failure 404 {object} apperr.Error
// @Failure 409 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/products [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, errBadBody)
	}
	out, err := h.service.CreateProduct(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HandleUpdate reconciles a product with the submitted state.
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param body body product.productPayload true "Product"
// @Success 200 {object} product.Detail
// @Failure 400 {object} apperr.Error
// @Failure 404 {object} apperr.Error
// @Failure 409 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/products/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, errBadID)
	}
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, errBadBody)
	}
	out, err := h.service.UpdateProduct(c.Context(), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// HandleDelete deletes a product and its images.
// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/products/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, errBadID)
	}
	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddImage uploads an image for a color.
// @Summary Add color image
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param colorId path string true "Color ID"
// @Param file formData file true "Image file"
// @Param isMain formData bool false "Make it the main image"
// @Success 201 {object} product.ImageDetail
// @Failure 400 {object} apperr.Error
// @Failure 404 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/products/{id}/colors/{colorId}/images [post]
func (h *Handler) HandleAddImage(c *fiber.Ctx) error {
	productID, colorID, ok := h.colorParams(c)
	if !ok {
		return apperr.Respond(c, errBadID)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.Respond(c, filestore.ErrEmpty)
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer f.Close()

	// One byte over the limit is enough for the store to reject the file.
	content, err := io.ReadAll(io.LimitReader(f, h.service.maxImageBytes+1))
	if err != nil {
		return h.fail(c, err)
	}

	out, err := h.service.AddImage(c.Context(), productID, colorID, ImageUpload{
		Filename: fh.Filename,
		Content:  content,
		IsMain:   c.FormValue("isMain") == "true",
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HandleRemoveImage removes an image from a color.
// @Summary Remove color image
// @Tags products
// @Param id path string true "Product ID"
// @Param colorId path string true "Color ID"
// @Param imageId path string true "Image ID"
// @Success 204
// @Failure 404 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/products/{id}/colors/{colorId}/images/{imageId} [delete]
func (h *Handler) HandleRemoveImage(c *fiber.Ctx) error {
	productID, colorID, imageID, ok := h.imageParams(c)
	if !ok {
		return apperr.Respond(c, errBadID)
	}
	if err := h.service.RemoveImage(c.Context(), productID, colorID, imageID); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSetMainImage flags an image as the color's main image.
// @Summary Set main color image
// @Tags products
// @Param id path string true "Product ID"
// @Param colorId path string true "Color ID"
// @Param imageId path string true "Image ID"
// @Success 204
// @Failure 404 {object} apperr.Error
// @Security BearerAuth
// @Router /api/v1/products/{id}/colors/{colorId}/images/{imageId}/main [put]
func (h *Handler) HandleSetMainImage(c *fiber.Ctx) error {
	productID, colorID, imageID, ok := h.imageParams(c)
	if !ok {
		return apperr.Respond(c, errBadID)
	}
	if err := h.service.SetMainImage(c.Context(), productID, colorID, imageID); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) colorParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	colorID, err := uuid.Parse(c.Params("colorId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return productID, colorID, true
}

func (h *Handler) imageParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, uuid.UUID, bool) {
	productID, colorID, ok := h.colorParams(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	imageID, err := uuid.Parse(c.Params("imageId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return productID, colorID, imageID, true
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if apperr.KindOf(err) == apperr.Unexpected {
		logger.WithRayID(h.service.logger, c).Error("Product request failed", zap.Error(err))
	}
	return apperr.Respond(c, err)
}
