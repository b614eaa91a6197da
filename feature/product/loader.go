package product

import (
	"catalog-manager/core/filestore"
	"catalog-manager/feature/product/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the product feature. guards protect mutating routes.
func NewFeature(db *gorm.DB, files filestore.Store, logger *zap.Logger, maxImageBytes int64, guards ...fiber.Handler) *Feature {
	svc := NewService(db, files, logger, maxImageBytes)
	return &Feature{service: svc, handler: NewHandler(svc, guards...)}
}

func (f *Feature) Name() string {
	return "product"
}

// IsEnabled reports whether the database and file store are available.
func (f *Feature) IsEnabled() bool {
	return f.service.db != nil && f.service.files != nil
}

func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

func (f *Feature) Models() []any {
	return models.All()
}

// Service exposes the product service to commands.
func (f *Feature) Service() *Service {
	return f.service
}
