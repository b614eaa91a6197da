package category

import (
	"catalog-manager/feature/category/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the category feature. guards protect mutating routes.
func NewFeature(db *gorm.DB, logger *zap.Logger, guards ...fiber.Handler) *Feature {
	svc := NewService(db, logger)
	return &Feature{service: svc, handler: NewHandler(svc, guards...)}
}

func (f *Feature) Name() string {
	return "category"
}

// IsEnabled reports whether a database is available.
func (f *Feature) IsEnabled() bool {
	return f.service.db != nil
}

func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

func (f *Feature) Models() []any {
	return []any{&models.Category{}}
}
