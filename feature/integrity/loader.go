package integrity

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the integrity feature. models are the tables the schema
// check expects.
func NewFeature(db *gorm.DB, files Files, logger *zap.Logger, models []any, guards ...fiber.Handler) *Feature {
	svc := NewService(db, files, logger, models)
	return &Feature{service: svc, handler: NewHandler(svc, guards...)}
}

func (f *Feature) Name() string {
	return "integrity"
}

func (f *Feature) IsEnabled() bool {
	return f.service.db != nil && f.service.files != nil
}

func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the checks to commands.
func (f *Feature) Service() *Service {
	return f.service
}
