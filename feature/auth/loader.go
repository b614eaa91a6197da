package auth

import (
	"catalog-manager/core/clock"
	"catalog-manager/core/token"
	"catalog-manager/feature/auth/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	rotator *Rotator
	service *Service
	handler *Handler
}

// NewFeature wires the auth feature around an already configured signer.
func NewFeature(db *gorm.DB, signer *token.Signer, keys token.Keys, cfg token.Config, clk clock.Clock, logger *zap.Logger) *Feature {
	rotator := NewRotator(db, signer, keys.Pepper, cfg, clk, logger)
	svc := NewService(db, rotator, logger)
	return &Feature{rotator: rotator, service: svc, handler: NewHandler(svc)}
}

func (f *Feature) Name() string {
	return "auth"
}

func (f *Feature) IsEnabled() bool {
	return f.service.db != nil
}

func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

func (f *Feature) Models() []any {
	return models.All()
}

// Rotator exposes the token rotator, for access token verification.
func (f *Feature) Rotator() *Rotator {
	return f.rotator
}

// Service exposes the account service to commands.
func (f *Feature) Service() *Service {
	return f.service
}
