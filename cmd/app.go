package cmd

import (
	"context"
	"fmt"

	"catalog-manager/core/clock"
	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/filestore"
	"catalog-manager/core/loader"
	"catalog-manager/core/logger"
	authmw "catalog-manager/core/middleware/auth"
	"catalog-manager/core/storage"
	"catalog-manager/core/token"
	"catalog-manager/feature/auth"
	authmodels "catalog-manager/feature/auth/models"
	"catalog-manager/feature/category"
	"catalog-manager/feature/integrity"
	"catalog-manager/feature/product"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// wiring holds the components shared by every command.
type wiring struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	files     *filestore.ObjectStore
	auth      *auth.Feature
	category  *category.Feature
	product   *product.Feature
	integrity *integrity.Feature
	features  *loader.Manager
}

// wire loads configuration and builds every feature. The bucket is only
// checked when withStorage is set, so offline commands do not need it.
func wire(ctx context.Context, withStorage bool) (*wiring, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logg = logg.With(zap.String("database", cfg.Database.Name))

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	files := filestore.New(client, cfg.Storage.Bucket, cfg.Files)
	if withStorage {
		if err := files.EnsureBucket(ctx); err != nil {
			return nil, err
		}
	}

	keys, err := cfg.Auth.Keys()
	if err != nil {
		return nil, err
	}
	clk := clock.System{}
	signer := token.NewSigner(cfg.Auth, keys, clk)

	a := &wiring{cfg: cfg, logger: logg, db: db, files: files}
	a.auth = auth.NewFeature(db, signer, keys, cfg.Auth, clk, logg)

	admin := []fiber.Handler{
		authmw.New(authmw.Config{Verifier: authmw.VerifierFunc(a.auth.Rotator().ParseAccessToken)}),
		authmw.RequireRole(authmodels.RoleAdmin),
	}
	a.category = category.NewFeature(db, logg, admin...)
	a.product = product.NewFeature(db, files, logg, cfg.Files.MaxImageBytes, admin...)

	a.features = loader.NewManager()
	a.features.Register(a.auth)
	a.features.Register(a.category)
	a.features.Register(a.product)

	// The integrity checks cover the tables of every feature above.
	a.integrity = integrity.NewFeature(db, files, logg, a.features.Models(), admin...)
	a.features.Register(a.integrity)
	return a, nil
}

// migrate brings the schema up to date with every feature's models.
func (a *wiring) migrate() error {
	return database.Migrate(a.db, a.features.Models()...)
}
