package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-manager/core/logger"
	"catalog-manager/core/metrics"
	"catalog-manager/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-manager/docs/swagger"
)

// @title Catalog Manager API
// @version 1.0
// @description API for managing the storefront catalog and customer accounts.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var startMigrate bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := wire(cmd.Context(), true)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if startMigrate {
			if err := a.migrate(); err != nil {
				logg.Fatal("Failed to migrate schema", zap.Error(err))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
		})

		// RayID first so every log line and metric can be traced.
		app.Use(rayid.New())
		app.Use(logger.Middleware(logg))
		app.Use(metrics.Middleware())

		app.Get("/metrics", metrics.Handler())
		if !a.cfg.Server.IsProduction() {
			app.Get("/swagger/*", swagger.HandlerDefault)
		}
		a.files.RegisterRoutes(app)

		api := app.Group("/api/v1")
		if err := a.features.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", a.cfg.Server.Port),
				zap.Strings("features", a.features.Names()),
			)
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(a.cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Shutdown did not complete", zap.Error(err))
		}
	},
}

func init() {
	startCmd.Flags().BoolVar(&startMigrate, "migrate", false, "Apply schema migrations before serving")
	RootCmd.AddCommand(startCmd)
}
