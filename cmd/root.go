package cmd

import (
	"fmt"
	"os"

	"catalog-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "catalog-manager",
	Short: "Catalog Manager Service",
	Long: `Catalog Manager is the backend of a storefront catalog.
It manages categories, products with color and size variants, product images
and customer accounts with rotating refresh tokens.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps reads better from a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
