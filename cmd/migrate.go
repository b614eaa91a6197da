package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := wire(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if err := a.migrate(); err != nil {
			return err
		}
		a.logger.Info("Schema is up to date", zap.Int("models", len(a.features.Models())))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
