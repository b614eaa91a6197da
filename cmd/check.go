package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkFix bool

// checkCmd runs the integrity checks from the command line.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the schema and the stored product images",
	Long: `Compares the database schema with the models, then compares product
image rows with the objects in the bucket. With --fix, objects that no image
row references are deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := wire(ctx, false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()
		svc := a.integrity.Service()

		schema, err := svc.CheckSchema(ctx)
		if err != nil {
			return err
		}
		fmt.Println("\n--- Schema ---")
		if schema.Matched {
			fmt.Println("All tables match the models.")
		}
		for _, t := range schema.Tables {
			if t.Missing {
				fmt.Printf("%-20s missing table\n", t.Table)
				continue
			}
			fmt.Printf("%-20s missing columns %v\n", t.Table, t.MissingColumns)
		}

		images, err := svc.CheckImages(ctx)
		if err != nil {
			return err
		}
		fmt.Println("\n--- Images ---")
		fmt.Printf("Rows:     %d\n", images.Rows)
		fmt.Printf("Objects:  %d\n", images.Objects)
		fmt.Printf("Missing:  %d\n", len(images.Missing))
		for _, u := range images.Missing {
			fmt.Printf("  - %s\n", u)
		}
		fmt.Printf("Orphans:  %d\n", len(images.Orphans))
		for _, u := range images.Orphans {
			fmt.Printf("  - %s\n", u)
		}

		if checkFix && len(images.Orphans) > 0 {
			a.logger.Info("Removing orphaned objects", zap.Int("count", len(images.Orphans)))
			svc.FixImages(ctx, images)
			fmt.Printf("Removed:  %d\n", len(images.Removed))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "Delete orphaned objects")
	RootCmd.AddCommand(checkCmd)
}
