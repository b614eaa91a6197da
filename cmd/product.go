package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// productDetailCmd prints a product with its colors, variants and images.
var productDetailCmd = &cobra.Command{
	Use:   "product [id]",
	Short: "View a product with its colors, variants and images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q: %w", args[0], err)
		}

		a, err := wire(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		a.logger.Debug("Loading product", zap.String("id", id.String()))
		p, err := a.product.Service().GetProduct(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Println("\n--- Product Detail View ---")
		fmt.Printf("ID:             %s\n", p.ID)
		fmt.Printf("Name:           %s\n", p.Name)
		fmt.Printf("Category:       %s\n", p.CategoryName)
		fmt.Printf("Min Price:      %s\n", p.MinPrice.StringFixed(2))
		fmt.Println("---------------------------")
		for _, c := range p.Colors {
			tag := ""
			if c.IsMain {
				tag = " (main)"
			}
			fmt.Printf("Color:          %s%s\n", c.Name, tag)
			for _, v := range c.Variants {
				fmt.Printf("  %-4s stock %-5d price %s\n", v.Size, v.Stock, v.Price.StringFixed(2))
			}
			for _, img := range c.Images {
				marker := "-"
				if img.IsMain {
					marker = "*"
				}
				fmt.Printf("  %s %s\n", marker, img.URL)
			}
		}
		fmt.Println("---------------------------")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(productDetailCmd)
}
