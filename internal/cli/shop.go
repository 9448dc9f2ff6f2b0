package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Catalog browsing and purchases",
	}

	cmd.AddCommand(newShopClothingCmd())
	cmd.AddCommand(newShopFurnitureCmd())
	cmd.AddCommand(newShopBuyCmd())

	return cmd
}

func newShopClothingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clothing",
		Short: "List clothing in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []ClothingItem

			if err := client.Get("/api/v1/catalog/clothing", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newShopFurnitureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "furniture",
		Short: "List furniture in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []FurnitureItem

			if err := client.Get("/api/v1/catalog/furniture", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newShopBuyCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "buy <name>",
		Short: "Buy an item from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "clothing" && kind != "furniture" {
				return fmt.Errorf("--kind must be clothing or furniture")
			}

			req := map[string]string{
				"name": args[0],
				"kind": kind,
			}
			var result PurchaseResult

			if err := client.Post("/api/v1/shop/purchase", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Item kind: clothing or furniture (required)")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}
