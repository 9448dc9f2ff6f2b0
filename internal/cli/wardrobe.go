package cli

import (
	"github.com/spf13/cobra"
)

func newWardrobeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Outfit fitting commands",
	}

	cmd.AddCommand(newWardrobeShowCmd())
	cmd.AddCommand(newWardrobeWearCmd())
	cmd.AddCommand(newWardrobeUnwearCmd())
	cmd.AddCommand(newWardrobeCheckoutCmd())

	return cmd
}

func newWardrobeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show inventory and current outfit",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Wardrobe

			if err := client.Get("/api/v1/wardrobe", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newWardrobeWearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wear <name>",
		Short: "Try on an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result Wardrobe

			if err := client.Post("/api/v1/wardrobe/wear", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newWardrobeUnwearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unwear <name>",
		Short: "Take off an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result Wardrobe

			if err := client.Post("/api/v1/wardrobe/unwear", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newWardrobeCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Commit the outfit and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Wardrobe

			if err := client.Post("/api/v1/wardrobe/checkout", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
