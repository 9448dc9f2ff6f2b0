package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Furniture placement commands",
	}

	cmd.AddCommand(newRoomShowCmd())
	cmd.AddCommand(newRoomPlaceCmd())
	cmd.AddCommand(newRoomMoveCmd())
	cmd.AddCommand(newRoomRotateCmd())
	cmd.AddCommand(newRoomFrontCmd())
	cmd.AddCommand(newRoomDeleteCmd())
	cmd.AddCommand(newRoomSaveCmd())

	return cmd
}

func newRoomShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the room contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Get("/api/v1/room", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <name>",
		Short: "Place an owned piece in the room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result PlacedInstance

			if err := client.Post("/api/v1/room/place", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomMoveCmd() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a placed piece",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]float64{"x": x, "y": y}
			var result PlacedInstance

			path := fmt.Sprintf("/api/v1/room/instances/%s/move", args[0])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Target x position")
	cmd.Flags().Float64Var(&y, "y", 0, "Target y position")

	return cmd
}

func newRoomRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate <id>",
		Short: "Rotate a placed piece to its next orientation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlacedInstance

			path := fmt.Sprintf("/api/v1/room/instances/%s/rotate", args[0])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomFrontCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "front <id>",
		Short: "Bring a placed piece to the front",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlacedInstance

			path := fmt.Sprintf("/api/v1/room/instances/%s/front", args[0])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a placed piece (it stays in your inventory)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/room/instances/%s", args[0])
			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Removed")
			return nil
		},
	}
}

func newRoomSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Persist the room layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/room/save", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Saved")
			return nil
		},
	}
}
