package root

import (
	"context"

	"github.com/spf13/cobra"

	"frostpaw/internal/tui"
)

func newDenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "den",
		Short: "Open the den (TUI dashboard with live decay)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunDen(ctx, svc, cfg.DecayInterval, cmd.OutOrStdout())
		},
	}

	return cmd
}
