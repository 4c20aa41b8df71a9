package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"frostpaw/internal/ui"
)

func newAdoptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adopt [name]",
		Short: "Adopt your companion (one per den)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			c, err := svc.InitCompanion(ctx, name)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBear, c.Name+" has joined your den!"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Stage", ui.StageText(c.Stage)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Log meals, activity and journal entries to raise them. Try `fp status`."))
			return nil
		},
	}

	return cmd
}
