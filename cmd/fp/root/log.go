package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"frostpaw/internal/engine"
	"frostpaw/internal/ui"
)

func newLogCmd() *cobra.Command {
	var value float64

	cmd := &cobra.Command{
		Use:   "log <meal|activity|journal|weight|goal> [note]",
		Short: "Log an activity (feeds quest progress)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("activity kind is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			kind, err := engine.ParseActivityKind(args[0])
			if err != nil {
				return err
			}
			note := strings.Join(args[1:], " ")

			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var valPtr *float64
			if cmd.Flags().Changed("value") {
				valPtr = &value
			}
			res, err := svc.LogActivity(ctx, kind, note, valPtr)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s logged\n", ui.Good.Render(ui.IconDone), kind)
			if r := res.Refresh; len(r.CompletedQuestIDs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s +%d pts, +%d xp\n",
					ui.Gold.Render(ui.IconTrophy+" Quest complete!"), r.PointsAwarded, r.XPAwarded)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "Numeric value for the entry (e.g. weight in lbs)")
	return cmd
}
