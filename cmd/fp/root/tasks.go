package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"frostpaw/internal/ui"
)

func newTasksCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks still available today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.AvailableTasks(ctx)
			if all {
				tasks, err = svc.TaskRepo().ListAll(ctx)
			}
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("All done for today."))
				return nil
			}
			for _, t := range tasks {
				icon := "  "
				if t.IsRecurring {
					icon = ui.IconLoop
				}
				extra := ""
				if t.DailyStreak > 1 {
					extra = " " + ui.Warn.Render(fmt.Sprintf("%s%d", ui.IconStreak, t.DailyStreak))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s%s\n",
					icon, t.ID, t.Title,
					ui.Muted.Render(fmt.Sprintf("(%s, +%dxp)", t.Category, t.Reward)), extra)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include tasks already completed today")
	return cmd
}
