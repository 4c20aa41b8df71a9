package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"frostpaw/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := svc.CompleteTask(ctx, id)
			if err != nil {
				return err
			}
			if res.AlreadyDone {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already completed today."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconDone+" Done"), res.Task.ID, res.Task.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d XP)", res.XPAwarded)))
			if res.Task.IsRecurring && res.Task.DailyStreak > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d days in a row\n", ui.Warn.Render(ui.IconStreak), res.Task.DailyStreak)
			}
			if res.SpawnedTask != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
					ui.H2.Render(ui.IconBolt+" Next up"), res.SpawnedTask.ID, res.SpawnedTask.Title,
					ui.Muted.Render(fmt.Sprintf("(+%dxp)", res.SpawnedTask.Reward)))
			}
			if len(res.CompletedQuestIDs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s +%d pts, +%d xp\n",
					ui.Gold.Render(ui.IconTrophy+" Quest complete!"), res.QuestPoints, res.QuestXP)
			}
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s level %d → %d\n", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			if res.Evolved {
				fmt.Fprintln(cmd.OutOrStdout(), ui.BadgeEvolved)
			}
			return nil
		},
	}

	return cmd
}
