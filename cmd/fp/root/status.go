package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"frostpaw/internal/engine"
	"frostpaw/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show companion stats, quests and streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := svc.Companion(ctx)
			if errors.Is(err, engine.ErrNoCompanion) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No companion yet. Adopt one with `fp adopt <name>`."))
				return nil
			}
			if err != nil {
				return err
			}

			toNext := engine.XPToNextLevel(c.Level) - c.Experience
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBear, c.Name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", fmt.Sprintf("%d (%s)", c.Level, ui.StageText(c.Stage))))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP", fmt.Sprintf("%d / %d (%d to go)", c.Experience, engine.XPToNextLevel(c.Level), toNext)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Points", c.TotalPoints))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconStreak, c.StreakDays)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("Vitals"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s Happiness: %s\n", ui.IconHeart, ui.VitalText(c.Happiness, false))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s Hunger: %s\n", ui.IconFood, ui.VitalText(c.Hunger, true))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s Energy: %s\n", ui.IconBolt, ui.VitalText(c.Energy, false))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s Health: %s\n", ui.IconSparkle, ui.VitalText(c.Health, false))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			refresh, err := svc.RefreshQuestProgress(ctx)
			if err != nil {
				return err
			}
			now := time.Now()
			active := engine.ActiveQuests(refresh.Quests, now)
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconQuest+" Active quests"))
			if len(active) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
			}
			for _, q := range active {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n",
					q.Title,
					ui.Muted.Render(fmt.Sprintf("[%d/%d]", q.CurrentProgress, q.TargetCount)),
					ui.Muted.Render(fmt.Sprintf("(+%dpts, +%dxp)", q.RewardPoints, q.RewardXP)))
			}
			if len(refresh.CompletedQuestIDs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s quest reward: +%d pts, +%d xp\n",
					ui.Gold.Render(ui.IconTrophy+" Completed!"), refresh.PointsAwarded, refresh.XPAwarded)
			}
			return nil
		},
	}

	return cmd
}
