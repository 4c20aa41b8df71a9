package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"frostpaw/internal/engine"
	"frostpaw/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	var showCompleted bool

	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Show the quest board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			refresh, err := svc.RefreshQuestProgress(ctx)
			if err != nil {
				return err
			}
			now := time.Now()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconQuest, "Quest Board"))
			for _, q := range engine.ActiveQuests(refresh.Quests, now) {
				left := time.Until(q.ExpiresAt).Round(time.Hour)
				fmt.Fprintf(cmd.OutOrStdout(), "- [%s] %s %s %s\n",
					ui.H2.Render(q.Type), q.Title,
					ui.Muted.Render(fmt.Sprintf("%d/%d", q.CurrentProgress, q.TargetCount)),
					ui.Muted.Render(fmt.Sprintf("(+%dpts +%dxp, %s left)", q.RewardPoints, q.RewardXP, left)))
			}

			if showCompleted {
				fmt.Fprintln(cmd.OutOrStdout(), "")
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTrophy+" Completed"))
				for _, q := range refresh.Quests {
					if !q.Completed {
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", q.Title, ui.Muted.Render(q.CompletedDate.Format("Jan 2")))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCompleted, "completed", false, "Also show completed quests")
	return cmd
}
