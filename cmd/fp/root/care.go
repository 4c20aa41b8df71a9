package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"frostpaw/internal/storage"
	"frostpaw/internal/ui"
)

func newFeedCmd() *cobra.Command {
	return careCmd("feed", "Feed your companion", ui.IconFood+" Fed", func(ctx context.Context) (*storage.Companion, error) {
		svc, _, cleanup, err := openService(ctx)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		return svc.Feed(ctx)
	})
}

func newPlayCmd() *cobra.Command {
	return careCmd("play", "Play with your companion", ui.IconSparkle+" Played", func(ctx context.Context) (*storage.Companion, error) {
		svc, _, cleanup, err := openService(ctx)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		return svc.Play(ctx)
	})
}

func newRestCmd() *cobra.Command {
	return careCmd("rest", "Let your companion nap", ui.IconSleep+" Rested", func(ctx context.Context) (*storage.Companion, error) {
		svc, _, cleanup, err := openService(ctx)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		return svc.Rest(ctx)
	})
}

func careCmd(use, short, doneLabel string, run func(ctx context.Context) (*storage.Companion, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: happiness %s, hunger %s, energy %s\n",
				ui.Good.Render(doneLabel), c.Name,
				ui.VitalText(c.Happiness, false), ui.VitalText(c.Hunger, true), ui.VitalText(c.Energy, false))
			return nil
		},
	}
}

func newCheckinCmd() *cobra.Command {
	var bond int

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Daily check-in (extends your streak)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CheckIn(ctx, bond)
			if err != nil {
				return err
			}
			if res.AlreadyToday {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already checked in today."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s streak %s %d days (+%d XP)\n",
				ui.Good.Render(ui.IconDone+" Checked in!"), ui.IconStreak, res.Companion.StreakDays, res.XPAwarded)
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s reached level %d\n", ui.BadgeLevelUp, res.Companion.Name, res.Companion.Level)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&bond, "bond", 10, "Bond points earned from the check-in")
	return cmd
}
