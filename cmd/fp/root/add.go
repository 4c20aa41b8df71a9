package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"frostpaw/internal/engine"
	"frostpaw/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var recurring bool
	var reward int
	var reps int
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			t, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				Title:            args[0],
				Description:      description,
				Category:         engine.ParseTaskCategory(category),
				IsRecurring:      recurring,
				Reward:           reward,
				ProgressionValue: reps,
			})
			if err != nil {
				return err
			}

			icon := ""
			if t.IsRecurring {
				icon = ui.IconLoop + " "
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s%s %s\n",
				ui.Good.Render("Added"), t.ID, icon, t.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, +%dxp)", t.Category, t.Reward)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "anytime", "Category (morning|anytime|special)")
	cmd.Flags().BoolVarP(&recurring, "recurring", "r", false, "Resets daily")
	cmd.Flags().IntVar(&reward, "reward", 10, "XP granted on completion")
	cmd.Flags().IntVar(&reps, "reps", 0, "Starting rep count for a progression chain (doubles on completion)")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")

	return cmd
}
