package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"frostpaw/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "fp",
	Short:         "Frostpaw, a habit tracker with a polar bear companion",
	Long:          "Frostpaw is a local-first habit/fitness tracker where logging meals, activity and journal entries raises a polar bear companion through quests and growth stages.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAdoptCmd(),
		newStatusCmd(),
		newFeedCmd(),
		newPlayCmd(),
		newRestCmd(),
		newCheckinCmd(),
		newLogCmd(),
		newAddCmd(),
		newTasksCmd(),
		newDoCmd(),
		newQuestsCmd(),
		newDenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
