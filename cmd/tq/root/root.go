package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

const Version = "0.2.0"

var (
	flagDB       string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "tq",
	Short:         "TaskQuest: level up your productivity with gamified tasks",
	Long:          "TaskQuest is a local-first task tracker: complete quests, earn XP, level up and unlock achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default $TASKQUEST_DB or ~/.taskquest.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newDoCmd(),
		newUndoCmd(),
		newListCmd(),
		newStatusCmd(),
		newAchievementsCmd(),
		newJournalCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
