package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func newListCmd() *cobra.Command {
	var showAll bool
	var showDone bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.State()
			out := cmd.OutOrStdout()
			if !showDone {
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("🎯 Active Quests (%d)", len(st.Pending()))))
				printTasks(out, st.Pending())
			}
			if showAll || showDone {
				if !showDone {
					fmt.Fprintln(out, "")
				}
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Completed (%d)", ui.IconDone, len(st.Completed()))))
				printTasks(out, st.Completed())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include completed quests")
	cmd.Flags().BoolVar(&showDone, "done", false, "Show only completed quests")

	return cmd
}

func printTasks(w io.Writer, tasks []storage.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("  (none)"))
		return
	}
	for _, t := range tasks {
		title := t.Title
		if t.Completed {
			title = ui.Strike.Render(title)
		}
		fmt.Fprintf(w, "  %s %s %s %s %s\n",
			ui.Muted.Render(ui.ShortID(t.ID)),
			ui.CategoryIcon(t.Category),
			title,
			ui.DifficultyText(t.Difficulty),
			ui.Gold.Render(fmt.Sprintf("+%d XP", t.XPReward)),
		)
		if t.Description != "" {
			fmt.Fprintf(w, "      %s\n", ui.Muted.Render(t.Description))
		}
	}
}
