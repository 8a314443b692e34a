package root

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"

	"taskquest/internal/engine"
	"taskquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.State()
			p := st.Progress
			out := cmd.OutOrStdout()

			bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
			ratio := float64(p.CurrentXP) / float64(engine.XPPerLevel)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Stats"))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintf(out, "%s %s\n", bar.ViewAs(ratio), ui.Muted.Render(fmt.Sprintf("%d/%d XP (%d to next level)", p.CurrentXP, engine.XPPerLevel, engine.XPToNextLevel(p.TotalXP))))
			fmt.Fprintln(out, ui.LabelValue("Total XP", p.TotalXP))
			fmt.Fprintln(out, ui.LabelValue("Quests completed", p.TasksCompleted))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d days (best %d)", p.CurrentStreak, p.LongestStreak)))

			week, err := svc.CompletedSince(ctx, time.Now().Add(-7*24*time.Hour))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Completed this week", week))
			fmt.Fprintln(out, ui.LabelValue("Active quests", len(st.Pending())))
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", engine.CountUnlocked(st.Achievements), len(st.Achievements))))
			return nil
		},
	}

	return cmd
}
