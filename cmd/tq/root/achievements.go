package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "Show achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, a := range svc.State().Achievements {
				if a.Unlocked {
					fmt.Fprintf(out, "%s %s %s %s\n", a.Icon, ui.Gold.Render(a.Title), a.Description, unlockedOn(a))
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.IconLock, ui.Muted.Render(a.Title), ui.Muted.Render(a.Description))
			}
			return nil
		},
	}

	return cmd
}

func unlockedOn(a storage.Achievement) string {
	if a.UnlockedAt == nil {
		return ""
	}
	return ui.Muted.Render("(" + a.UnlockedAt.Local().Format("2006-01-02") + ")")
}
