package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Reopen a completed quest (undo completion)",
		Long: `Reopen a completed quest.

This will:
- Deduct the XP that was awarded (never below zero)
- Decrease the completed quest count
- Clear the completion time

Unlocked achievements are kept.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveID(args[0])
			if err != nil {
				return err
			}
			before, _ := svc.State().FindTask(id)
			if !before.Completed {
				return fmt.Errorf("quest %s is not completed", ui.ShortID(id))
			}

			res, err := svc.ToggleComplete(ctx, id)
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), res.Events)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			if res.LevelAfter < res.LevelBefore {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Level decreased"))
			}
			return nil
		},
	}

	return cmd
}
