package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Toggle a quest between complete and incomplete",
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
			res, err := svc.ToggleComplete(ctx, id)
			if err != nil {
				return err
			}

			printEvents(cmd.OutOrStdout(), res.Events)
			p := res.State.Progress
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Level %d · %d/100 XP · %d total", p.Level, p.CurrentXP, p.TotalXP)))
			return nil
		},
	}

	return cmd
}
