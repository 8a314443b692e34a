package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all quests, progress and achievements",
		Long:  "Reset all quests, progress and achievements. This cannot be undone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Are you sure you want to reset all your progress? This action cannot be undone.")+" Type 'yes' to confirm: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("reset aborted")
				}
				if strings.TrimSpace(strings.ToLower(line)) != "yes" {
					return errors.New("reset aborted")
				}
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Reset(ctx)
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), res.Events)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
