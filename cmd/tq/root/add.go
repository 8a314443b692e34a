package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskquest/internal/engine"
	"taskquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var diff string
	var category string
	var desc string
	var photo string
	var audio string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := engine.ParseDifficulty(diff)
			if err != nil {
				return err
			}
			c, err := engine.ParseCategory(category)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AddTask(ctx, engine.TaskInput{
				Title:       strings.Join(args, " "),
				Description: desc,
				Difficulty:  d,
				Category:    c,
				Photo:       photo,
				Audio:       audio,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.Muted.Render(ui.ShortID(res.Task.ID)),
				res.Task.Title,
			)
			printEvents(cmd.OutOrStdout(), res.Events)
			return nil
		},
	}

	cmd.Flags().StringVarP(&diff, "diff", "d", "easy", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVarP(&category, "category", "c", "personal", "Category (work|personal|health|learning)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&photo, "photo", "", "Photo reference (path or URL)")
	cmd.Flags().StringVar(&audio, "audio", "", "Audio reference (path or URL)")

	return cmd
}
