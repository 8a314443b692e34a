package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/engine"
	"taskquest/internal/ui"
)

func newEditCmd() *cobra.Command {
	var title string
	var diff string
	var category string
	var desc string
	var photo string
	var audio string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a quest (the XP reward stays as created)",
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
			task, _ := svc.State().FindTask(id)
			in := engine.InputFromTask(task)

			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("desc") {
				in.Description = desc
			}
			if flags.Changed("diff") {
				if in.Difficulty, err = engine.ParseDifficulty(diff); err != nil {
					return err
				}
			}
			if flags.Changed("category") {
				if in.Category, err = engine.ParseCategory(category); err != nil {
					return err
				}
			}
			if flags.Changed("photo") {
				in.Photo = photo
			}
			if flags.Changed("audio") {
				in.Audio = audio
			}

			res, err := svc.UpdateTask(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconPencil+" Updated"),
				ui.Muted.Render(ui.ShortID(res.Task.ID)),
				res.Task.Title,
			)
			printEvents(cmd.OutOrStdout(), res.Events)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&diff, "diff", "d", "", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (work|personal|health|learning)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&photo, "photo", "", "Photo reference (empty to clear)")
	cmd.Flags().StringVar(&audio, "audio", "", "Audio reference (empty to clear)")

	return cmd
}
