package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"taskquest/internal/storage"
)

func newJournalCmd() *cobra.Command {
	var limit int
	var raw bool

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent completions as a quest journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.Journal(ctx, limit)
			if err != nil {
				return err
			}
			md := journalMarkdown(entries)
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			rendered, err := glamour.Render(md, "auto")
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries (0 for all)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")

	return cmd
}

func journalMarkdown(entries []storage.CompletionEntry) string {
	var b strings.Builder
	b.WriteString("# Quest Journal\n\n")
	if len(entries) == 0 {
		b.WriteString("_No quests completed yet._\n")
		return b.String()
	}
	b.WriteString("| When | Quest | XP | Level |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, e := range entries {
		xp := fmt.Sprintf("+%d", e.XPDelta)
		if e.XPDelta < 0 {
			xp = fmt.Sprintf("%d (reopened)", e.XPDelta)
		}
		title := strings.ReplaceAll(e.Title, "|", `\|`)
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", e.OccurredAt.Local().Format("2006-01-02 15:04"), title, xp, e.LevelAfter)
	}
	return b.String()
}
