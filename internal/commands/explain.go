package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/extract"
)

func newExplainCommand() *cobra.Command {
	var skippedOnly bool

	cmd := &cobra.Command{
		Use:   "explain <file|->",
		Short: "Show why each chat line was kept or skipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return writeExplain(cmd.OutOrStdout(), string(in.Data), skippedOnly)
		},
	}

	cmd.Flags().BoolVar(&skippedOnly, "skipped", false, "only show lines that were not matched")

	return cmd
}

func writeExplain(w io.Writer, text string, skippedOnly bool) error {
	var matched, skipped int
	for i, line := range extract.Lines(text) {
		if line == "" {
			continue
		}
		res := extract.Explain(line)
		if res.Reason == extract.ReasonMatched {
			matched++
			if skippedOnly {
				continue
			}
		} else {
			skipped++
		}

		detail := ""
		if res.Reason == extract.ReasonMatched {
			detail = fmt.Sprintf("%02d/%02d %s %d", res.Date.Day, res.Date.Month, res.Content.Category, res.Content.Amount)
		}
		if _, err := fmt.Fprintf(w, "%4d  %-18s %-28s %s\n", i+1, res.Reason, detail, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d matched, %d skipped\n", matched, skipped)
	return err
}
