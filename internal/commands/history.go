package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/importlog"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List previously imported files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoDir(cmd)
			if err != nil {
				return err
			}
			entries, err := importlog.Read(root)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(w, "No imports recorded.")
				return nil
			}
			currency := configFrom(cmd.Context()).Report.Currency
			for _, e := range entries {
				fmt.Fprintf(w, "%s  %-32s %-5s %4d  %s%d\n",
					e.Timestamp.Local().Format(time.DateTime), e.File, e.Format, e.Transactions, currency, e.Total)
			}
			n, total := importlog.Totals(entries)
			fmt.Fprintf(w, "%d imports, %d transactions, %s%d\n", len(entries), n, currency, total)
			return nil
		},
	}
}
