package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/summary"
)

func newSummaryCommand() *cobra.Command {
	var format string
	var limit int
	var inputFormat string
	var month string
	var since string

	cmd := &cobra.Command{
		Use:   "summary [file|-]",
		Short: "Render the expense dashboard (default: the project ledger)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)

			window, err := summary.ParseWindow(month, since)
			if err != nil {
				return err
			}

			root, err := repoDir(cmd)
			if err != nil {
				return err
			}

			var txns []model.Transaction
			var source string
			if len(args) == 0 {
				txns, err = loadLedger(root)
				source = ledger.FileName
			} else {
				txns, source, err = loadInput(ctx, cmd, args[0], inputFormat)
			}
			if err != nil {
				return err
			}

			names, err := loadCategories(ctx, root)
			if err != nil {
				return err
			}
			d := summary.Build(window.Filter(txns), names)

			switch format {
			case "text":
				if !cmd.Flags().Changed("limit") {
					limit = cfg.Report.RecentLimit
				}
				return report.Render(cmd.OutOrStdout(), d, report.Options{
					Title:    title(cfg.Project.Name),
					Subtitle: subtitle(source, month, since),
					Currency: cfg.Report.Currency,
					Limit:    limit,
				})
			case "json":
				return report.RenderJSON(cmd.OutOrStdout(), d)
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")
	cmd.Flags().IntVar(&limit, "limit", 0, "recent transactions to show, 0 for all (default from tally.yaml)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format (chat, csv); detected from the file name by default")
	cmd.Flags().StringVar(&month, "month", "", "only include transactions in this month (MM/YYYY)")
	cmd.Flags().StringVar(&since, "since", "", "only include transactions on or after this date (DD/MM/YYYY)")

	return cmd
}

func loadInput(ctx context.Context, cmd *cobra.Command, arg, inputFormat string) ([]model.Transaction, string, error) {
	in, err := readInput(cmd, arg)
	if err != nil {
		return nil, "", err
	}
	txns, err := parseInput(ctx, in, in.format(inputFormat))
	if err != nil {
		return nil, "", err
	}
	return txns, in.Name, nil
}

// loadLedger reads the project ledger. Unlike ledger.Load, a missing file is an error.
func loadLedger(root string) ([]model.Transaction, error) {
	path := filepath.Join(root, ledger.FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found (pass a file or run tally import first)", path)
	}
	return ledger.Load(root)
}

func title(project string) string {
	if project == "" {
		return ""
	}
	return project + " · Expense Tracker"
}

func subtitle(source, month, since string) string {
	if month != "" {
		source += " · " + month
	}
	if since != "" {
		source += " · since " + since
	}
	return source
}
