package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
)

func newParseCommand() *cobra.Command {
	var out string
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Extract transactions as ledger CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			txns, err := parseInput(cmd.Context(), in, in.format(inputFormat))
			if err != nil {
				return err
			}

			log := logger.FromContext(cmd.Context())
			for _, verr := range ledger.Validate(txns) {
				log.Warn().Str("input", in.Name).Msg(verr.Error())
			}

			if out == "" {
				if err := ledger.WriteTransactions(cmd.OutOrStdout(), txns); err != nil {
					return fmt.Errorf("writing ledger: %w", err)
				}
				return nil
			}
			if err := writeLedgerFile(out, txns); err != nil {
				return err
			}
			log.Info().Str("out", out).Int("transactions", len(txns)).Msg("ledger written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the ledger CSV to a file instead of stdout")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format (chat, csv); detected from the file name by default")

	return cmd
}

// writeLedgerFile writes txns to path as ledger CSV. A failed close is an error.
func writeLedgerFile(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := ledger.WriteTransactions(f, txns); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
