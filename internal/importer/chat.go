package importer

import (
	"fmt"
	"io"

	"github.com/cleared-dev/tally/internal/extract"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// ChatParser parses exported chat logs of expense notes.
type ChatParser struct {
	Options extract.Options
}

// Format returns the parser name.
func (p *ChatParser) Format() string { return "chat" }

// Parse reads the whole chat log and extracts its transactions. Lines that
// are not expense notes are skipped, so only read failures are errors.
func (p *ChatParser) Parse(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading chat log: %w", err)
	}
	return extract.Extract(string(data), p.Options), nil
}

// LedgerParser parses CSV files previously written by `tally parse`.
type LedgerParser struct{}

// Format returns the parser name.
func (p *LedgerParser) Format() string { return "csv" }

// Parse reads a ledger CSV.
func (p *LedgerParser) Parse(r io.Reader) ([]model.Transaction, error) {
	return ledger.ReadTransactions(r)
}
