package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// FileName is the project ledger, relative to the project root.
const FileName = "ledger.csv"

// Load returns every transaction in <repoRoot>/ledger.csv, or nil if it does not exist.
func Load(repoRoot string) ([]model.Transaction, error) {
	f, err := os.Open(filepath.Join(repoRoot, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	return ReadTransactions(f)
}

// Append adds txns to <repoRoot>/ledger.csv, writing the header when the file is new.
func Append(repoRoot string, txns []model.Transaction) error {
	path := filepath.Join(repoRoot, FileName)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing transaction %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
