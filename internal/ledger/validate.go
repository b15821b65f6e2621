package ledger

import (
	"fmt"

	"github.com/cleared-dev/tally/internal/model"
)

// Rule names an invariant every transaction must satisfy.
type Rule string

const (
	RuleCategory Rule = "category"
	RuleAmount   Rule = "amount"
	RuleDate     Rule = "date"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Index       int // position in the validated slice
	Rule        Rule
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [#%d]: %s", e.Rule, e.Index+1, e.Description)
}

// Validate checks that txns could have come out of the extractor: non-empty
// category, non-negative amount, and a real day and month with a positive year.
func Validate(txns []model.Transaction) []ValidationError {
	var errs []ValidationError

	for i, txn := range txns {
		if txn.Category == "" {
			errs = append(errs, ValidationError{
				Index:       i,
				Rule:        RuleCategory,
				Description: "category is empty",
			})
		}

		if txn.Amount < 0 {
			errs = append(errs, ValidationError{
				Index:       i,
				Rule:        RuleAmount,
				Description: fmt.Sprintf("amount %d is negative", txn.Amount),
			})
		}

		d := txn.Date
		if d.Day < 1 || d.Day > 31 || d.Month < 1 || d.Month > 12 || d.Year < 1 {
			errs = append(errs, ValidationError{
				Index:       i,
				Rule:        RuleDate,
				Description: fmt.Sprintf("date %s out of range", d),
			})
		}
	}

	return errs
}
