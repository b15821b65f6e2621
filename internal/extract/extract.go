// Package extract turns free-text chat logs of expense notes into transactions.
//
// A line yields a transaction only when both the date matcher and the content
// matcher succeed. Every other line is log noise and is dropped without error.
package extract

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// YearPolicy chooses the year for date tokens written without one.
type YearPolicy string

const (
	// YearPolicyFixed applies Options.FallbackYear.
	YearPolicyFixed YearPolicy = "fixed"
	// YearPolicyNextAfterLatest applies the year after the latest explicit
	// year in the text, or Options.FallbackYear when there is none.
	YearPolicyNextAfterLatest YearPolicy = "next-after-latest"
)

// DefaultFallbackYear follows the explicitly dated entries of the logs this
// tool was first written for (Oct–Dec 2025).
const DefaultFallbackYear = 2026

// ParseYearPolicy validates a policy name.
func ParseYearPolicy(s string) (YearPolicy, error) {
	switch p := YearPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case YearPolicyFixed, YearPolicyNextAfterLatest:
		return p, nil
	case "":
		return YearPolicyFixed, nil
	default:
		return "", fmt.Errorf("unknown year policy %q", s)
	}
}

// Options control year inference. The zero value means the fixed policy with
// DefaultFallbackYear.
type Options struct {
	Policy       YearPolicy
	FallbackYear int
}

// DefaultOptions returns the fixed policy with DefaultFallbackYear.
func DefaultOptions() Options {
	return Options{Policy: YearPolicyFixed, FallbackYear: DefaultFallbackYear}
}

func (o Options) fallbackYear() int {
	if o.FallbackYear > 0 {
		return o.FallbackYear
	}
	return DefaultFallbackYear
}

// Lines splits text into lines, tolerating CRLF endings.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

type match struct {
	date    DateToken
	content Content
}

// Extract returns the transactions in text, in the order they appear.
// It performs no I/O and returns nil when nothing matches.
func Extract(text string, opts Options) []model.Transaction {
	var matches []match
	latest := 0
	for _, line := range Lines(text) {
		res := Explain(line)
		if res.Reason != ReasonMatched {
			continue
		}
		if res.Date.HasYear && res.Date.Year > latest {
			latest = res.Date.Year
		}
		matches = append(matches, match{date: res.Date, content: res.Content})
	}

	if len(matches) == 0 {
		return nil
	}

	inferred := inferYear(opts, latest)
	txns := make([]model.Transaction, 0, len(matches))
	for _, m := range matches {
		year := m.date.Year
		if !m.date.HasYear {
			year = inferred
		}
		txns = append(txns, model.Transaction{
			Date:     model.Date{Day: m.date.Day, Month: m.date.Month, Year: year},
			Category: m.content.Category,
			Amount:   m.content.Amount,
		})
	}
	return txns
}

// inferYear picks the single year used for every year-less token in a run.
func inferYear(opts Options, latestExplicit int) int {
	if opts.Policy == YearPolicyNextAfterLatest && latestExplicit > 0 {
		return latestExplicit + 1
	}
	return opts.fallbackYear()
}
