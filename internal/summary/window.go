package summary

import (
	"fmt"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
)

// Window narrows transactions to one month, a start date, or both.
// The zero Window keeps everything.
type Window struct {
	Year, Month int
	Since       model.Date
}

// ParseWindow builds a Window from an "MM/YYYY" month and a "DD/MM/YYYY"
// start date. Empty strings leave that bound open.
func ParseWindow(month, since string) (Window, error) {
	var w Window
	if month != "" {
		year, m, err := period.ParseMonthKey(month)
		if err != nil {
			return Window{}, fmt.Errorf("parsing month: %w", err)
		}
		w.Year, w.Month = year, m
	}
	if since != "" {
		d, err := model.ParseDate(since)
		if err != nil {
			return Window{}, fmt.Errorf("parsing since: %w", err)
		}
		w.Since = d
	}
	return w, nil
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d model.Date) bool {
	if w.Month != 0 && (d.Year != w.Year || d.Month != w.Month) {
		return false
	}
	if w.Since != (model.Date{}) && d.Before(w.Since) {
		return false
	}
	return true
}

// Filter returns the transactions inside w, in source order.
func (w Window) Filter(txns []model.Transaction) []model.Transaction {
	if w == (Window{}) {
		return txns
	}
	kept := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if w.Contains(txn.Date) {
			kept = append(kept, txn)
		}
	}
	return kept
}
