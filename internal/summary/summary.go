// Package summary folds extracted transactions into the totals a dashboard shows.
// Every function here is pure and accepts an empty input.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
)

// Resolver maps a category code to a display name.
type Resolver interface {
	Resolve(code string) string
}

// Identity resolves every code to itself.
type Identity struct{}

// Resolve returns code unchanged.
func (Identity) Resolve(code string) string { return code }

// CategoryTotal is the sum of all amounts under one display name.
type CategoryTotal struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// MonthTotal is the sum of all amounts in one calendar month.
type MonthTotal struct {
	Key   string `json:"month"` // "MM/YYYY"
	Year  int    `json:"-"`
	Month int    `json:"-"`
	Total int64  `json:"total"`
}

// ByCategory sums amounts per resolved name, largest first. Names with equal
// totals keep the order they were first seen in.
func ByCategory(txns []model.Transaction, names Resolver) []CategoryTotal {
	if names == nil {
		names = Identity{}
	}

	index := make(map[string]int)
	var totals []CategoryTotal
	for _, txn := range txns {
		name := names.Resolve(txn.Category)
		i, ok := index[name]
		if !ok {
			i = len(totals)
			index[name] = i
			totals = append(totals, CategoryTotal{Name: name})
		}
		totals[i].Total += txn.Amount
	}

	sort.SliceStable(totals, func(a, b int) bool {
		return totals[a].Total > totals[b].Total
	})
	return totals
}

// ByMonth sums amounts per "MM/YYYY", oldest month first.
func ByMonth(txns []model.Transaction) []MonthTotal {
	index := make(map[string]int)
	var totals []MonthTotal
	for _, txn := range txns {
		key := txn.Date.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, MonthTotal{Key: key, Year: txn.Date.Year, Month: txn.Date.Month})
		}
		totals[i].Total += txn.Amount
	}

	sort.SliceStable(totals, func(a, b int) bool {
		return period.Less(totals[a].Year, totals[a].Month, totals[b].Year, totals[b].Month)
	})
	return totals
}

// Stats holds the scalar aggregates.
type Stats struct {
	Total int64 `json:"total"`
	Count int   `json:"count"`
}

// Compute returns the total and count of txns.
func Compute(txns []model.Transaction) Stats {
	var s Stats
	for _, txn := range txns {
		s.Total += txn.Amount
	}
	s.Count = len(txns)
	return s
}

// Mean returns the average amount per transaction rounded to two places.
// ok is false when there are no transactions.
func (s Stats) Mean() (mean decimal.Decimal, ok bool) {
	if s.Count == 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(s.Total).Div(decimal.NewFromInt(int64(s.Count))).Round(2), true
}

// Share returns part as a percentage of total, rounded to whole percent.
// A zero total yields zero.
func Share(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(total)).Round(0)
}
