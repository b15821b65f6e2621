package summary

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Row is one transaction with its category resolved for display.
type Row struct {
	Date     string `json:"date"`
	Code     string `json:"code"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// Dashboard is everything a presentation layer needs from one parse.
type Dashboard struct {
	Stats        Stats            `json:"stats"`
	Mean         *decimal.Decimal `json:"mean"` // nil when there is no data
	Categories   []CategoryTotal  `json:"categories"`
	Months       []MonthTotal     `json:"months"`
	Transactions []Row            `json:"transactions"`
}

// Build computes every aggregate over txns.
func Build(txns []model.Transaction, names Resolver) Dashboard {
	if names == nil {
		names = Identity{}
	}

	d := Dashboard{
		Stats:        Compute(txns),
		Categories:   ByCategory(txns, names),
		Months:       ByMonth(txns),
		Transactions: make([]Row, 0, len(txns)),
	}
	if mean, ok := d.Stats.Mean(); ok {
		d.Mean = &mean
	}
	for _, txn := range txns {
		d.Transactions = append(d.Transactions, Row{
			Date:     txn.Date.String(),
			Code:     txn.Category,
			Category: names.Resolve(txn.Category),
			Amount:   txn.Amount,
		})
	}
	return d
}

// Recent returns up to limit rows, newest (last in source) first.
// A limit of zero or less returns every row.
func (d Dashboard) Recent(limit int) []Row {
	n := len(d.Transactions)
	if limit > 0 && limit < n {
		n = limit
	}
	rows := make([]Row, 0, n)
	for i := len(d.Transactions) - 1; i >= 0 && len(rows) < n; i-- {
		rows = append(rows, d.Transactions[i])
	}
	return rows
}
