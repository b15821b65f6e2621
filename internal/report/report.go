// Package report renders a summary.Dashboard for a terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleared-dev/tally/internal/summary"
)

// NoData is shown instead of an average when there are no transactions.
const NoData = "no data"

const (
	maxBarWidth  = 30
	minNameWidth = 16
	amountWidth  = 10
)

// Options control presentation only; they never change the numbers.
type Options struct {
	Title    string
	Subtitle string
	Currency string
	Limit    int // recent transactions shown; 0 means all
}

// Render writes the text dashboard to w.
func Render(w io.Writer, d summary.Dashboard, opts Options) error {
	s := newStyles(w)
	var b strings.Builder

	title := opts.Title
	if title == "" {
		title = "Expense Tracker"
	}
	b.WriteString(s.title.Render(title))
	b.WriteString("\n")
	if opts.Subtitle != "" {
		b.WriteString(s.subtitle.Render(opts.Subtitle))
	}
	b.WriteString("\n")

	b.WriteString(renderCards(s, d, opts.Currency))
	b.WriteString("\n")

	if d.Stats.Count == 0 {
		b.WriteString(s.subtle.Render("No transactions found."))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	nameWidth := nameColumnWidth(d)

	b.WriteString(s.heading.Render("Category Breakdown"))
	b.WriteString("\n")
	for i, c := range d.Categories {
		share := summary.Share(c.Total, d.Stats.Total)
		fmt.Fprintf(&b, "%s %s%s %s\n",
			s.swatch(i).Render("■"),
			s.cell.Width(nameWidth).Render(c.Name),
			s.number.Width(amountWidth).Render(money(opts.Currency, c.Total)),
			s.subtle.Render(share.String()+"%"),
		)
	}

	b.WriteString(s.heading.Render("Monthly Expenses"))
	b.WriteString("\n")
	var peak int64
	for _, m := range d.Months {
		if m.Total > peak {
			peak = m.Total
		}
	}
	for _, m := range d.Months {
		fmt.Fprintf(&b, "%s%s %s\n",
			s.cell.Render(m.Key),
			s.number.Width(amountWidth).Render(money(opts.Currency, m.Total)),
			s.swatch(0).Render(bar(m.Total, peak)),
		)
	}

	b.WriteString(s.heading.Render("Recent Transactions"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s%s\n",
		s.label.Width(12).Render("Date"),
		s.label.Width(nameWidth).Render("Category"),
		s.label.Width(amountWidth).Align(lipgloss.Right).Render("Amount"),
	)
	for _, row := range d.Recent(opts.Limit) {
		fmt.Fprintf(&b, "%s%s%s\n",
			s.cell.Width(12).Render(row.Date),
			s.cell.Width(nameWidth).Render(row.Category),
			s.number.Width(amountWidth).Render(money(opts.Currency, row.Amount)),
		)
	}
	if opts.Limit > 0 && len(d.Transactions) > opts.Limit {
		fmt.Fprintf(&b, "%s\n", s.subtle.Render(fmt.Sprintf("… %d more", len(d.Transactions)-opts.Limit)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderCards(s styles, d summary.Dashboard, currency string) string {
	mean := NoData
	if d.Mean != nil {
		mean = currency + d.Mean.StringFixed(2)
	}

	cards := [][2]string{
		{"Total Expenses", money(currency, d.Stats.Total)},
		{"Total Transactions", fmt.Sprintf("%d", d.Stats.Count)},
		{"Average per Transaction", mean},
	}

	// Every card shares the widest label or value so none of them wrap.
	inner := 0
	for _, c := range cards {
		inner = max(inner, lipgloss.Width(c[0]), lipgloss.Width(c[1]))
	}
	style := s.card.Width(inner + 2*cardPadding)

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, style.Render(s.label.Render(c[0])+"\n"+s.value.Render(c[1])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

// nameColumnWidth fits the longest category name shown in the breakdown or
// the recent rows, plus the cell's right padding.
func nameColumnWidth(d summary.Dashboard) int {
	w := minNameWidth
	for _, c := range d.Categories {
		w = max(w, lipgloss.Width(c.Name)+2)
	}
	for _, row := range d.Transactions {
		w = max(w, lipgloss.Width(row.Category)+2)
	}
	return w
}

func money(currency string, amount int64) string {
	return fmt.Sprintf("%s%d", currency, amount)
}

// bar scales total against peak to at most maxBarWidth cells. Non-zero totals
// always get at least one cell.
func bar(total, peak int64) string {
	if peak <= 0 || total <= 0 {
		return ""
	}
	n := int(total * maxBarWidth / peak)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// RenderJSON writes the dashboard as indented JSON.
func RenderJSON(w io.Writer, d summary.Dashboard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding dashboard: %w", err)
	}
	return nil
}
