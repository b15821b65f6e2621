package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette cycles across categories in breakdown order.
var Palette = []lipgloss.Color{
	"#0088FE", "#00C49F", "#FFBB28", "#FF8042",
	"#8884D8", "#82CA9D", "#FFC658", "#FF6B9D",
}

const cardPadding = 2

var (
	accentColor = lipgloss.Color("#4F46E5") // indigo
	subtleColor = lipgloss.Color("#6B7280")
	borderColor = lipgloss.Color("#D1D5DB")
)

// styles are bound to the writer's renderer so output to a pipe or buffer
// carries no escape codes.
type styles struct {
	r        *lipgloss.Renderer
	title    lipgloss.Style
	subtitle lipgloss.Style
	heading  lipgloss.Style
	card     lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	subtle   lipgloss.Style
	cell     lipgloss.Style
	number   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		r:        r,
		title:    r.NewStyle().Bold(true).Foreground(accentColor),
		subtitle: r.NewStyle().Foreground(subtleColor).MarginBottom(1),
		heading:  r.NewStyle().Bold(true).MarginTop(1),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, cardPadding).
			MarginRight(1),
		label:  r.NewStyle().Foreground(subtleColor),
		value:  r.NewStyle().Bold(true).Foreground(accentColor),
		subtle: r.NewStyle().Foreground(subtleColor),
		cell:   r.NewStyle().PaddingRight(2),
		number: r.NewStyle().Align(lipgloss.Right),
	}
}

func (s styles) swatch(i int) lipgloss.Style {
	return s.r.NewStyle().Foreground(Palette[i%len(Palette)])
}
