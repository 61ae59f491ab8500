package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/billable/internal/billing"
)

// Styles colours the provenance of billable records. Colour is only emitted
// when the output is a terminal.
type Styles struct {
	Rounded  lipgloss.Style
	Overtime lipgloss.Style
	Padding  lipgloss.Style
	Muted    lipgloss.Style
	Heading  lipgloss.Style
	Warning  lipgloss.Style
}

// NewStyles returns styles rendered for w
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)

	return Styles{
		Rounded: r.NewStyle().
			Foreground(lipgloss.Color("82")), // Green
		Overtime: r.NewStyle().
			Foreground(lipgloss.Color("214")). // Orange
			Bold(true),
		Padding: r.NewStyle().
			Foreground(lipgloss.Color("39")), // Cyan
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("240")),
		Heading: r.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("214")),
	}
}

// Source renders a provenance label padded to a common width
func (s Styles) Source(src billing.Source) string {
	label := SourceLabel(src)
	switch src {
	case billing.SourceRoundedOverlapping:
		return s.Overtime.Render(label)
	case billing.SourceMinimumBillableTime:
		return s.Padding.Render(label)
	default:
		return s.Rounded.Render(label)
	}
}

// SourceLabel returns the short fixed-width label of a provenance
func SourceLabel(src billing.Source) string {
	switch src {
	case billing.SourceRoundedOverlapping:
		return "overtime"
	case billing.SourceMinimumBillableTime:
		return "minimum "
	default:
		return "rounded "
	}
}
