// Package theme defines the styles used for all terminal output. Think CSS.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds one lipgloss style per kind of output the writer produces.
// Styles are pure: rendering wraps text in SGR escape sequences that strip
// back to the original text.
type Theme struct {
	// Box styles the borders of banner boxes.
	Box lipgloss.Style
	// TimestampBracket styles the brackets around message timestamps.
	TimestampBracket lipgloss.Style
	// Timestamp styles the timestamp itself.
	Timestamp lipgloss.Style
	// Substeps styles the "(1/3) " step counter prefix.
	Substeps lipgloss.Style
	// SpinnerDot styles the animated progress dot.
	SpinnerDot lipgloss.Style
	// Eta styles the live "(ETA: ...)" and "(Finished in ...)" suffixes.
	Eta lipgloss.Style

	// TimestampFormat is the time layout for message timestamps.
	TimestampFormat string
}

// Default returns the standard palette: magenta boxes, white timestamp
// brackets, and everything that should stay out of the way in bright black.
func Default() Theme {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return Theme{
		Box:              lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		TimestampBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Timestamp:        dim,
		Substeps:         dim,
		SpinnerDot:       dim,
		Eta:              dim,

		TimestampFormat: "15:04:05",
	}
}
