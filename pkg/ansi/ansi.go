// Package ansi provides ANSI escape code constants and helpers for terminal
// cursor control, plus stripping of styling sequences from rendered text.
// All cursor manipulation in this module goes through these helpers to avoid
// duplicating raw escape strings.
package ansi

import (
	"fmt"
	"regexp"
)

// ANSI cursor and line control codes.
const (
	// ClearLine clears the entire current line.
	ClearLine = "\033[2K"

	// CursorUpFmt is a format string for moving the cursor up N lines.
	// Use with fmt.Sprintf or the CursorUp helper.
	CursorUpFmt = "\033[%dA"
)

// CursorUp returns an ANSI escape sequence to move the cursor up n lines.
func CursorUp(n int) string {
	return fmt.Sprintf(CursorUpFmt, n)
}

// sgr matches ESC followed by any run of characters up to and including the
// next 'm'. This covers the SGR color/style sequences produced by lipgloss
// styles; cursor movement sequences never travel through the stripping path.
var sgr = regexp.MustCompile("\x1b[^m]*m")

// Strip removes SGR styling sequences from s, leaving the plain text.
// For any style st, Strip(st.Render(text)) == text.
func Strip(s string) string {
	return sgr.ReplaceAllString(s, "")
}
