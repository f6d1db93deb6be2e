package terminal

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// substeps renders numbered prefixes for a bounded sequence of steps:
//
//	(1/2) First step
//	(2/2) Second step
type substeps struct {
	style   lipgloss.Style
	current int
	total   int
}

func newSubsteps(style lipgloss.Style) *substeps {
	return &substeps{style: style, current: 0, total: -1}
}

// start arms the counter for n upcoming steps.
func (s *substeps) start(n int) {
	s.current = 1
	s.total = n
}

// reset returns the counter to the inactive state, where render yields "".
func (s *substeps) reset() {
	s.current = 0
	s.total = -1
}

// render returns the styled "(current/total) " label and advances the
// counter. Each call is a side-effecting pop: once the counter is exhausted
// or inactive, render returns "" and the state stays frozen.
func (s *substeps) render() string {
	if s.current > s.total {
		return ""
	}
	label := s.style.Render(fmt.Sprintf("(%d/%d) ", s.current, s.total))
	s.current++
	return label
}
