package terminal

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/abesto/beout/pkg/ansi"
)

// scroller is the lifecycle behind a scroll session. The Writer picks the
// variant; callers only ever see the push function.
type scroller interface {
	enter() error
	push(text string) error
	exit(clearAndOverwrite bool) error
}

// scrollRegion renders a capped-height tail view of a longer stream, in
// place, by moving the cursor back to the top of the region and repainting
// every row on each push.
type scrollRegion struct {
	out   *sink
	width int
	limit int
	lines []string
}

func (r *scrollRegion) enter() error {
	return r.out.newline(false, true)
}

func (r *scrollRegion) push(text string) error {
	next := append(append([]string(nil), r.lines...), r.chunk(text)...)
	if len(next) > r.limit {
		next = next[len(next)-r.limit:]
	}

	if err := r.moveToTop(); err != nil {
		return err
	}
	for i, line := range next {
		// Blank the row's previous content before painting the new one, so
		// a shorter line doesn't leave the old tail visible.
		if i < len(r.lines) {
			if err := r.out.write(strings.Repeat(" ", visibleWidth(r.lines[i])) + "\r"); err != nil {
				return err
			}
		}
		if err := r.out.write(line); err != nil {
			return err
		}
		if err := r.out.newline(true, false); err != nil {
			return err
		}
	}
	r.lines = next
	return nil
}

func (r *scrollRegion) exit(clearAndOverwrite bool) error {
	if clearAndOverwrite {
		if err := r.moveToTop(); err != nil {
			return err
		}
		for _, line := range r.lines {
			if err := r.out.write("\r" + strings.Repeat(" ", visibleWidth(line))); err != nil {
				return err
			}
			if err := r.out.newline(true, false); err != nil {
				return err
			}
		}
		if err := r.moveToTop(); err != nil {
			return err
		}
	}
	return r.out.newline(false, true)
}

// chunk splits text on newlines and breaks any over-wide line into
// console-width pieces, preserving order.
func (r *scrollRegion) chunk(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for runewidth.StringWidth(line) > r.width {
			head := runewidth.Truncate(line, r.width, "")
			if head == "" {
				// A single rune wider than the region must still make
				// progress, or a 1-column pane would loop forever.
				_, size := utf8.DecodeRuneInString(line)
				head = line[:size]
			}
			out = append(out, head)
			line = line[len(head):]
		}
		out = append(out, line)
	}
	return out
}

// visibleWidth is the on-screen width of a rendered line: styling stripped,
// wide runes counted by the cells they occupy. Blanking with byte lengths
// would over-pad multi-byte runes and could wrap a full line.
func visibleWidth(line string) int {
	return runewidth.StringWidth(ansi.Strip(line))
}

func (r *scrollRegion) moveToTop() error {
	if len(r.lines) == 0 {
		return nil
	}
	return r.out.control(ansi.CursorUp(len(r.lines)))
}

// passThrough writes every pushed chunk followed by a newline, with no
// redraw bookkeeping. Selected for non-interactive destinations and for a
// requested line count of -1.
type passThrough struct {
	out *sink
}

func (p *passThrough) enter() error { return nil }

func (p *passThrough) push(text string) error {
	if err := p.out.write(text); err != nil {
		return err
	}
	return p.out.newline(true, true)
}

func (p *passThrough) exit(bool) error { return nil }

// discard drops all pushed text. Selected for a requested line count of 0.
type discard struct{}

func (discard) enter() error      { return nil }
func (discard) push(string) error { return nil }
func (discard) exit(bool) error   { return nil }
