package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/abesto/beout/pkg/ansi"
)

// sink wraps the raw output destination and manages writing exactly one \n
// between lines. It tracks whether the cursor sits at the start of a fresh
// line, and mirrors every completed line, stripped of styling, to the log
// collaborator. All components write to the terminal through one sink.
//
// The mutex makes sink state safe to hand between the main flow and an
// animation goroutine; which goroutine is allowed to write at any moment is
// the Writer's job (it joins the running animation before rendering).
type sink struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	atLineStart bool
	pending     strings.Builder
	logger      *slog.Logger
}

func newSink(out io.Writer, interactive bool, logger *slog.Logger) *sink {
	return &sink{
		out:         out,
		interactive: interactive,
		atLineStart: true,
		logger:      logger,
	}
}

// write emits text verbatim on an interactive destination, or with styling
// stripped otherwise. Empty writes are ignored. The raw text accumulates in
// the pending-line buffer until the next mirrored newline.
func (s *sink) write(text string) error {
	if text == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	emit := text
	if !s.interactive {
		emit = ansi.Strip(emit)
	}
	if _, err := io.WriteString(s.out, emit); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	s.atLineStart = false
	s.pending.WriteString(text)
	return nil
}

// newline emits a single \n unless the sink is already at the start of a
// line; force overrides that check, which makes un-forced newline calls
// idempotent. When mirror is set the stripped pending line is forwarded to
// the logger. Scroll-region redraws pass mirror=false so visual-only
// newlines never reach the log.
func (s *sink) newline(force, mirror bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.atLineStart {
		return nil
	}
	if _, err := io.WriteString(s.out, "\n"); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	s.atLineStart = true
	if mirror {
		s.logger.Info(ansi.Strip(s.pending.String()))
	}
	s.pending.Reset()
	return nil
}

// control writes a cursor movement sequence straight to the destination. It
// bypasses line-start tracking and the pending buffer: cursor movement is
// invisible in the line's text and must never leak into the log mirror.
func (s *sink) control(seq string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.out, seq); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}
