// Package terminal renders human-friendly progress output for long-running
// command-line operations: boxed banners, timestamped status lines, numbered
// substeps, animated working indicators and a bounded scrolling viewport,
// all multiplexed onto a single output stream.
//
// A Writer owns the stream. At most one background animation (progress dots
// or a live ETA countdown) runs at a time, and every public operation first
// stops and joins the running animation, so exactly one goroutine touches
// the terminal at any moment.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/abesto/beout/pkg/ansi"
	"github.com/abesto/beout/pkg/theme"
)

// defaultWidth is the fallback console width when detection fails.
const defaultWidth = 80

// ErrScrollSessionClosed is returned by a scroll session's push function
// when called after the session has ended.
var ErrScrollSessionClosed = errors.New("push called outside an active scroll session")

// animation is the single-slot ownership token for a running background
// task. stop blocks until the task has performed its last write and exited.
type animation interface {
	stop() error
}

// Writer is the public API. All methods are safe for use from a single
// goroutine; the Writer coordinates with its own animation goroutines.
type Writer struct {
	mu       sync.Mutex
	out      io.Writer
	sink     *sink
	theme    theme.Theme
	substeps *substeps
	anim     animation
	width    int
}

type options struct {
	theme       theme.Theme
	logger      *slog.Logger
	interactive *bool
	width       int
}

// Option is a functional option for configuring a Writer.
type Option func(*options)

// WithTheme sets the styles used for all output.
// Default is theme.Default().
func WithTheme(t theme.Theme) Option {
	return func(o *options) {
		o.theme = t
	}
}

// WithLogger sets the logger that receives a plain-text mirror of every
// completed line. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithInteractive overrides terminal detection. When false, styling is
// stripped from all output and scroll sessions degrade to plain sequential
// lines. Default is isatty detection on the destination.
func WithInteractive(v bool) Option {
	return func(o *options) {
		o.interactive = &v
	}
}

// WithWidth fixes the console width used for scroll-region line wrapping,
// skipping the terminal size probe. Default is to probe the destination
// once per scroll session, falling back to 80 columns.
func WithWidth(w int) Option {
	return func(o *options) {
		o.width = w
	}
}

// New creates a Writer for the given destination.
func New(out io.Writer, opts ...Option) *Writer {
	o := options{
		theme:  theme.Default(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	interactive := detectInteractive(out)
	if o.interactive != nil {
		interactive = *o.interactive
	}

	return &Writer{
		out:      out,
		sink:     newSink(out, interactive, o.logger),
		theme:    o.theme,
		substeps: newSubsteps(o.theme.Substeps),
		width:    o.width,
	}
}

func detectInteractive(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Box renders text in a 3-line box sized to its visible width:
//
//	┌───────┐
//	│ hello │
//	└───────┘
//
// Like Done, it also resets the substep counter.
func (w *Writer) Box(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.substeps.reset()
	if err := w.interrupt(); err != nil {
		return err
	}
	if err := w.sink.newline(false, true); err != nil {
		return err
	}

	inner := runewidth.StringWidth(ansi.Strip(text)) + 2
	box := w.theme.Box
	return w.sink.write(box.Render("┌"+strings.Repeat("─", inner)+"┐") +
		"\n" + box.Render("│ ") + text + box.Render(" │") +
		"\n" + box.Render("└"+strings.Repeat("─", inner)+"┘"))
}

// Msg renders a timestamped status line: "[15:04:05] (1/2) text". The
// substep prefix appears only while the counter armed by Substeps has steps
// left.
func (w *Writer) Msg(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.interrupt(); err != nil {
		return err
	}
	if err := w.sink.newline(false, true); err != nil {
		return err
	}
	return w.sink.write(w.line(text))
}

// Eta renders a timestamped line like Msg and keeps a live
// "(ETA: <time>)" suffix updated at its end once per second. The next
// public operation stops the countdown, which replaces the suffix with
// "(Finished in <duration>)".
func (w *Writer) Eta(text string, seconds int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.interrupt(); err != nil {
		return err
	}
	if err := w.sink.newline(false, true); err != nil {
		return err
	}
	c, err := startCountdown(w.sink, w.theme.Eta, w.line(text), seconds)
	if err != nil {
		return err
	}
	w.anim = c
	return nil
}

// Substeps arms the step counter: the next n calls to Msg (or Eta) render
// with "(1/n) " through "(n/n) " prefixes.
func (w *Writer) Substeps(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.substeps.start(n)
}

// ProgressDots starts writing a styled dot at each interval, continuing the
// current line. The dots stop before the next public operation renders.
func (w *Writer) ProgressDots(interval time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.interrupt(); err != nil {
		return err
	}
	s, err := startSpinner(w.sink, w.theme.SpinnerDot, interval)
	if err != nil {
		return err
	}
	w.anim = s
	return nil
}

// ScrollSession runs fn with a push function that renders into a bounded
// viewport of the last lineCount lines, redrawn in place. lineCount -1 (or a
// non-interactive destination) writes pushed text as plain sequential lines;
// 0 discards it. When clearAndOverwriteAfter is set the viewport is blanked
// on exit and the cursor returns to where the session started. The viewport
// is released on every exit path, including an error returned by fn or a
// panic propagating out of it. Pushing after the session has ended returns
// ErrScrollSessionClosed.
func (w *Writer) ScrollSession(lineCount int, clearAndOverwriteAfter bool, fn func(push func(string) error) error) error {
	if lineCount < -1 {
		return fmt.Errorf("scroll line count must be -1, 0 or positive, got %d", lineCount)
	}

	w.mu.Lock()
	if err := w.reset(); err != nil {
		w.mu.Unlock()
		return err
	}
	var sc scroller
	switch {
	case lineCount == -1 || !w.sink.interactive:
		sc = &passThrough{out: w.sink}
	case lineCount == 0:
		sc = discard{}
	default:
		sc = &scrollRegion{out: w.sink, width: w.consoleWidth(), limit: lineCount}
	}
	if err := sc.enter(); err != nil {
		w.mu.Unlock()
		return err
	}
	w.mu.Unlock()

	active := true
	push := func(text string) error {
		if !active {
			return ErrScrollSessionClosed
		}
		return sc.push(text)
	}

	var fnErr, exitErr error
	func() {
		defer func() {
			active = false
			exitErr = sc.exit(clearAndOverwriteAfter)
		}()
		fnErr = fn(push)
	}()
	if fnErr != nil {
		return fnErr
	}
	return exitErr
}

// Done resets the substep counter, stops any running animation and flushes
// the current line.
func (w *Writer) Done() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reset()
}

// reset implements Done. Callers hold w.mu.
func (w *Writer) reset() error {
	w.substeps.reset()
	if err := w.interrupt(); err != nil {
		return err
	}
	return w.sink.newline(false, true)
}

// interrupt stops and joins the running animation, if any. Once it returns,
// no animation goroutine will write again, so the caller may render freely.
func (w *Writer) interrupt() error {
	if w.anim == nil {
		return nil
	}
	err := w.anim.stop()
	w.anim = nil
	if err != nil {
		return fmt.Errorf("stopping animation: %w", err)
	}
	return nil
}

// line renders the shared "[timestamp] (substep) text" prefix used by Msg
// and Eta.
func (w *Writer) line(text string) string {
	return w.timestamp() + " " + w.substeps.render() + text
}

func (w *Writer) timestamp() string {
	t := w.theme
	return t.TimestampBracket.Render("[") +
		t.Timestamp.Render(time.Now().Format(t.TimestampFormat)) +
		t.TimestampBracket.Render("]")
}

// consoleWidth returns the fixed width if one was configured, otherwise
// probes the destination terminal, falling back to defaultWidth.
func (w *Writer) consoleWidth() int {
	if w.width > 0 {
		return w.width
	}
	f, ok := w.out.(*os.File)
	if !ok {
		return defaultWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return defaultWidth
	}
	return cols
}
