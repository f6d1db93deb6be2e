package terminal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/abesto/beout/pkg/theme"
)

// captureHandler is a slog.Handler that records message strings. The mutex
// matters: countdown goroutines mirror lines concurrently with test
// assertions.
type captureHandler struct {
	mu   sync.Mutex
	msgs []string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, r.Message)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.msgs...)
}

// plainTheme renders no escape codes at all, making output byte-for-byte
// predictable in tests.
func plainTheme() theme.Theme {
	plain := lipgloss.NewStyle()
	return theme.Theme{
		Box:              plain,
		TimestampBracket: plain,
		Timestamp:        plain,
		Substeps:         plain,
		SpinnerDot:       plain,
		Eta:              plain,
		TimestampFormat:  "15:04:05",
	}
}
