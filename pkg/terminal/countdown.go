package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// countdown is a background task that rewrites the tail of the current line
// with a live ETA once per second, and replaces it with an elapsed-time
// summary when stopped. Used to indicate progress in long-running tasks.
type countdown struct {
	cancel context.CancelFunc
	group  *errgroup.Group
}

func startCountdown(out *sink, style lipgloss.Style, prefix string, seconds int) (*countdown, error) {
	if seconds < 0 {
		return nil, fmt.Errorf("countdown target must not be negative, got %d", seconds)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var lastPrinted string
		// Blank whatever we printed last (measured without styling), return
		// the carriage to column 0 and print the line again with the new
		// suffix.
		overwrite := func(suffix string) error {
			blank := "\r" + strings.Repeat(" ", visibleWidth(lastPrinted)) + "\r"
			lastPrinted = prefix + " " + suffix
			return out.write(blank + lastPrinted)
		}

		elapsed := 0
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			remaining := seconds - elapsed
			if err := overwrite(style.Render("(ETA: " + naturalTime(remaining) + ")")); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				// The final overwrite happens inside the loop goroutine, so
				// stop's join guarantees nothing lands after it.
				return overwrite(style.Render("(Finished in " + naturalDuration(elapsed) + ")"))
			case <-ticker.C:
				elapsed++
			}
		}
	})

	return &countdown{cancel: cancel, group: group}, nil
}

// stop signals the loop, waits for it to write the "(Finished in ...)"
// summary and exit, and returns any error from the loop's writes.
func (c *countdown) stop() error {
	c.cancel()
	return c.group.Wait()
}

// naturalTime renders a signed number of seconds from now as a human
// relative time, e.g. "10 seconds from now" or "5 seconds ago". Both ends of
// the interval derive from one clock reading so the rendered number never
// loses a second to skew.
func naturalTime(seconds int) string {
	now := time.Now()
	return humanize.RelTime(now.Add(time.Duration(seconds)*time.Second), now, "ago", "from now")
}

// naturalDuration renders a number of elapsed seconds as a bare duration,
// e.g. "10 seconds". Anything under a second reads as "a moment" rather
// than RelTime's "now", which makes no sense after "Finished in".
func naturalDuration(seconds int) string {
	if seconds < 1 {
		return "a moment"
	}
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now, now.Add(time.Duration(seconds)*time.Second), "", ""))
}
