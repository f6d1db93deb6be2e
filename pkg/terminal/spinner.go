package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

// spinner is a background task that writes a single styled dot at a fixed
// interval. Used to indicate progress in short, but not immediately
// finishing tasks.
type spinner struct {
	cancel context.CancelFunc
	group  *errgroup.Group
}

func startSpinner(out *sink, style lipgloss.Style, interval time.Duration) (*spinner, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("spinner interval must be positive, got %v", interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	dot := style.Render(".")

	group.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if err := out.write(dot); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	return &spinner{cancel: cancel, group: group}, nil
}

// stop signals the loop and blocks until it has exited. No dot lands on the
// terminal after stop returns; a write failure inside the loop surfaces
// here.
func (s *spinner) stop() error {
	s.cancel()
	return s.group.Wait()
}
