// Package spinner draws a single-line progress animation on a terminal.
package spinner

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the delay between two animation frames.
const DefaultInterval = 200 * time.Millisecond

// frames is the glyph cycle drawn by the spinner.
const frames = `|/-\`

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\033[2K\r"

// Spinner redraws a label followed by a rotating glyph until stopped.
type Spinner struct {
	w        io.Writer
	label    string
	interval time.Duration
	status   atomic.Pointer[string]

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// New creates a Spinner writing to w. A non-positive interval selects DefaultInterval.
func New(w io.Writer, label string, interval time.Duration) *Spinner {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Spinner{
		w:        w,
		label:    label,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// SetStatus replaces the text shown after the glyph. It is safe to call from any goroutine.
func (s *Spinner) SetStatus(status string) {
	s.status.Store(&status)
}

// Start begins the animation in a new goroutine. It runs until ctx is done or Stop is called.
func (s *Spinner) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	go s.loop(ctx)
}

// Stop ends the animation and blocks until the line has been cleared.
// Calling Stop more than once, or on a Spinner that was never started, is a no-op.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		if s.cancel == nil {
			return
		}

		s.cancel()
		<-s.done
	})
}

func (s *Spinner) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		s.draw(frame)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			fmt.Fprint(s.w, clearLine)

			return
		}
	}
}

func (s *Spinner) draw(frame int) {
	line := fmt.Sprintf("%s %c", s.label, frames[frame%len(frames)])

	if status := s.status.Load(); status != nil && *status != "" {
		line += " " + *status
	}

	fmt.Fprintf(s.w, "\r\033[2K%s", line)
}
