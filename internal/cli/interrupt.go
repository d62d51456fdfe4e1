package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// InterruptedError reports that a scan was stopped by a signal.
type InterruptedError struct {
	Signal os.Signal
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted by signal %d", e.ExitCode())
}

// ExitCode returns the signal number, used as the process exit status.
func (e *InterruptedError) ExitCode() int {
	if sig, ok := e.Signal.(syscall.Signal); ok {
		return int(sig)
	}

	return 1
}

// withInterrupt returns a context cancelled on the first interrupt signal, with an
// *InterruptedError as its cause. The handler is removed after the first signal so
// that a second one terminates the process right away. The returned function
// releases the handler.
func withInterrupt(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			signal.Stop(sigCh)

			cancel(&InterruptedError{Signal: sig})
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		close(done)
		cancel(nil)
	}
}
