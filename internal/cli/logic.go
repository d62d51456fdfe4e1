package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dirsizes/internal/dirsizes"
	"github.com/idelchi/dirsizes/internal/spinner"
)

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })

	return ok && isatty.IsTerminal(f.Fd())
}

func logic(ctx context.Context, options dirsizes.Options, progress bool, stdout, stderr io.Writer) error {
	enableProgress := progress &&
		!options.Debug &&
		isTerminal(stderr)

	ctx, release := withInterrupt(ctx)
	defer release()

	fmt.Fprintf(stdout, "Working with path: %s\n", options.Path)

	var progressHook func(files int64, bytes uint64)

	spin := spinner.New(stderr, "Calculating sizes...", spinner.DefaultInterval)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files int64, bytes uint64) {
			spin.SetStatus(fmt.Sprintf("%s files, %s", humanize.Comma(files), humanize.IBytes(bytes)))
		}

		spin.Start(ctx)
	}

	report, err := dirsizes.Run(ctx, options, progressHook)

	// The spinner must have cleared its line before anything else is written.
	spin.Stop()

	cause := context.Cause(ctx)

	var interrupted *InterruptedError
	if errors.As(cause, &interrupted) {
		fmt.Fprintf(stderr, "\nInterrupt signal (%d) received.\n", interrupted.ExitCode())
	}

	if err != nil {
		return err
	}

	if err := PrintReport(report, stdout); err != nil {
		return err
	}

	if !report.Interrupted {
		return nil
	}

	fmt.Fprintf(stderr, "Scan of %s interrupted, results are partial.\n", report.Root)

	if interrupted != nil {
		return interrupted
	}

	return cause
}
