package dirsizes

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 200 * time.Millisecond

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output to stderr if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
// The returned function stops the reporter and waits for it to exit.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(
	ctx context.Context,
	c *collector,
	hook func(int64, uint64),
	interval time.Duration,
) func() {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(interval)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

// Run scans the immediate children of opt.Path and returns their sizes.
// Directories are sized recursively, regular files directly, and every other
// entry type is skipped. Errors on individual entries are recorded in the
// Report; only a missing or unreadable root is returned as an error.
//
// The scan stops at the next entry once ctx is cancelled, and the Report then
// holds whatever was gathered with Interrupted set. Progress updates are sent
// to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, uint64)) (*Report, error) {
	log := logger{enabled: opt.Debug}

	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	excludeRegexes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludeRegexes = append(excludeRegexes, re)
	}

	log.printf("[debug]: scanning %s\n", opt.Path)
	log.printf("[debug]: exclude regexes:\n")

	for _, re := range excludeRegexes {
		log.printf("[debug]:   - %s\n", re.String())
	}

	children, err := os.ReadDir(opt.Path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", opt.Path, err)
	}

	collector := newCollector()
	walk := walker{collector: collector, excludes: excludeRegexes, log: log}

	start := time.Now()

	stopProgress := startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)
	defer stopProgress()

	walk.scanChildren(ctx, opt.Path, children)

	stopProgress()

	report := collector.finalize(opt.Path)
	report.Interrupted = ctx.Err() != nil
	report.Elapsed = time.Since(start)

	log.printf("[debug]: scanned %d files in %v\n", report.FileCount, report.Elapsed)

	return report, nil
}

// scanChildren sizes every child of root and records it as an entry.
// Directories are walked, regular files are read directly and anything else is
// skipped. A child whose size cannot be read is recorded as an error and skipped.
// The loop stops before the next child once ctx is cancelled.
func (w walker) scanChildren(ctx context.Context, root string, children []fs.DirEntry) {
	for _, child := range children {
		if ctx.Err() != nil {
			return
		}

		path := filepath.Join(root, child.Name())

		if re := w.shouldExclude(path); re != nil {
			w.log.printf("[debug]: excluding %s (matched %s)\n", filepath.ToSlash(path), re.String())

			continue
		}

		var size uint64

		switch {
		case child.IsDir():
			size = w.directorySize(ctx, path)
		case child.Type().IsRegular():
			info, err := child.Info()
			if err != nil {
				w.log.printf("[debug]: error accessing path %s: %v\n", path, err)
				w.collector.addError(path, err, SourceTopLevel)

				continue
			}

			size = uint64(info.Size()) //nolint:gosec // Sizes of regular files are never negative
			w.collector.addFile(size)
		default:
			w.log.printf("[debug]: skipping %s (type %s)\n", path, child.Type())

			continue
		}

		w.collector.addEntry(path, size)
	}
}
