package dirsizes

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// walker sums directory trees and records the errors it meets on the way.
type walker struct {
	collector *collector
	excludes  []*regexp.Regexp
	log       logger
}

// DirectorySize returns the total size of the regular files below path,
// together with any errors encountered. It never fails: unreadable parts of
// the tree are recorded and skipped. If ctx is cancelled the partial sum
// accumulated so far is returned.
func DirectorySize(ctx context.Context, path string) (uint64, []ErrorRecord) {
	w := walker{collector: newCollector()}

	size := w.directorySize(ctx, path)

	return size, w.collector.finalize(path).Errors
}

// shouldExclude checks if path matches any exclusion regex.
func (w walker) shouldExclude(path string) *regexp.Regexp {
	if len(w.excludes) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range w.excludes {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

func (w walker) directorySize(ctx context.Context, root string) uint64 {
	var total atomic.Uint64

	// A single worker keeps the traversal sequential.
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			w.log.printf("[debug]: error accessing path %s: %v\n", path, err)
			w.collector.addError(path, err, SourceWalk)

			return nil
		}

		if path != root {
			if re := w.shouldExclude(path); re != nil {
				w.log.printf("[debug]: excluding %s (matched %s)\n", filepath.ToSlash(path), re.String())

				if d.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			w.collector.addError(path, err, SourceWalk)

			return nil //nolint:nilerr // Recorded, keep walking
		}

		size := uint64(info.Size()) //nolint:gosec // Sizes of regular files are never negative

		total.Add(size)
		w.collector.addFile(size)

		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, context.Canceled) && !errors.Is(walkErr, context.DeadlineExceeded) {
		w.collector.addError(root, walkErr, SourceWalk)
	}

	return total.Load()
}
