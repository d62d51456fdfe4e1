package dirsizes

import (
	"errors"
	"io/fs"
	"sort"
	"sync"
	"time"
)

// ErrorSource tells where a filesystem error was encountered.
type ErrorSource int

const (
	// SourceWalk marks errors raised while recursing into a top-level directory.
	SourceWalk ErrorSource = iota
	// SourceTopLevel marks errors raised while reading a top-level entry itself.
	SourceTopLevel
)

// ScanEntry represents a single top-level path and its total size.
type ScanEntry struct {
	// Path is the file or directory path.
	Path string
	// Size is the size in bytes, recursive for directories.
	Size uint64
}

// ErrorRecord represents a filesystem operation that failed during a scan.
type ErrorRecord struct {
	// Path is the path the operation failed on.
	Path string
	// Message is the system-provided error message.
	Message string
	// Source tells whether the failure happened during a walk or at the top level.
	Source ErrorSource
}

// Report holds the outcome of a scan.
type Report struct {
	// Root is the scanned directory.
	Root string
	// Entries are the top-level entries, largest first.
	Entries []ScanEntry
	// Errors are the recorded failures in the order they occurred.
	Errors []ErrorRecord
	// FileCount is the number of regular files whose size was counted.
	FileCount int64
	// TotalBytes is the cumulative size of all counted files.
	TotalBytes uint64
	// Interrupted reports whether the scan was cancelled before completing.
	Interrupted bool
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration
}

// Options configures a scan.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// collector accumulates entries, errors and counters. It is shared with the
// progress reporter goroutine, so every access goes through the mutex.
type collector struct {
	mu         sync.Mutex
	entries    []ScanEntry
	errors     []ErrorRecord
	fileCount  int64
	totalBytes uint64
}

func newCollector() *collector {
	return &collector{
		entries: make([]ScanEntry, 0),
		errors:  make([]ErrorRecord, 0),
	}
}

// addFile counts a regular file towards the progress counters.
func (c *collector) addFile(size uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += size
}

// addEntry records a finished top-level entry.
func (c *collector) addEntry(path string, size uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, ScanEntry{Path: path, Size: size})
}

// addError appends an error record. Records are never removed.
func (c *collector) addError(path string, err error, source ErrorSource) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors = append(c.errors, ErrorRecord{Path: path, Message: errorMessage(err), Source: source})
}

// progress returns the current counters.
func (c *collector) progress() (int64, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

// finalize produces the Report, with entries sorted by size (largest first).
// Entries of equal size keep the order in which they were added.
func (c *collector) finalize(root string) *Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]ScanEntry, len(c.entries))
	copy(entries, c.entries)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Size > entries[j].Size
	})

	errs := make([]ErrorRecord, len(c.errors))
	copy(errs, c.errors)

	return &Report{
		Root:       root,
		Entries:    entries,
		Errors:     errs,
		FileCount:  c.fileCount,
		TotalBytes: c.totalBytes,
	}
}

// errorMessage strips the operation and path from err, leaving the system message.
func errorMessage(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}

	return err.Error()
}
