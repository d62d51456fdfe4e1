package dirsizes

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file of the given size, creating parent directories as needed.
func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirectorySizeEmpty(t *testing.T) {
	t.Parallel()

	size, errs := DirectorySize(context.Background(), t.TempDir())

	if size != 0 {
		t.Errorf("size = %d, want 0", size)
	}

	if len(errs) != 0 {
		t.Errorf("errors = %v, want none", errs)
	}
}

func TestDirectorySizeFlat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), 100)
	writeFile(t, filepath.Join(dir, "b"), 200)
	writeFile(t, filepath.Join(dir, "c"), 300)

	size, errs := DirectorySize(context.Background(), dir)

	if size != 600 {
		t.Errorf("size = %d, want 600", size)
	}

	if len(errs) != 0 {
		t.Errorf("errors = %v, want none", errs)
	}
}

func TestDirectorySizeNested(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top"), 1)
	writeFile(t, filepath.Join(dir, "x", "one"), 10)
	writeFile(t, filepath.Join(dir, "x", "y", "two"), 100)
	writeFile(t, filepath.Join(dir, "x", "y", "z", "three"), 1000)

	if err := os.Symlink(filepath.Join(dir, "x"), filepath.Join(dir, "link")); err != nil {
		t.Fatal(err)
	}

	size, errs := DirectorySize(context.Background(), dir)

	// The symlink is not followed.
	if size != 1111 {
		t.Errorf("size = %d, want 1111", size)
	}

	if len(errs) != 0 {
		t.Errorf("errors = %v, want none", errs)
	}
}

func TestDirectorySizeUnreadableSubdirectory(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), 100)
	writeFile(t, filepath.Join(dir, "open", "b"), 200)
	writeFile(t, filepath.Join(dir, "locked", "c"), 400)

	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	size, errs := DirectorySize(context.Background(), dir)

	if size != 300 {
		t.Errorf("size = %d, want 300", size)
	}

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}

	if errs[0].Path != locked {
		t.Errorf("error path = %q, want %q", errs[0].Path, locked)
	}

	if !strings.Contains(errs[0].Message, "permission denied") {
		t.Errorf("error message = %q, want permission denied", errs[0].Message)
	}

	if errs[0].Source != SourceWalk {
		t.Errorf("error source = %v, want SourceWalk", errs[0].Source)
	}
}

func TestDirectorySizeMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "gone")

	size, errs := DirectorySize(context.Background(), missing)

	if size != 0 {
		t.Errorf("size = %d, want 0", size)
	}

	if len(errs) == 0 {
		t.Error("expected an error for a missing directory")
	}
}

func TestDirectorySizeCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(dir, "d", strings.Repeat("f", i+1)), 50)
	}

	total, _ := DirectorySize(context.Background(), dir)
	if total != 1000 {
		t.Fatalf("total = %d, want 1000", total)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	partial, errs := DirectorySize(ctx, dir)

	if partial > total {
		t.Errorf("partial = %d exceeds total %d", partial, total)
	}

	if partial != 0 {
		t.Errorf("partial = %d, want 0 for an already cancelled walk", partial)
	}

	if len(errs) != 0 {
		t.Errorf("cancellation recorded errors: %v", errs)
	}
}

func TestDirectorySizeExcludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep", "a"), 100)
	writeFile(t, filepath.Join(dir, "node_modules", "b"), 200)
	writeFile(t, filepath.Join(dir, "keep", "c.log"), 400)

	c := newCollector()
	w := walker{collector: c, excludes: mustCompile(t, `node_modules`, `\.log$`)}

	if size := w.directorySize(context.Background(), dir); size != 100 {
		t.Errorf("size = %d, want 100", size)
	}

	files, bytes := c.progress()
	if files != 1 || bytes != 100 {
		t.Errorf("progress = (%d, %d), want (1, 100)", files, bytes)
	}
}
