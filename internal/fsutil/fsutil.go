// Package fsutil provides the small filesystem operations the run pipeline
// relies on: idempotent directory creation and destructive directory cleaning.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateDirectories creates every listed directory, including missing
// parents. Existing directories are left untouched, so repeated calls are
// safe.
func CreateDirectories(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", p, err)
		}
	}
	return nil
}

// CleanDirectory removes every entry inside dir, recursively, without
// removing dir itself. A missing directory is a no-op rather than an error,
// so callers can clean a target they have not created yet.
func CleanDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("clean dir %s: %w", dir, err)
		}
	}
	return nil
}
