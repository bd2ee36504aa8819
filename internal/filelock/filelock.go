// Package filelock provides the advisory, single-writer locking spec.md §5
// requires around the manifest and per-zone .gitignore files: a lock held
// only for the duration of one read-modify-write, never across a whole
// invocation.
package filelock

import (
	"fmt"
	"os"
)

// WithLock opens path (creating it if needed), takes a blocking exclusive
// lock, runs fn, and releases the lock before returning. The file is never
// removed: unlike a pidfile-style lock, this lock's path is the resource
// being protected (a manifest or .gitignore), not a disposable marker.
func WithLock(path string, fn func(f *os.File) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := lock(f); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer unlock(f)

	return fn(f)
}
