package backup

import (
	"crypto/rand"
	"fmt"
)

// maxIDAttempts bounds the collision-retry loop for centralized-mode
// filenames (spec.md §5: "~16M collision domain per stem ... bounded to 8
// attempts").
const maxIDAttempts = 8

// newID generates a 6-hex-digit suffix (spec.md §3's BackupRecord.id).
func newID() (string, error) {
	var buf [3]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate backup id: %w", err)
	}
	return fmt.Sprintf("%02x%02x%02x", buf[0], buf[1], buf[2]), nil
}

// newUniqueID calls exists for successive candidate IDs until one is free,
// retrying up to maxIDAttempts times before giving up.
func newUniqueID(exists func(id string) bool) (string, error) {
	var lastErr error
	for i := 0; i < maxIDAttempts; i++ {
		id, err := newID()
		if err != nil {
			lastErr = err
			continue
		}
		if !exists(id) {
			return id, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", fmt.Errorf("no unique backup id after %d attempts", maxIDAttempts)
}
