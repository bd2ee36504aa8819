//go:build !windows

package gate

import "os"

// openTTY opens the controlling terminal directly, bypassing stdin, which
// spec.md §4.4 reserves for the host envelope.
func openTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}
