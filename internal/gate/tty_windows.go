//go:build windows

package gate

import "os"

// openTTY opens the Windows console device directly, the platform
// equivalent of /dev/tty on Unix.
func openTTY() (*os.File, error) {
	return os.OpenFile("CONIN$", os.O_RDWR, 0)
}
