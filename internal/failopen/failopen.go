// Package failopen is the outermost boundary spec.md §4.5 requires: the
// single place a panic or unexpected error anywhere in the pipeline is
// caught and turned into an allow decision, so a bug in this tool never
// stops the user's work. It is grounded on the teacher's hookCommand /
// evaluateCommand pattern (internal/cli/hook.go), which already treats
// config, parse, and engine-init failures as fail-open warnings rather
// than propagating them to the exit code.
package failopen

import (
	"fmt"
	"os"
)

// Run calls fn and guarantees the return value is always a safe exit code:
// on panic, it prints a best-effort one-line diagnostic to stderr and
// returns 0 (allow), per spec.md §4.5.
func Run(fn func() int) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "claude-code-protect: internal error, allowing: %v\n", r)
			exitCode = 0
		}
	}()
	return fn()
}
