// Package auditlog appends one JSON-lines DecisionEvent per invocation to
// decisions.jsonl, a machine-readable trail separate from both the
// plain-text stdout/stderr diagnostics the host parses and the backup
// manifest. It is grounded on the teacher's internal/logger package:
// same append-only file, same size-based rotation threshold, same
// before-write redaction pass.
package auditlog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/frier-sam/claude-code-protect/internal/redact"
)

// maxLogBytes is the rotation threshold, matching the teacher's audit log.
const maxLogBytes = 10 * 1024 * 1024

// DecisionEvent is one invocation's outcome.
type DecisionEvent struct {
	Timestamp      string   `json:"timestamp"`
	Command        string   `json:"command"`
	Cwd            string   `json:"cwd"`
	Classification string   `json:"classification"`
	Decision       string   `json:"decision"`
	Targets        []string `json:"targets,omitempty"`
	OutsideTargets []string `json:"outside_targets,omitempty"`
	Backups        int      `json:"backups,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Logger appends DecisionEvents to a single file.
type Logger struct {
	path string
	mu   sync.Mutex
}

// Open prepares a Logger for path; the file itself is created lazily on
// the first Log call.
func Open(path string) *Logger {
	return &Logger{path: path}
}

// Log appends one event, rotating the file first if it has grown past
// maxLogBytes. A failed rotation is reported on stderr and the append still
// goes ahead; marshal, open and write failures are returned to the caller,
// who treats them as advisory per spec.md §7's BackupFailure-style
// best-effort discipline: logging never changes the exit code.
func (l *Logger) Log(event DecisionEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.rotateIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "claude-code-protect: warning: decision log rotation failed: %v\n", err)
	}

	event.Command = redact.Redact(event.Command)
	if event.Error != "" {
		event.Error = redact.Redact(event.Error)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal decision event: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open decision log: %w", err)
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

func (l *Logger) rotateIfNeeded() error {
	info, err := os.Stat(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat decision log: %w", err)
	}
	if info.Size() < maxLogBytes {
		return nil
	}

	rotated := l.path + ".1"
	_ = os.Remove(rotated)
	if err := os.Rename(l.path, rotated); err != nil {
		return fmt.Errorf("rotate decision log: %w", err)
	}
	return nil
}
