package backup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/frier-sam/claude-code-protect/internal/filelock"
)

// PerFolderCapBytes is the combined per-invocation size budget (spec.md
// §4.3: "10 MB per-operation cap").
const PerFolderCapBytes = 10 * 1024 * 1024

const gitignoreLine = ".claude-backups/"

// PerFolderSession shares a single <ts>_<pid> subdirectory across every
// backup performed during one invocation (spec.md §4.3: "created once; all
// backups from that invocation share it"). The 10MB cap is decided
// all-or-nothing for the whole invocation by PrepareCap before any target
// is copied (spec.md §4.3/§8: "6 MB + 6 MB in same invocation -> both
// skipped" — a target that would fit alone must still be skipped if the
// invocation's combined total does not).
type PerFolderSession struct {
	overCap bool
	stamp   string
	pid     int
}

// NewPerFolderSession starts a session keyed to a single <ts>_<pid>
// subdirectory, shared by every backup performed during this invocation.
func NewPerFolderSession(stamp string, pid int) *PerFolderSession {
	return &PerFolderSession{stamp: stamp, pid: pid}
}

// SizeTarget is a target awaiting a size estimate, for the pre-flight sum
// PrepareCap needs before any backup starts.
type SizeTarget struct {
	Path  string
	IsDir bool
}

// TotalSize sums the size of every target, the way PrepareCap needs it
// summed before a single file is copied.
func TotalSize(targets []SizeTarget) (int64, error) {
	var total int64
	for _, t := range targets {
		size, err := estimateSize(t.Path, t.IsDir)
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total, nil
}

// PrepareCap decides, once per invocation and before any target is copied,
// whether the combined size of every per-folder target exceeds the 10MB
// cap. If it does, every subsequent PerFolder call for this session is
// skipped, even for targets that would individually fit.
func (s *PerFolderSession) PrepareCap(targets []SizeTarget) error {
	total, err := TotalSize(targets)
	if err != nil {
		return err
	}
	s.overCap = total > PerFolderCapBytes
	return nil
}

// PerFolder backs up one target relative to its zone root. zoneRoot is the
// workspace root or the matched whitelist entry. relPath is targetPath
// relative to zoneRoot. Callers must call PrepareCap with the full target
// set for this invocation before the first PerFolder call.
func (s *PerFolderSession) PerFolder(zoneRoot, targetPath string, isDir bool) (Outcome, error) {
	if s.overCap {
		return Outcome{Skipped: true, Reason: "skipped: invocation's combined per-folder backups exceed 10MB cap"}, nil
	}

	relPath, err := filepath.Rel(zoneRoot, targetPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("compute relative path: %w", err)
	}

	subdir := fmt.Sprintf("%s_%d", s.stamp, s.pid)
	dst := filepath.Join(zoneRoot, ".claude-backups", subdir, relPath)
	id := subdir

	if isDir {
		_, err = copyDir(targetPath, dst, id)
	} else {
		_, err = copyFile(targetPath, dst, id)
	}
	if err != nil {
		return Outcome{}, err
	}

	if err := ensureGitignoreEntry(zoneRoot); err != nil {
		// Cosmetic only (spec.md §5): never fails the backup.
		return Outcome{Backed: true, Warning: "could not update .gitignore: " + err.Error()}, nil
	}
	return Outcome{Backed: true}, nil
}

func estimateSize(path string, isDir bool) (int64, error) {
	if !isDir {
		info, err := os.Stat(path)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", path, err)
		}
		return info.Size(), nil
	}
	return dirSize(path)
}

// ensureGitignoreEntry makes sure <zoneRoot>/.gitignore contains a
// `.claude-backups/` line, guarded by an advisory lock on the gitignore
// file itself (spec.md §5).
func ensureGitignoreEntry(zoneRoot string) error {
	path := filepath.Join(zoneRoot, ".gitignore")
	return filelock.WithLock(path, func(f *os.File) error {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) == gitignoreLine {
				return nil
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		info, err := f.Stat()
		if err != nil {
			return err
		}
		prefix := ""
		if info.Size() > 0 {
			if _, err := f.Seek(info.Size()-1, io.SeekStart); err != nil {
				return err
			}
			last := make([]byte, 1)
			if _, err := f.Read(last); err != nil {
				return err
			}
			if last[0] != '\n' {
				prefix = "\n"
			}
		}
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			return err
		}
		_, err = f.WriteString(prefix + gitignoreLine + "\n")
		return err
	})
}
