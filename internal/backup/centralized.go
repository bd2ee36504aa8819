package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxFilesDirWarnBytes is the threshold past which a one-line, once per
// invocation warning is printed (spec.md §4.3: "exceeds 500 MB").
const maxFilesDirWarnBytes = 500 * 1024 * 1024

// Centralized backs up a single target into <backupRoot>/files/ and
// appends a manifest record. Filename collisions are retried up to
// maxIDAttempts times (spec.md §5).
func Centralized(backupRoot, targetPath string, isDir bool, workspace, command string) (Outcome, error) {
	filesDir := filepath.Join(backupRoot, "files")
	if err := os.MkdirAll(filesDir, 0o700); err != nil {
		return Outcome{}, fmt.Errorf("create files dir: %w", err)
	}

	stem := filepath.Base(targetPath)
	ext := ""
	if !isDir {
		ext = filepath.Ext(stem)
		stem = strings.TrimSuffix(stem, ext)
	}

	var id, backupName, dst string
	uniqueErr := func() error {
		var err error
		id, err = newUniqueID(func(candidate string) bool {
			name := backupFilename(stem, ext, candidate, isDir)
			_, statErr := os.Lstat(filepath.Join(filesDir, name))
			return statErr == nil
		})
		if err != nil {
			return err
		}
		backupName = backupFilename(stem, ext, id, isDir)
		dst = filepath.Join(filesDir, backupName)
		return nil
	}()
	if uniqueErr != nil {
		return Outcome{}, fmt.Errorf("allocate backup id: %w", uniqueErr)
	}

	var size int64
	var err error
	if isDir {
		size, err = copyDir(targetPath, dst, id)
	} else {
		size, err = copyFile(targetPath, dst, id)
	}
	if err != nil {
		return Outcome{}, err
	}

	rec := Record{
		ID:             id,
		BackupFilename: backupName,
		OriginalPath:   targetPath,
		BackedUpAt:     time.Now().UTC().Format(time.RFC3339),
		Workspace:      workspace,
		IsDir:          isDir,
		SizeBytes:      size,
		Command:        command,
	}
	manifestPath := filepath.Join(backupRoot, "manifest.jsonl")
	if err := appendRecord(manifestPath, rec); err != nil {
		return Outcome{}, fmt.Errorf("append manifest record: %w", err)
	}

	return Outcome{Backed: true}, nil
}

// FilesDirWarning reports the once-per-invocation diagnostic spec.md §4.3
// calls for when the centralized files/ directory exceeds 500MB. Callers
// check this once after every target in the invocation has been backed up,
// not per target, so a multi-target deletion prints it at most once.
func FilesDirWarning(backupRoot string) (string, error) {
	filesDir := filepath.Join(backupRoot, "files")
	total, err := dirSize(filesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("measure files dir: %w", err)
	}
	if total > maxFilesDirWarnBytes {
		return fmt.Sprintf("backup store at %s exceeds 500MB (%d bytes)", filesDir, total), nil
	}
	return "", nil
}

func backupFilename(stem, ext, id string, isDir bool) string {
	if isDir {
		return fmt.Sprintf("%s_%s", stem, id)
	}
	return fmt.Sprintf("%s_%s%s", stem, id, ext)
}

// Outcome reports what a single-target backup attempt did, for the
// stdout diagnostics the pipeline prints (spec.md §4.3's "reported
// reason").
type Outcome struct {
	Backed  bool
	Skipped bool
	Reason  string
	Warning string
}
