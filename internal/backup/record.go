package backup

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/frier-sam/claude-code-protect/internal/filelock"
)

// Record is a manifest entry (spec.md §3's BackupRecord, centralized mode
// only).
type Record struct {
	ID             string `json:"id"`
	BackupFilename string `json:"backup_filename"`
	OriginalPath   string `json:"original_path"`
	BackedUpAt     string `json:"backed_up_at"`
	Workspace      string `json:"workspace"`
	IsDir          bool   `json:"is_dir"`
	SizeBytes      int64  `json:"size_bytes"`
	Command        string `json:"command"`
}

// appendRecord writes one JSON line to the manifest, guarded by an advisory
// exclusive lock held only for the duration of the append (spec.md §4.3,
// §5). Every writer takes the lock and seeks to the end of the file before
// writing, so records from concurrent invocations never interleave.
func appendRecord(manifestPath string, rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	return filelock.WithLock(manifestPath, func(f *os.File) error {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			return err
		}
		_, err := f.Write(line)
		return err
	})
}

// ReadManifest parses manifest.jsonl, skipping malformed lines defensively
// (spec.md §5: "readers skip malformed lines defensively"). Used by the
// read-only manifest CLI subcommand.
func ReadManifest(manifestPath string) ([]Record, error) {
	f, err := os.Open(manifestPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}
