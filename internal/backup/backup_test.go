package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frier-sam/claude-code-protect/internal/config"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCentralized_BacksUpFileAndAppendsManifest(t *testing.T) {
	backupRoot := t.TempDir()
	workspace := t.TempDir()
	target := filepath.Join(workspace, "a.txt")
	writeFile(t, target, "hello")

	outcome, err := Centralized(backupRoot, target, false, workspace, "rm "+target)
	if err != nil {
		t.Fatalf("Centralized: %v", err)
	}
	if !outcome.Backed {
		t.Fatalf("expected Backed, got %+v", outcome)
	}

	records, err := ReadManifest(filepath.Join(backupRoot, "manifest.jsonl"))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 manifest record, got %d", len(records))
	}
	if records[0].OriginalPath != target {
		t.Errorf("unexpected original path: %s", records[0].OriginalPath)
	}
	backedUpContent, err := os.ReadFile(filepath.Join(backupRoot, "files", records[0].BackupFilename))
	if err != nil {
		t.Fatalf("read backup file: %v", err)
	}
	if string(backedUpContent) != "hello" {
		t.Errorf("unexpected backup contents: %s", backedUpContent)
	}
}

func TestFilesDirWarning_BelowThresholdIsEmpty(t *testing.T) {
	backupRoot := t.TempDir()
	target := filepath.Join(backupRoot, "src.txt")
	writeFile(t, target, "small")
	if _, err := Centralized(backupRoot, target, false, backupRoot, "rm "+target); err != nil {
		t.Fatalf("Centralized: %v", err)
	}

	warning, err := FilesDirWarning(backupRoot)
	if err != nil {
		t.Fatalf("FilesDirWarning: %v", err)
	}
	if warning != "" {
		t.Errorf("expected no warning below the threshold, got %q", warning)
	}
}

func TestFilesDirWarning_MissingFilesDirIsEmpty(t *testing.T) {
	warning, err := FilesDirWarning(t.TempDir())
	if err != nil {
		t.Fatalf("FilesDirWarning: %v", err)
	}
	if warning != "" {
		t.Errorf("expected no warning when files/ does not exist yet, got %q", warning)
	}
}

func TestCentralized_DirectoryBackupSkipsSkipSet(t *testing.T) {
	backupRoot := t.TempDir()
	workspace := t.TempDir()
	target := filepath.Join(workspace, "proj")
	writeFile(t, filepath.Join(target, "main.go"), "package main")
	writeFile(t, filepath.Join(target, "node_modules", "lib.js"), "ignored")

	outcome, err := Centralized(backupRoot, target, true, workspace, "rm -rf "+target)
	if err != nil {
		t.Fatalf("Centralized: %v", err)
	}
	if !outcome.Backed {
		t.Fatalf("expected Backed, got %+v", outcome)
	}

	records, _ := ReadManifest(filepath.Join(backupRoot, "manifest.jsonl"))
	backupDir := filepath.Join(backupRoot, "files", records[0].BackupFilename)
	if _, err := os.Stat(filepath.Join(backupDir, "main.go")); err != nil {
		t.Errorf("expected main.go to be backed up: %v", err)
	}
	if _, err := os.Stat(filepath.Join(backupDir, "node_modules")); !os.IsNotExist(err) {
		t.Errorf("expected node_modules to be skipped in backup")
	}
}

func TestReadManifest_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.jsonl")
	writeFile(t, path, `{"id":"abc123","original_path":"/x"}`+"\nnot json\n"+`{"id":"def456","original_path":"/y"}`+"\n")

	records, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 well-formed records, got %d", len(records))
	}
}

func TestEngine_SkipsSkipSetPath(t *testing.T) {
	cfg := config.Config{BackupMode: config.ModeCentralized, BackupRoot: t.TempDir()}
	eng := New(cfg, 1234)

	outcome, err := eng.BackUp("/ws/.git/HEAD", false, "/ws", "rm /ws/.git/HEAD")
	if err != nil {
		t.Fatalf("BackUp: %v", err)
	}
	if !outcome.Skipped {
		t.Errorf("expected skipped outcome for .git path, got %+v", outcome)
	}
}

func TestEngine_SkipsMissingTarget(t *testing.T) {
	cfg := config.Config{BackupMode: config.ModeCentralized, BackupRoot: t.TempDir()}
	eng := New(cfg, 1234)

	outcome, err := eng.BackUp("/nonexistent/path/x", false, "/nonexistent", "rm x")
	if err != nil {
		t.Fatalf("BackUp: %v", err)
	}
	if !outcome.Skipped {
		t.Errorf("expected skipped outcome for missing target, got %+v", outcome)
	}
}

func TestEngine_PerFolderPrepareTargetsIsAllOrNothing(t *testing.T) {
	workspace := t.TempDir()
	sixMB := make([]byte, 6*1024*1024)
	targetA := filepath.Join(workspace, "a.bin")
	targetB := filepath.Join(workspace, "b.bin")
	if err := os.WriteFile(targetA, sixMB, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(targetB, sixMB, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{BackupMode: config.ModePerFolder}
	eng := New(cfg, 99)
	if err := eng.PrepareTargets([]SizeTarget{
		{Path: targetA, IsDir: false},
		{Path: targetB, IsDir: false},
	}); err != nil {
		t.Fatalf("PrepareTargets: %v", err)
	}

	outcomeA, err := eng.BackUp(targetA, false, workspace, "rm "+targetA)
	if err != nil {
		t.Fatalf("BackUp(a): %v", err)
	}
	if !outcomeA.Skipped {
		t.Errorf("expected first target skipped when combined total exceeds cap, got %+v", outcomeA)
	}

	outcomeB, err := eng.BackUp(targetB, false, workspace, "rm "+targetB)
	if err != nil {
		t.Fatalf("BackUp(b): %v", err)
	}
	if !outcomeB.Skipped {
		t.Errorf("expected second target skipped when combined total exceeds cap, got %+v", outcomeB)
	}
}

func TestEngine_CentralizedPrepareTargetsIsNoOp(t *testing.T) {
	cfg := config.Config{BackupMode: config.ModeCentralized, BackupRoot: t.TempDir()}
	eng := New(cfg, 1234)
	if err := eng.PrepareTargets([]SizeTarget{{Path: "/whatever", IsDir: false}}); err != nil {
		t.Fatalf("PrepareTargets should be a no-op in centralized mode: %v", err)
	}
}

func TestPerFolder_CapSkipsOversizedTarget(t *testing.T) {
	workspace := t.TempDir()
	target := filepath.Join(workspace, "big.bin")
	big := make([]byte, PerFolderCapBytes+1)
	if err := os.WriteFile(target, big, 0o600); err != nil {
		t.Fatal(err)
	}

	session := NewPerFolderSession("2026-01-01_00-00-00", 1)
	targets := []SizeTarget{{Path: target, IsDir: false}}
	if err := session.PrepareCap(targets); err != nil {
		t.Fatalf("PrepareCap: %v", err)
	}
	outcome, err := session.PerFolder(workspace, target, false)
	if err != nil {
		t.Fatalf("PerFolder: %v", err)
	}
	if !outcome.Skipped {
		t.Fatalf("expected skip for oversized target, got %+v", outcome)
	}
}

func TestPerFolder_CapIsAllOrNothingAcrossTargets(t *testing.T) {
	// spec.md §8: "6 MB + 6 MB in same invocation -> both skipped". Neither
	// file alone exceeds the 10MB cap, but their combined total does, so
	// the whole invocation must be skipped rather than backing up the
	// first and skipping only the second.
	workspace := t.TempDir()
	sixMB := make([]byte, 6*1024*1024)
	targetA := filepath.Join(workspace, "a.bin")
	targetB := filepath.Join(workspace, "b.bin")
	if err := os.WriteFile(targetA, sixMB, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(targetB, sixMB, 0o600); err != nil {
		t.Fatal(err)
	}

	session := NewPerFolderSession("2026-01-01_00-00-00", 1)
	targets := []SizeTarget{
		{Path: targetA, IsDir: false},
		{Path: targetB, IsDir: false},
	}
	if err := session.PrepareCap(targets); err != nil {
		t.Fatalf("PrepareCap: %v", err)
	}

	outcomeA, err := session.PerFolder(workspace, targetA, false)
	if err != nil {
		t.Fatalf("PerFolder(a): %v", err)
	}
	if !outcomeA.Skipped {
		t.Fatalf("expected first target to be skipped once the invocation total exceeds the cap, got %+v", outcomeA)
	}

	outcomeB, err := session.PerFolder(workspace, targetB, false)
	if err != nil {
		t.Fatalf("PerFolder(b): %v", err)
	}
	if !outcomeB.Skipped {
		t.Fatalf("expected second target to be skipped, got %+v", outcomeB)
	}

	if _, err := os.Stat(filepath.Join(workspace, ".claude-backups")); !os.IsNotExist(err) {
		t.Errorf("expected no backups to be written when the invocation total exceeds the cap")
	}
}

func TestPerFolder_BacksUpFileAndMaintainsGitignore(t *testing.T) {
	workspace := t.TempDir()
	target := filepath.Join(workspace, "sub", "a.txt")
	writeFile(t, target, "hi")

	session := NewPerFolderSession("2026-01-01_00-00-00", 42)
	if err := session.PrepareCap([]SizeTarget{{Path: target, IsDir: false}}); err != nil {
		t.Fatalf("PrepareCap: %v", err)
	}
	outcome, err := session.PerFolder(workspace, target, false)
	if err != nil {
		t.Fatalf("PerFolder: %v", err)
	}
	if !outcome.Backed {
		t.Fatalf("expected Backed, got %+v", outcome)
	}

	backedUp := filepath.Join(workspace, ".claude-backups", "2026-01-01_00-00-00_42", "sub", "a.txt")
	if _, err := os.Stat(backedUp); err != nil {
		t.Errorf("expected backup at %s: %v", backedUp, err)
	}

	gitignore, err := os.ReadFile(filepath.Join(workspace, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if !contains(string(gitignore), ".claude-backups/") {
		t.Errorf(".gitignore missing .claude-backups/ line: %q", gitignore)
	}
}

func TestPerFolder_GitignoreIdempotent(t *testing.T) {
	workspace := t.TempDir()
	if err := ensureGitignoreEntry(workspace); err != nil {
		t.Fatal(err)
	}
	if err := ensureGitignoreEntry(workspace); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(workspace, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if count := countOccurrences(string(data), ".claude-backups/"); count != 1 {
		t.Errorf("expected exactly one .claude-backups/ line, got %d in %q", count, data)
	}
}

func contains(haystack, needle string) bool {
	return countOccurrences(haystack, needle) > 0
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
		}
	}
	return count
}
