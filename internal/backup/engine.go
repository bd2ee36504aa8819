// Package backup implements spec.md §4.3's two backup storage layouts:
// centralized (a shared files/ directory plus an append-only
// manifest.jsonl) and per-folder (a timestamped directory inside the zone
// itself). Both are invoked once per Target classified workspace or
// whitelist.
package backup

import (
	"fmt"
	"os"
	"time"

	"github.com/frier-sam/claude-code-protect/internal/config"
)

// Engine dispatches a single Target to the configured backup mode, applying
// the shared skip rules first.
type Engine struct {
	cfg       config.Config
	perFolder *PerFolderSession
}

// New builds an Engine for a single invocation. pid is the current
// process id, used to key the per-folder session directory.
func New(cfg config.Config, pid int) *Engine {
	return &Engine{
		cfg:       cfg,
		perFolder: NewPerFolderSession(time.Now().Format("2006-01-02_15-04-05"), pid),
	}
}

// PrepareTargets runs the invocation-wide pre-flight checks that must see
// every target before any single one is backed up. In per-folder mode this
// sums all targets' sizes and decides the all-or-nothing 10MB cap (spec.md
// §4.3/§8); in centralized mode there is nothing to pre-compute, so it is a
// no-op.
func (e *Engine) PrepareTargets(targets []SizeTarget) error {
	if e.cfg.BackupMode != config.ModePerFolder {
		return nil
	}
	return e.perFolder.PrepareCap(targets)
}

// BackUp performs (or skips) the backup for one target. zoneRoot is the
// workspace root or matching whitelist entry, as returned by
// zone.ClassifyWithRoot. command is the original shell command, recorded
// in centralized-mode manifest entries for forensic context.
func (e *Engine) BackUp(targetPath string, isDir bool, zoneRoot, command string) (Outcome, error) {
	if isSkipped(targetPath) {
		return Outcome{Skipped: true, Reason: "skipped: path matches a build/vcs artifact directory"}, nil
	}
	if _, err := os.Lstat(targetPath); err != nil {
		if os.IsNotExist(err) {
			return Outcome{Skipped: true, Reason: "skipped: target does not exist"}, nil
		}
		return Outcome{}, fmt.Errorf("stat target: %w", err)
	}

	switch e.cfg.BackupMode {
	case config.ModePerFolder:
		return e.perFolder.PerFolder(zoneRoot, targetPath, isDir)
	default:
		return Centralized(e.cfg.BackupRoot, targetPath, isDir, zoneRoot, command)
	}
}
