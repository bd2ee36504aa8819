// Package config loads the mandatory JSON configuration file and the
// optional YAML rules overlay. The core treats both as read-only: the
// slash-command handlers that mutate claude-code-protect.json are outside
// this module's scope (spec.md §1).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName    = ".claude"
	configFileName   = "claude-code-protect.json"
	defaultBackupDir = "claude-code-protect-backups"
)

// BackupMode selects the backup engine's storage layout.
type BackupMode string

const (
	ModeCentralized BackupMode = "centralized"
	ModePerFolder   BackupMode = "per-folder"
)

// Config is the mapping described in spec.md §3. A missing file is
// equivalent to all defaults; unknown JSON keys are ignored.
type Config struct {
	BackupMode         BackupMode
	BackupRoot         string
	WhitelistedFolders []string

	// Path is the file this config was loaded from (for diagnostics).
	Path string
}

type wireConfig struct {
	BackupMode         string   `json:"backup_mode"`
	BackupRoot         string   `json:"backup_root"`
	WhitelistedFolders []string `json:"whitelisted_folders"`
}

// Load reads <home>/.claude/claude-code-protect.json. A missing or
// malformed file produces defaults (ConfigUnreadable/ConfigMalformed in
// spec.md §7 are non-fatal; Load writes a one-line diagnostic to stderr
// for an unreadable or malformed file, and nothing for a missing one).
func Load(homeDir string) Config {
	cfg := defaults(homeDir)
	cfg.Path = filepath.Join(homeDir, configDirName, configFileName)

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "claude-code-protect: warning: could not read %s, using defaults: %v\n", cfg.Path, err)
		}
		return cfg
	}

	var wire wireConfig
	if err := json.Unmarshal(data, &wire); err != nil {
		fmt.Fprintf(os.Stderr, "claude-code-protect: warning: could not parse %s, using defaults: %v\n", cfg.Path, err)
		return cfg
	}

	switch BackupMode(wire.BackupMode) {
	case ModePerFolder:
		cfg.BackupMode = ModePerFolder
	case ModeCentralized:
		cfg.BackupMode = ModeCentralized
	}
	if wire.BackupRoot != "" {
		cfg.BackupRoot = wire.BackupRoot
	}
	if wire.WhitelistedFolders != nil {
		cfg.WhitelistedFolders = canonicalizeAll(wire.WhitelistedFolders)
	}

	return cfg
}

func defaults(homeDir string) Config {
	return Config{
		BackupMode: ModeCentralized,
		BackupRoot: filepath.Join(homeDir, configDirName, defaultBackupDir),
	}
}

func canonicalizeAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			out = append(out, resolved)
		} else {
			out = append(out, filepath.Clean(p))
		}
	}
	return out
}
