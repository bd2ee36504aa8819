// Package pathutil resolves shell tokens into canonical absolute paths the
// way the classifier and zone layers need: cwd-relative joins, tilde
// expansion, and best-effort symlink resolution that tolerates targets that
// don't exist yet (a deletion target usually does exist, but a Tier 2
// dry-run line or a malformed command must never panic on a stat failure).
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves a raw shell token to a canonical absolute path.
// homeDir may be empty if it could not be determined.
func Expand(token, cwd, homeDir string) string {
	path := token

	if homeDir != "" {
		if path == "~" {
			path = homeDir
		} else if strings.HasPrefix(path, "~/") {
			path = filepath.Join(homeDir, path[2:])
		}
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	return ResolveSymlinks(filepath.Clean(path))
}

// ResolveSymlinks canonicalizes path, resolving symlinks in every existing
// ancestor directory. If path (or some suffix of it) does not exist, the
// longest existing ancestor is resolved and the missing suffix is
// re-appended verbatim — this mirrors realpath(3)'s behavior for
// not-yet-existing targets without requiring the full path to exist.
func ResolveSymlinks(path string) string {
	cleaned := filepath.Clean(path)

	if resolved, err := filepath.EvalSymlinks(cleaned); err == nil {
		return resolved
	}

	dir := filepath.Dir(cleaned)
	suffix := filepath.Base(cleaned)
	for {
		if resolvedDir, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolvedDir, suffix)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root without finding an existing ancestor.
			return cleaned
		}
		suffix = filepath.Join(filepath.Base(dir), suffix)
		dir = parent
	}
}

// Exists reports whether path can be lstat'd (does not follow the final
// symlink — existence, not reachability, is what callers need).
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory (following symlinks).
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// HasGlobChars reports whether token contains shell glob metacharacters.
func HasGlobChars(token string) bool {
	return strings.ContainsAny(token, "*?[")
}
