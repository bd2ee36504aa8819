// Package zone labels a canonicalized path as workspace, whitelist, tmp, or
// outside, per spec.md §4.2. Classification is purely lexical: symlinks
// must already be resolved by the caller (internal/pathutil.Expand does
// this) so indirection can never be used as an escape vector.
package zone

import (
	"os"
	"path/filepath"

	"github.com/frier-sam/claude-code-protect/internal/pathutil"
)

// Label is one of the four zones a path can be classified into.
type Label string

const (
	Workspace Label = "workspace"
	Whitelist Label = "whitelist"
	Tmp       Label = "tmp"
	Outside   Label = "outside"
)

// tmpRoots lists the well-known temp directories. The platform temp dir
// (os.TempDir()) is added at classification time since it can vary by
// environment (TMPDIR, etc.).
var tmpRoots = []string{"/tmp", "/var/tmp", "/private/tmp"}

// Classify labels a single canonicalized path. whitelistRoots must already
// be canonicalized (config.Load / canonicalizeAll does this at load time).
// workspaceRoot is CLAUDE_PROJECT_DIR, falling back to cwd.
func Classify(path, workspaceRoot string, whitelistRoots []string) Label {
	label, _ := ClassifyWithRoot(path, workspaceRoot, whitelistRoots)
	return label
}

// ClassifyWithRoot is Classify plus the specific zone root the path matched
// (the workspace root, the matching whitelist entry, or the matching tmp
// root). The backup engine needs this root to compute per-folder-mode
// relative paths and to locate the zone's .gitignore. Root is "" for
// Outside.
func ClassifyWithRoot(path, workspaceRoot string, whitelistRoots []string) (Label, string) {
	if underRoot(path, workspaceRoot) {
		return Workspace, workspaceRoot
	}
	for _, root := range whitelistRoots {
		if underRoot(path, root) {
			return Whitelist, root
		}
	}
	roots := append(append([]string{}, tmpRoots...), os.TempDir())
	for _, root := range roots {
		if root == "" {
			continue
		}
		if underRoot(path, root) {
			return Tmp, root
		}
	}
	return Outside, ""
}

// underRoot reports whether path equals root or is a descendant of it.
// Both the boundary path itself and its children count as "inside"
// (spec.md §8: "a target on the exact boundary ... is classified as
// inside that zone").
func underRoot(path, root string) bool {
	if root == "" {
		return false
	}
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if path == root {
		return true
	}
	return len(path) > len(root) && path[:len(root)] == root && path[len(root)] == filepath.Separator
}

// WorkspaceRoot resolves CLAUDE_PROJECT_DIR, falling back to cwd when
// unset, per spec.md §4.2.
func WorkspaceRoot(cwd string) string {
	dir := os.Getenv("CLAUDE_PROJECT_DIR")
	if dir == "" {
		dir = cwd
	}
	return pathutil.ResolveSymlinks(dir)
}
