package backup

import (
	"path/filepath"
	"strings"
)

// skipDirs is the skip set from spec.md §4.3. A target whose path contains
// any of these as a whole segment is skipped for backup purposes; the
// deletion itself still proceeds since the zone is already trusted.
var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "venv": true, ".venv": true,
	"dist": true, "build": true, "__pycache__": true, ".next": true,
	".nuxt": true, "out": true, "target": true, ".cache": true,
	".pytest_cache": true, ".mypy_cache": true, ".tox": true,
	"coverage": true, ".idea": true, ".vscode": true,
}

// isSkipped reports whether path has a skip-set name as one of its path
// segments.
func isSkipped(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if skipDirs[seg] {
			return true
		}
	}
	return false
}
