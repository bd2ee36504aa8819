package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const rulesFileName = "claude-code-protect-rules.yaml"

// Rules is an optional, additive overlay loaded from
// <home>/.claude/claude-code-protect-rules.yaml. It lets advanced users
// extend the destructive-verb table without touching the JSON file the
// slash-commands own. ExtraSkipDirs is parsed but not applied anywhere:
// the backup skip set stays the built-in one. A missing or malformed
// overlay yields an empty Rules (built-in defaults apply).
type Rules struct {
	ExtraVerbs    []string `yaml:"extra_verbs"`
	ExtraSkipDirs []string `yaml:"extra_skip_dirs"`
}

// LoadRules reads the optional YAML overlay. It never returns an error to
// the caller: an unreadable or malformed file is equivalent to no overlay,
// matching the same fallback discipline as config.Load and the teacher's
// policy.Load→DefaultPolicy() fallback.
func LoadRules(homeDir string) Rules {
	path := filepath.Join(homeDir, configDirName, rulesFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}
	}

	return rules
}
