package gate

import (
	"github.com/frier-sam/claude-code-protect/internal/classify"
	"github.com/frier-sam/claude-code-protect/internal/zone"
)

// Decision is the gate's final verdict for one invocation.
type Decision int

const (
	Allow Decision = iota
	Block
)

// ExitCode maps a Decision to the process exit code spec.md §3 mandates:
// 0 for allow, 2 for block.
func (d Decision) ExitCode() int {
	if d == Block {
		return 2
	}
	return 0
}

// TargetZone pairs a resolved target with its zone label, the gate's
// per-target working unit.
type TargetZone struct {
	Target classify.Target
	Zone   zone.Label
}

// NeedsPrompt reports whether the classification result requires the
// interactive confirmation protocol, per spec.md §4.4's table: any
// Unresolvable command, or a Deletion with at least one Outside target.
func NeedsPrompt(result classify.Result, zones []TargetZone) bool {
	if result.Kind == classify.Unresolvable {
		return true
	}
	if result.Kind != classify.Deletion {
		return false
	}
	for _, tz := range zones {
		if tz.Zone == zone.Outside {
			return true
		}
	}
	return false
}

// OutsideTargets filters zones down to the Outside-labeled target paths,
// for display in the confirmation prompt.
func OutsideTargets(zones []TargetZone) []string {
	var paths []string
	for _, tz := range zones {
		if tz.Zone == zone.Outside {
			paths = append(paths, tz.Target.Path)
		}
	}
	return paths
}

// BackupTargets filters zones down to the workspace/whitelist targets the
// backup engine must process (spec.md §4.4: "back up the non-tmp ones").
func BackupTargets(zones []TargetZone) []TargetZone {
	var out []TargetZone
	for _, tz := range zones {
		if tz.Zone == zone.Workspace || tz.Zone == zone.Whitelist {
			out = append(out, tz)
		}
	}
	return out
}
