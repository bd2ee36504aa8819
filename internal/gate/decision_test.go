package gate

import (
	"testing"

	"github.com/frier-sam/claude-code-protect/internal/classify"
	"github.com/frier-sam/claude-code-protect/internal/zone"
)

func TestNeedsPrompt_NotDeletionNeverPrompts(t *testing.T) {
	if NeedsPrompt(classify.Result{Kind: classify.NotDeletion}, nil) {
		t.Error("expected NotDeletion to never require a prompt")
	}
}

func TestNeedsPrompt_UnresolvableAlwaysPrompts(t *testing.T) {
	if !NeedsPrompt(classify.Result{Kind: classify.Unresolvable}, nil) {
		t.Error("expected Unresolvable to always require a prompt")
	}
}

func TestNeedsPrompt_DeletionInsideTrustedZonesSkipsPrompt(t *testing.T) {
	zones := []TargetZone{
		{Target: classify.Target{Path: "/ws/a"}, Zone: zone.Workspace},
		{Target: classify.Target{Path: "/tmp/b"}, Zone: zone.Tmp},
	}
	if NeedsPrompt(classify.Result{Kind: classify.Deletion}, zones) {
		t.Error("expected all-trusted-zone deletion to skip the prompt")
	}
}

func TestNeedsPrompt_DeletionWithOutsideTargetPrompts(t *testing.T) {
	zones := []TargetZone{
		{Target: classify.Target{Path: "/ws/a"}, Zone: zone.Workspace},
		{Target: classify.Target{Path: "/data/b"}, Zone: zone.Outside},
	}
	if !NeedsPrompt(classify.Result{Kind: classify.Deletion}, zones) {
		t.Error("expected an outside target to require a prompt")
	}
}

func TestBackupTargets_ExcludesTmpAndOutside(t *testing.T) {
	zones := []TargetZone{
		{Target: classify.Target{Path: "/ws/a"}, Zone: zone.Workspace},
		{Target: classify.Target{Path: "/wl/b"}, Zone: zone.Whitelist},
		{Target: classify.Target{Path: "/tmp/c"}, Zone: zone.Tmp},
		{Target: classify.Target{Path: "/data/d"}, Zone: zone.Outside},
	}
	got := BackupTargets(zones)
	if len(got) != 2 {
		t.Fatalf("expected 2 backup targets, got %d: %+v", len(got), got)
	}
}

func TestOutsideTargets(t *testing.T) {
	zones := []TargetZone{
		{Target: classify.Target{Path: "/ws/a"}, Zone: zone.Workspace},
		{Target: classify.Target{Path: "/data/d"}, Zone: zone.Outside},
	}
	got := OutsideTargets(zones)
	if len(got) != 1 || got[0] != "/data/d" {
		t.Errorf("unexpected outside targets: %v", got)
	}
}
