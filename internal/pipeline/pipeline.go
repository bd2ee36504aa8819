// Package pipeline wires the envelope reader, command classifier, zone
// classifier, backup engine, and decision gate into the single linear flow
// spec.md §2 describes. Run is the one entry point; it returns an exit
// code and the stdout diagnostic lines the caller should print, matching
// spec.md §9's "(exit_code, side_effects)" design note instead of calling
// os.Exit or printing internally.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/frier-sam/claude-code-protect/internal/auditlog"
	"github.com/frier-sam/claude-code-protect/internal/backup"
	"github.com/frier-sam/claude-code-protect/internal/classify"
	"github.com/frier-sam/claude-code-protect/internal/config"
	"github.com/frier-sam/claude-code-protect/internal/envelope"
	"github.com/frier-sam/claude-code-protect/internal/gate"
	"github.com/frier-sam/claude-code-protect/internal/zone"
)

// Result is what Run hands back to the caller: an exit code (0 or 2 per
// spec.md §3) and the lines to print to stdout. Nothing here ever panics
// or calls os.Exit — that discipline is internal/failopen's job, one layer
// up.
type Result struct {
	ExitCode int
	Lines    []string
}

// Options carries the invocation's environment so tests can substitute
// fakes without touching globals.
type Options struct {
	Stdin   io.Reader
	HomeDir string
	Cwd     string
	Pid     int
}

// resolvedTarget pairs a classified Target with its zone label and the
// specific zone root it matched (workspace root, or the whitelist entry),
// so the backup engine never has to re-derive which root a target belongs
// to.
type resolvedTarget struct {
	target classify.Target
	zone   zone.Label
	root   string
}

// Run executes one full pipeline pass.
func Run(ctx context.Context, opts Options) Result {
	var lines []string
	emit := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	env, err := envelope.Parse(opts.Stdin)
	if err != nil {
		emit("claude-code-protect: could not parse input, allowing: %v", err)
		return Result{ExitCode: 0, Lines: lines}
	}
	if !env.IsBash() {
		return Result{ExitCode: 0}
	}

	cwd := env.Cwd
	if cwd == "" {
		cwd = opts.Cwd
	}

	cfg := config.Load(opts.HomeDir)
	rules := config.LoadRules(opts.HomeDir)
	classify.AddVerbs(rules.ExtraVerbs)

	result := classify.Classify(ctx, env.Command, cwd, opts.HomeDir)

	logger := auditlog.Open(filepath.Join(cfg.BackupRoot, "decisions.jsonl"))
	event := auditlog.DecisionEvent{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Command:        env.Command,
		Cwd:            cwd,
		Classification: classificationLabel(result.Kind),
	}

	if result.Kind == classify.NotDeletion {
		event.Decision = "allow"
		logEvent(logger, event)
		return Result{ExitCode: 0, Lines: lines}
	}

	workspaceRoot := zone.WorkspaceRoot(cwd)
	resolved := make([]resolvedTarget, 0, len(result.Targets))
	for _, target := range result.Targets {
		label, root := zone.ClassifyWithRoot(target.Path, workspaceRoot, cfg.WhitelistedFolders)
		resolved = append(resolved, resolvedTarget{target: target, zone: label, root: root})
	}

	zones := make([]gate.TargetZone, len(resolved))
	for i, r := range resolved {
		zones[i] = gate.TargetZone{Target: r.target, Zone: r.zone}
	}

	if gate.NeedsPrompt(result, zones) {
		outside := gate.OutsideTargets(zones)
		approved := gate.Ask(ctx, gate.Prompt{
			Command:        env.Command,
			Classification: classificationLabel(result.Kind),
			OutsideTargets: outside,
			Reason:         result.Reason,
		})
		if !approved {
			event.Decision = "block"
			event.OutsideTargets = outside
			logEvent(logger, event)
			emit("claude-code-protect: blocked (%s)", classificationLabel(result.Kind))
			return Result{ExitCode: 2, Lines: lines}
		}
		event.Decision = "allow_after_prompt"
	} else {
		event.Decision = "allow"
	}

	backedUp := backupResolved(resolved, cfg, opts.Pid, env.Command, emit)
	event.Backups = backedUp
	logEvent(logger, event)

	return Result{ExitCode: 0, Lines: lines}
}

func backupResolved(resolved []resolvedTarget, cfg config.Config, pid int, command string, emit func(string, ...interface{})) int {
	engine := backup.New(cfg, pid)

	var candidates []resolvedTarget
	sizeTargets := make([]backup.SizeTarget, 0, len(resolved))
	for _, r := range resolved {
		if r.zone != zone.Workspace && r.zone != zone.Whitelist {
			continue
		}
		candidates = append(candidates, r)
		sizeTargets = append(sizeTargets, backup.SizeTarget{Path: r.target.Path, IsDir: r.target.IsDir})
	}

	// Per-folder mode's 10MB cap is all-or-nothing for the whole invocation
	// (spec.md §4.3/§8), so every candidate's size must be known before the
	// first one is copied.
	if err := engine.PrepareTargets(sizeTargets); err != nil {
		emit("claude-code-protect: could not compute backup size: %v", err)
	}

	backed := 0
	for _, r := range candidates {
		outcome, err := engine.BackUp(r.target.Path, r.target.IsDir, r.root, command)
		if err != nil {
			emit("claude-code-protect: backup failed for %s: %v", r.target.Path, err)
			continue
		}
		if outcome.Skipped {
			emit("claude-code-protect: %s (%s)", outcome.Reason, r.target.Path)
			continue
		}
		if outcome.Warning != "" {
			emit("claude-code-protect: %s", outcome.Warning)
		}
		backed++
	}

	// The centralized files/ directory's 500MB warning is a once-per-
	// invocation diagnostic (spec.md §4.3), not a per-target one, so it is
	// checked once here after every target has been backed up.
	if cfg.BackupMode != config.ModePerFolder && backed > 0 {
		if warning, err := backup.FilesDirWarning(cfg.BackupRoot); err == nil && warning != "" {
			emit("claude-code-protect: %s", warning)
		}
	}

	return backed
}

func classificationLabel(k classify.Kind) string {
	switch k {
	case classify.Deletion:
		return "deletion"
	case classify.Unresolvable:
		return "unresolvable"
	default:
		return "not_deletion"
	}
}

func logEvent(l *auditlog.Logger, event auditlog.DecisionEvent) {
	_ = l.Log(event)
}
