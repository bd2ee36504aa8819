package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/frier-sam/claude-code-protect/internal/classify"
	"github.com/frier-sam/claude-code-protect/internal/config"
	"github.com/frier-sam/claude-code-protect/internal/envelope"
	"github.com/frier-sam/claude-code-protect/internal/gate"
	"github.com/frier-sam/claude-code-protect/internal/zone"
)

// runDryRun classifies the envelope and prints the decision that would be
// made, performing no backup and no terminal prompt (SPEC_FULL.md's
// supplemented --dry-run flag, grounded on the teacher's internal/cli/run.go
// "evaluate without enforcing" mode).
func runDryRun(homeDir, cwd string) error {
	env, err := envelope.Parse(os.Stdin)
	if err != nil {
		fmt.Printf("claude-code-protect: could not parse input: %v\n", err)
		exitCode = 0
		return nil
	}
	if !env.IsBash() {
		fmt.Println("claude-code-protect: not a Bash tool call, nothing to classify")
		exitCode = 0
		return nil
	}

	if env.Cwd != "" {
		cwd = env.Cwd
	}

	cfg := config.Load(homeDir)
	rules := config.LoadRules(homeDir)
	classify.AddVerbs(rules.ExtraVerbs)

	result := classify.Classify(context.Background(), env.Command, cwd, homeDir)
	fmt.Printf("command:        %s\n", env.Command)
	fmt.Printf("classification: %s\n", dryRunLabel(result.Kind))
	if result.Reason != "" {
		fmt.Printf("reason:         %s\n", result.Reason)
	}

	var zones []gate.TargetZone
	if len(result.Targets) > 0 {
		workspaceRoot := zone.WorkspaceRoot(cwd)
		fmt.Println("targets:")
		for _, target := range result.Targets {
			label := zone.Classify(target.Path, workspaceRoot, cfg.WhitelistedFolders)
			zones = append(zones, gate.TargetZone{Target: target, Zone: label})
			fmt.Printf("  - %s [%s, tier=%s]\n", target.Path, label, target.Tier)
		}
	}

	decision := "allow"
	if gate.NeedsPrompt(result, zones) {
		decision = "prompt (blocked unless confirmed on the terminal)"
	}
	fmt.Printf("decision:       %s\n", decision)

	exitCode = 0
	return nil
}

func dryRunLabel(k classify.Kind) string {
	switch k {
	case classify.Deletion:
		return "deletion"
	case classify.Unresolvable:
		return "unresolvable"
	default:
		return "not_deletion"
	}
}
