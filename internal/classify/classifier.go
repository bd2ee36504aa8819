package classify

import (
	"context"

	"github.com/frier-sam/claude-code-protect/internal/pathutil"
)

// Classify decides whether cmd, evaluated from cwd, is a deletion. It
// implements spec.md §4.1's tie-break rule: a Tier 3 obfuscation signal
// anywhere in the raw command text short-circuits the whole command to
// Unresolvable before any segment is individually parsed. Absent that, each
// top-level segment is classified independently and the results are
// merged: any Unresolvable segment makes the whole command Unresolvable,
// any Deletion (with no Unresolvable) makes it Deletion, otherwise
// NotDeletion.
func Classify(ctx context.Context, cmd, cwd, homeDir string) Result {
	if reason, found := checkObfuscation(cmd); found {
		return Result{Kind: Unresolvable, Reason: reason}
	}

	segs, ok := splitSegments(cmd)
	if !ok {
		return Result{Kind: Unresolvable, Reason: "command could not be parsed as shell syntax"}
	}
	if len(segs) == 0 {
		return Result{Kind: NotDeletion}
	}

	var targets []Target
	anyDeletion := false
	for _, seg := range segs {
		res := classifySegment(ctx, seg, cwd, homeDir)
		switch res.Kind {
		case Unresolvable:
			return res
		case Deletion:
			anyDeletion = true
			targets = append(targets, res.Targets...)
		}
	}
	if anyDeletion {
		return Result{Kind: Deletion, Targets: targets}
	}
	return Result{Kind: NotDeletion}
}

func classifySegment(ctx context.Context, seg segment, cwd, homeDir string) Result {
	if !seg.literal {
		return Result{Kind: Unresolvable, Reason: "segment contains an expansion that cannot be statically resolved"}
	}
	words := stripPrefixVerbs(seg.words)
	if len(words) == 0 {
		return Result{Kind: NotDeletion}
	}

	if isFindDelete(words) {
		return classifyDryRun(ctx, words, cwd, homeDir, expandFindDelete)
	}
	if isGitClean(words) {
		return classifyDryRun(ctx, words, cwd, homeDir, expandGitClean)
	}
	if destructiveVerbs[words[0]] {
		return classifyDirectVerb(words, cwd, homeDir)
	}
	return Result{Kind: NotDeletion}
}

func classifyDirectVerb(words []string, cwd, homeDir string) Result {
	args := positionalArgs(words[1:])
	if len(args) == 0 {
		return Result{Kind: NotDeletion}
	}

	var targets []Target
	for _, arg := range args {
		if pathutil.HasGlobChars(arg) {
			return Result{Kind: Unresolvable, Reason: "argument contains a glob pattern that is not statically resolvable: " + arg}
		}
		resolved := pathutil.Expand(arg, cwd, homeDir)
		targets = append(targets, Target{
			Path:  resolved,
			IsDir: pathutil.IsDir(resolved),
			Tier:  TierDirect,
		})
	}
	return Result{Kind: Deletion, Targets: targets}
}

func classifyDryRun(ctx context.Context, words []string, cwd, homeDir string, expand func(context.Context, []string, string) ([]string, error)) Result {
	paths, err := expand(ctx, words, cwd)
	if err != nil {
		return Result{Kind: Unresolvable, Reason: "dry-run expansion failed: " + err.Error()}
	}
	if len(paths) == 0 {
		return Result{Kind: NotDeletion}
	}
	targets := make([]Target, 0, len(paths))
	for _, p := range paths {
		resolved := pathutil.Expand(p, cwd, homeDir)
		targets = append(targets, Target{
			Path:  resolved,
			IsDir: pathutil.IsDir(resolved),
			Tier:  TierDryRun,
		})
	}
	return Result{Kind: Deletion, Targets: targets}
}
