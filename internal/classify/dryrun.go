package classify

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// dryRunTimeout bounds the subprocess spawned to expand a find/git-clean
// dry run, per spec.md §4.1.
const dryRunTimeout = 5 * time.Second

// dryRunEnv restricts the subprocess environment to the minimum needed to
// resolve paths and locate the binary, so expansion cannot pick up
// unrelated behavior from the invoking environment.
func dryRunEnv() []string {
	env := []string{"PATH=/usr/bin:/bin:/usr/local/bin"}
	for _, name := range []string{"HOME", "LANG", "TERM"} {
		if v, ok := os.LookupEnv(name); ok {
			env = append(env, name+"="+v)
		}
	}
	return env
}

// isFindDelete reports whether a segment is a `find ... -delete` or
// `find ... -exec rm ...` invocation (spec.md §4.1's Tier 2 table).
func isFindDelete(words []string) bool {
	if len(words) == 0 || words[0] != "find" {
		return false
	}
	for i, w := range words {
		if w == "-delete" {
			return true
		}
		if w == "-exec" && i+1 < len(words) && destructiveVerbs[words[i+1]] {
			return true
		}
	}
	return false
}

// isGitClean reports whether a segment is `git clean` with a force flag
// (spec.md §4.1's Tier 2 table: "git clean -f*").
func isGitClean(words []string) bool {
	if len(words) < 2 || words[0] != "git" || words[1] != "clean" {
		return false
	}
	return hasFlag(words[2:], 'f') || hasLongFlag(words[2:], "force")
}

// expandFindDelete rewrites the find invocation to print instead of delete
// and runs it, returning the paths it would have removed.
func expandFindDelete(ctx context.Context, words []string, cwd string) ([]string, error) {
	rewritten := make([]string, 0, len(words)+1)
	i := 0
	for i < len(words) {
		w := words[i]
		switch {
		case w == "-delete":
			i++
		case w == "-exec":
			// Skip the exec clause up to and including its ; or + terminator.
			i++
			for i < len(words) && words[i] != ";" && words[i] != "+" {
				i++
			}
			if i < len(words) {
				i++
			}
		default:
			rewritten = append(rewritten, w)
			i++
		}
	}
	rewritten = append(rewritten, "-print")
	return runDryRun(ctx, rewritten, cwd, parseFindPrintOutput)
}

// expandGitClean rewrites `git clean -f...` to `git clean -n...` and runs
// it, parsing the "Would remove <path>" lines it prints.
func expandGitClean(ctx context.Context, words []string, cwd string) ([]string, error) {
	rewritten := []string{"git", "clean", "-n"}
	for _, w := range words[2:] {
		if w == "--force" {
			continue
		}
		if len(w) > 1 && w[0] == '-' && w[1] != '-' && strings.IndexByte(w, 'f') >= 0 {
			stripped := strings.Replace(w, "f", "", 1)
			if stripped != "-" {
				rewritten = append(rewritten, stripped)
			}
			continue
		}
		rewritten = append(rewritten, w)
	}
	return runDryRun(ctx, rewritten, cwd, parseGitCleanOutput)
}

func runDryRun(parent context.Context, words []string, cwd string, parse func(string) []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(parent, dryRunTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, words[0], words[1:]...)
	cmd.Dir = cwd
	cmd.Env = dryRunEnv()
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return parse(string(out)), nil
}

func parseFindPrintOutput(out string) []string {
	var paths []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

func parseGitCleanOutput(out string) []string {
	var paths []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	const prefix = "Would remove "
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, prefix) {
			paths = append(paths, strings.TrimSpace(strings.TrimPrefix(line, prefix)))
		}
	}
	return paths
}
