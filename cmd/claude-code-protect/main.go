// Command claude-code-protect is a Claude Code PreToolUse hook for the Bash
// tool. It reads the tool-call envelope on stdin, decides whether the
// command is a deletion, backs up trusted-zone targets, prompts on the
// controlling terminal when a target falls outside every trusted zone, and
// exits 0 to allow or 2 to block.
//
// Grounded on the teacher corpus's cmd/block-destructive-commands/main.go:
// a minimal main() that decodes stdin and calls os.Exit with the decision,
// leaving all policy to internal packages.
package main

import (
	"os"

	"github.com/frier-sam/claude-code-protect/internal/cli"
	"github.com/frier-sam/claude-code-protect/internal/failopen"
)

func main() {
	os.Exit(failopen.Run(cli.Execute))
}
