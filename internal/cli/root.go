// Package cli is the cobra command surface: the root command is the hook
// entrypoint spec.md §1 describes (stdin envelope in, exit code out), and
// the manifest subcommand is a read-only inspector over the centralized
// backup manifest. Grounded on the teacher's internal/cli/root.go for the
// command-tree shape and internal/cli/status.go for the read-only
// reporting style.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/frier-sam/claude-code-protect/internal/pipeline"
	"github.com/spf13/cobra"
)

var dryRun bool

// exitCode is set by runHook since cobra's RunE signature has no room for
// one; Execute reads it immediately after rootCmd.Execute() returns.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "claude-code-protect",
	Short: "A PreToolUse hook that backs up files before an agent deletes them",
	Long: `claude-code-protect reads a shell-command envelope on stdin, decides
whether the command is a deletion, and either allows it (after backing up
trusted-zone targets), prompts on the controlling terminal, or blocks it.

It is meant to be wired up as a Claude Code PreToolUse hook for the Bash
tool; it never consumes stdin/stdout for anything except that hook
contract.`,
	RunE: runHook,
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify the command and print the decision without backing up or prompting")
}

// Execute runs the command tree and returns the process exit code. It
// never calls os.Exit itself so callers (and internal/failopen) stay in
// control of the process lifecycle.
func Execute() int {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode
	}
	return exitCode
}

func runHook(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "claude-code-protect: warning: could not resolve home directory, allowing")
		exitCode = 0
		return nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	if dryRun {
		return runDryRun(homeDir, cwd)
	}

	result := pipeline.Run(context.Background(), pipeline.Options{
		Stdin:   os.Stdin,
		HomeDir: homeDir,
		Cwd:     cwd,
		Pid:     os.Getpid(),
	})
	for _, line := range result.Lines {
		fmt.Println(line)
	}
	exitCode = result.ExitCode
	return nil
}
