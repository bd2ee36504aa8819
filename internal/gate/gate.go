// Package gate implements spec.md §4.4's decision gate: the zone/classifier
// policy table, and the controlling-terminal prompt protocol for targets
// that fall outside every trusted zone. It is grounded on the teacher's
// internal/approval package but swaps stdin/stdout (reserved for the host
// envelope and diagnostics per spec.md §4.4) for a direct /dev/tty open,
// and replaces unbounded readline with a 30-second deadline that denies on
// both timeout and absence of a controlling terminal.
package gate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// PromptTimeout bounds how long the gate waits for a response on the
// controlling terminal before denying (spec.md §4.4).
const PromptTimeout = 30 * time.Second

// Prompt describes what to show the user before reading their answer.
type Prompt struct {
	Command        string
	Classification string
	OutsideTargets []string
	Reason         string
}

// Ask opens the controlling terminal, writes the prompt, and reads one
// line. It returns true only when the first non-whitespace character of
// the response is 'y' or 'Y'; every other outcome — explicit denial, EOF,
// timeout, or no controlling terminal at all — returns false.
func Ask(ctx context.Context, p Prompt) bool {
	tty, err := openTTY()
	if err != nil {
		return false
	}
	defer tty.Close()

	if !term.IsTerminal(int(tty.Fd())) {
		return false
	}

	writePrompt(tty, p)

	ctx, cancel := context.WithTimeout(ctx, PromptTimeout)
	defer cancel()

	answers := make(chan string, 1)
	go func() {
		reader := bufio.NewReader(tty)
		line, _ := reader.ReadString('\n')
		answers <- line
	}()

	select {
	case line := <-answers:
		return isAffirmative(line)
	case <-ctx.Done():
		return false
	}
}

func writePrompt(tty *os.File, p Prompt) {
	fmt.Fprintln(tty)
	fmt.Fprintln(tty, "claude-code-protect: confirmation required")
	fmt.Fprintf(tty, "command: %s\n", p.Command)
	fmt.Fprintf(tty, "classification: %s\n", p.Classification)
	if p.Reason != "" {
		fmt.Fprintf(tty, "reason: %s\n", p.Reason)
	}
	if len(p.OutsideTargets) > 0 {
		fmt.Fprintln(tty, "targets outside all trusted zones:")
		for _, t := range p.OutsideTargets {
			fmt.Fprintf(tty, "  - %s\n", t)
		}
	}
	fmt.Fprint(tty, "[y/N] ")
}

func isAffirmative(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return trimmed[0] == 'y' || trimmed[0] == 'Y'
}
