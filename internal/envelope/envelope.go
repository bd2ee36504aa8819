// Package envelope parses the stdin JSON payload the host agent sends
// before every shell command.
package envelope

import (
	"encoding/json"
	"fmt"
	"io"
)

// Envelope is the immutable per-invocation record described in spec.md §3.
// It is never mutated once constructed.
type Envelope struct {
	ToolName string
	Command  string
	Cwd      string
}

type wireEnvelope struct {
	ToolName  string `json:"tool_name"`
	ToolInput struct {
		Command string `json:"command"`
	} `json:"tool_input"`
	Cwd string `json:"cwd"`
}

// Parse reads and decodes the stdin envelope. A malformed payload is
// reported as an error; callers must treat that as fail-open (exit 0),
// never as a reason to block.
func Parse(r io.Reader) (Envelope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Envelope{}, fmt.Errorf("read stdin: %w", err)
	}

	var wire wireEnvelope
	if err := json.Unmarshal(data, &wire); err != nil {
		return Envelope{}, fmt.Errorf("parse envelope: %w", err)
	}

	return Envelope{
		ToolName: wire.ToolName,
		Command:  wire.ToolInput.Command,
		Cwd:      wire.Cwd,
	}, nil
}

// IsBash reports whether this envelope names the Bash tool. Only Bash
// invocations are analysed; every other tool_name passes through silently.
func (e Envelope) IsBash() bool {
	return e.ToolName == "Bash"
}
