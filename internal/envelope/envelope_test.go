package envelope

import (
	"strings"
	"testing"
)

func TestParse_ClaudeCodeShape(t *testing.T) {
	in := `{"tool_name":"Bash","tool_input":{"command":"rm a.txt"},"cwd":"/w"}`
	env, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.IsBash() {
		t.Fatalf("expected IsBash true")
	}
	if env.Command != "rm a.txt" || env.Cwd != "/w" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestParse_NonBashToolPassesThrough(t *testing.T) {
	in := `{"tool_name":"Read","tool_input":{"file_path":"x"},"cwd":"/w"}`
	env, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.IsBash() {
		t.Fatalf("expected IsBash false for Read tool")
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse(strings.NewReader("not json"))
	if err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestParse_EmptyBody(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	if err == nil {
		t.Fatalf("expected error for empty body")
	}
}
