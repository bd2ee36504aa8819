package gate

import "testing"

func TestIsAffirmative(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"  y\n", true},
		{"no\n", false},
	}
	for _, c := range cases {
		if got := isAffirmative(c.in); got != c.want {
			t.Errorf("isAffirmative(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDecision_ExitCode(t *testing.T) {
	if Allow.ExitCode() != 0 {
		t.Errorf("expected Allow to exit 0, got %d", Allow.ExitCode())
	}
	if Block.ExitCode() != 2 {
		t.Errorf("expected Block to exit 2, got %d", Block.ExitCode())
	}
}
