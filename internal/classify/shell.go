package classify

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// segment is one top-level pipeline stage, split on ; && || | at the
// statement level (spec.md §4.1: "each segment joined by &&, ||, ;, or | is
// analyzed independently").
type segment struct {
	// words are the dequoted literal words of the call, in order.
	words []string
	// literal is false when any word contained a substitution the parser
	// could not resolve to a plain string ($(...), `...`, $VAR, arithmetic).
	// Callers treat a non-literal segment as Tier 3 material.
	literal bool
}

// splitSegments parses cmd with the Bash dialect and returns one segment per
// top-level simple command. Parse failures return ok=false; callers treat
// an unparsable command as Unresolvable.
func splitSegments(cmd string) (segs []segment, ok bool) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(cmd), "")
	if err != nil {
		return nil, false
	}
	for _, stmt := range file.Stmts {
		collectSegments(stmt, &segs)
	}
	return segs, true
}

func collectSegments(stmt *syntax.Stmt, out *[]segment) {
	switch cmd := stmt.Cmd.(type) {
	case *syntax.CallExpr:
		*out = append(*out, segmentFromCall(cmd))
	case *syntax.BinaryCmd:
		// &&, ||, | all chain independently analyzable commands.
		collectSegments(cmd.X, out)
		collectSegments(cmd.Y, out)
	case *syntax.Subshell:
		for _, s := range cmd.Stmts {
			collectSegments(s, out)
		}
	case *syntax.Block:
		for _, s := range cmd.Stmts {
			collectSegments(s, out)
		}
	default:
		// For, if, case, function defs and similar are not a direct
		// deletion call shape; record a non-literal placeholder so
		// classifySegment reports the whole command as Unresolvable.
		*out = append(*out, segment{literal: false})
	}
}

func segmentFromCall(call *syntax.CallExpr) segment {
	seg := segment{literal: true}
	for _, w := range call.Args {
		lit, ok := wordLiteral(w)
		if !ok {
			seg.literal = false
			continue
		}
		seg.words = append(seg.words, lit)
	}
	return seg
}

// wordLiteral dequotes a syntax.Word to a plain string when every part is a
// literal, single-quoted, or double-quoted-literal segment. Any parameter
// expansion, command substitution, or arithmetic expansion makes the word
// unresolvable: spec.md §4.1 requires treating such commands conservatively
// rather than attempting shell expansion.
func wordLiteral(w *syntax.Word) (string, bool) {
	var b strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			b.WriteString(p.Value)
		case *syntax.SglQuoted:
			b.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, dp := range p.Parts {
				lit, ok := dp.(*syntax.Lit)
				if !ok {
					return "", false
				}
				b.WriteString(lit.Value)
			}
		default:
			return "", false
		}
	}
	return b.String(), true
}

// stripPrefixVerbs pops leading wrapper commands (sudo, time, nice, env) and
// any flags/assignments that precede the real verb, per spec.md §4.1's
// pre-normalization step.
func stripPrefixVerbs(words []string) []string {
	for len(words) > 0 && prefixVerbs[words[0]] {
		words = words[1:]
		for len(words) > 0 && (strings.HasPrefix(words[0], "-") || strings.Contains(words[0], "=")) {
			words = words[1:]
		}
	}
	return words
}

// isFlag reports whether a word looks like a short or long option rather
// than a positional argument. spec.md does not enumerate a per-verb flag
// table, so this uses the generic POSIX/GNU shape.
func isFlag(word string) bool {
	if word == "--" {
		return true
	}
	if strings.HasPrefix(word, "--") && len(word) > 2 {
		return true
	}
	if strings.HasPrefix(word, "-") && len(word) > 1 {
		return true
	}
	return false
}

// positionalArgs returns the non-flag words following a verb, stopping flag
// recognition after a bare "--" terminator (all remaining words are
// positional from that point on).
func positionalArgs(words []string) []string {
	var args []string
	terminated := false
	for _, w := range words {
		if !terminated && w == "--" {
			terminated = true
			continue
		}
		if !terminated && isFlag(w) {
			continue
		}
		args = append(args, w)
	}
	return args
}

// hasFlag reports whether any word in a flag cluster carries the given
// short letter, e.g. hasFlag(words, 'f') matches "-rf" and "-fr" and "-f".
func hasFlag(words []string, letter byte) bool {
	for _, w := range words {
		if len(w) < 2 || w[0] != '-' || w[1] == '-' {
			continue
		}
		if strings.IndexByte(w[1:], letter) >= 0 {
			return true
		}
	}
	return false
}

// hasLongFlag reports whether any word equals a given long option exactly,
// or a --name=value form with that name.
func hasLongFlag(words []string, name string) bool {
	prefix := "--" + name
	for _, w := range words {
		if w == prefix || strings.HasPrefix(w, prefix+"=") {
			return true
		}
	}
	return false
}
