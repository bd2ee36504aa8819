package classify

import "strings"

// checkObfuscation implements Tier 3 of spec.md §4.1: it inspects the raw,
// unparsed command text for indirection that can hide a deletion from
// static analysis. It runs before segment-level Tier 1/2 analysis and, on a
// match, short-circuits the whole command to Unresolvable rather than
// trying to reason about what the indirection resolves to.
func checkObfuscation(cmd string) (reason string, found bool) {
	if reason, ok := scanSmuggling(cmd); ok {
		return reason, true
	}
	for _, pat := range obfuscationPatterns {
		if pat.MatchString(cmd) {
			return "command contains shell substitution or eval that cannot be statically resolved", true
		}
	}
	if base64ToShellPattern.MatchString(cmd) {
		return "command pipes decoded base64 into a shell interpreter", true
	}
	if m := inlineInterpreterPattern.FindStringSubmatch(cmd); m != nil {
		if containsAny(cmd, deletionIdentifiers) {
			return "command passes an inline script with a deletion call to an interpreter", true
		}
	}
	return "", false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
