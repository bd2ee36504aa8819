package classify

import "regexp"

// destructiveVerbs is the Tier 1 verb table from spec.md §4.1. Windows-style
// verbs (del, erase, rd, Remove-Item, ri) are parsed with the same rule as
// rm.
var destructiveVerbs = map[string]bool{
	"rm":          true,
	"rmdir":       true,
	"unlink":      true,
	"shred":       true,
	"trash":       true,
	"trash-put":   true,
	"rimraf":      true,
	"del":         true,
	"erase":       true,
	"rd":          true,
	"Remove-Item": true,
	"ri":          true,
}

// prefixVerbs are stripped to reveal the actual command verb (spec.md §4.1
// pre-normalization: "sudo, time, nice, env").
var prefixVerbs = map[string]bool{
	"sudo": true,
	"time": true,
	"nice": true,
	"env":  true,
}

// deletionIdentifiers are the in-band-interpreter markers Tier 3 looks for
// alongside python -c / node -e / perl -e (spec.md §4.1).
var deletionIdentifiers = []string{
	"rmtree", "unlink", "remove", "rmSync", "rmdirSync", "unlinkSync", "fs.rm",
}

// obfuscationPatterns are the raw-string Tier 3 triggers from spec.md §4.1.
var obfuscationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\(`),
	regexp.MustCompile("`"),
	regexp.MustCompile(`(?:^|[;&|]|\s)eval\s`),
}

var base64ToShellPattern = regexp.MustCompile(`base64.*\|\s*(bash|sh|python\d?)\b`)

var inlineInterpreterPattern = regexp.MustCompile(`\b(python\d?|node|perl)\s+-(c|e)\b`)

// AddVerbs extends the destructive verb table from the optional YAML rules
// overlay (config.Rules.ExtraVerbs). Additive only: it can never remove a
// built-in verb.
func AddVerbs(verbs []string) {
	for _, v := range verbs {
		destructiveVerbs[v] = true
	}
}
