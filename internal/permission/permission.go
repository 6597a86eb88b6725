// Package permission implements the per-user allow/deny rule set that gates
// which commands a recli session may dispatch: an ordered list of per-word
// glob patterns, each optionally negated with '!', first match wins, with an
// absent or rule-less file meaning "allow everything" and a file whose sole
// rule is exactly "!*" meaning "this user may do nothing — end the session
// immediately" (both behaviors grounded on the original
// permission_enforce()/permission_parse_file() semantics).
package permission

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gobwas/glob"
)

// Rule is one compiled line of a permission file: a fixed-length sequence of
// per-word globs. A rule matches an argv when each of the rule's own words
// matches the argv word at the same position; argv words beyond the rule's
// own length are never examined, so a short rule gates an entire subtree of
// longer commands (a bare "reboot" rule governs "reboot", "reboot now",
// "reboot -f now", ...) exactly as permission_enforce's
// "for (i = 0; i < this->argc; i++)" loop does, which never walks further
// than the rule's own word count.
type Rule struct {
	Pattern string
	Deny    bool
	words   []glob.Glob
}

// Set is an ordered rule list plus the derived ExitImmediately sentinel.
type Set struct {
	Rules           []Rule
	ExitImmediately bool
}

// Allowed reports whether argv (the tokenized command about to be
// dispatched) is permitted: the first rule whose word sequence matches
// argv's leading words decides the outcome; if none match, the command is
// allowed. An empty rule set always allows (absent/empty permission files
// mean "allow all").
func (s *Set) Allowed(argv []string) bool {
	for _, r := range s.Rules {
		if r.matches(argv) {
			return !r.Deny
		}
	}
	return true
}

// matches compares r's own words against argv's leading words only: a rule
// shorter than argv matches regardless of what argv says once the rule runs
// out, and argv shorter than the rule also counts as a match, mirroring
// permission_enforce's break out of its comparison loop once argv is
// exhausted, which leaves its running match verdict at true.
func (r *Rule) matches(argv []string) bool {
	for i, w := range r.words {
		if i >= len(argv) {
			break
		}
		if !w.Match(argv[i]) {
			return false
		}
	}
	return true
}

// ParseFile reads an ordered permission rule list. Blank lines and lines
// whose first non-space character is ';' or '#' are ignored. A line
// beginning with '!' is a deny rule for the words following it; anything
// else is an allow rule. Each rule is split into words exactly like argv,
// and each word is compiled as its own glob, so "*" (or any other wildcard)
// matches only within that word's position, never across word boundaries.
func ParseFile(r io.Reader) (*Set, error) {
	set := &Set{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		deny := false
		if strings.HasPrefix(line, "!") {
			deny = true
			line = strings.TrimSpace(line[1:])
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			return nil, fmt.Errorf("permission: line %d: empty pattern", lineNo)
		}
		compiled := make([]glob.Glob, len(words))
		for i, w := range words {
			g, err := glob.Compile(w)
			if err != nil {
				return nil, fmt.Errorf("permission: line %d: %w", lineNo, err)
			}
			compiled[i] = g
		}
		set.Rules = append(set.Rules, Rule{Pattern: strings.Join(words, " "), Deny: deny, words: compiled})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(set.Rules) == 1 && set.Rules[0].Deny && set.Rules[0].Pattern == "*" {
		set.ExitImmediately = true
	}
	return set, nil
}

// LoadFile loads the permission file at path. A missing file is not an
// error: it yields an empty, allow-everything Set, matching
// permission_enforce()'s "!head" behavior in the original source when no
// file was ever loaded for a user.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Set{}, nil
		}
		return nil, err
	}
	defer f.Close()
	return ParseFile(f)
}
