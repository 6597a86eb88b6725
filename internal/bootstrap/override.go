package bootstrap

import (
	"os"
	"strings"

	"github.com/go-recli/recli/internal/grammar"
	"github.com/go-recli/recli/internal/permission"
)

// OverrideHelp replaces the already-loaded help bodies with those parsed
// from path, supporting "-H FILE" testing runs that want a throwaway help
// file instead of D/help.md.
func (r *Result) OverrideHelp(path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	parseHelpMarkdown(r.Config, string(text))
	return nil
}

// OverrideGrammar replaces the loaded grammar with the one parsed from
// path's grammar-source lines, supporting "-s FILE" test runs that want to
// exercise a hand-written grammar without a D/bin/** tree to discover.
func (r *Result) OverrideGrammar(path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	node, err := parseGrammarLines(r.Builder, string(text))
	if err != nil {
		return err
	}
	r.Config.SetSyntax(node, 0)
	r.Engine = r.Builder.Engine
	return nil
}

// OverridePermission replaces the loaded permission set with the one
// parsed from path, supporting "-p FILE" test runs; it returns the set's
// ExitImmediately sentinel so the caller can honor the same "deny
// everything" early exit as startup's own permission load.
func (r *Result) OverridePermission(path string) (bool, error) {
	set, err := permission.LoadFile(path)
	if err != nil {
		return false, err
	}
	r.Permissions = set
	r.Config.SetPermissions(set)
	return set.ExitImmediately, nil
}

// DumpSyntax renders the loaded grammar in the same concrete syntax
// grammarparser accepts, for the "-X syntax" debug dump.
func DumpSyntax(n *grammar.Node) string {
	return strings.TrimRight(grammar.Print(n), "\n")
}
