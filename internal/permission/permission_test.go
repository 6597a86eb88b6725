package permission

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptySetAllowsAll(t *testing.T) {
	s := &Set{}
	require.True(t, s.Allowed(strings.Fields("delete everything")))
}

func TestFirstMatchWins(t *testing.T) {
	s, err := ParseFile(strings.NewReader("!delete *\nshow *\n"))
	require.NoError(t, err)
	require.False(t, s.Allowed(strings.Fields("delete database")))
	require.True(t, s.Allowed(strings.Fields("show version")))
	require.True(t, s.Allowed(strings.Fields("anything else"))) // no rule matches -> allow
}

func TestCommentsAndBlankLinesIgnored(t *testing.T) {
	s, err := ParseFile(strings.NewReader("# comment\n\n!reboot\n"))
	require.NoError(t, err)
	require.False(t, s.Allowed(strings.Fields("reboot")))
}

func TestSemicolonIsAlsoAComment(t *testing.T) {
	s, err := ParseFile(strings.NewReader("; a semicolon comment\n!reboot\n"))
	require.NoError(t, err)
	require.Len(t, s.Rules, 1)
	require.False(t, s.Allowed(strings.Fields("reboot")))
}

func TestShortRuleGatesLongerCommand(t *testing.T) {
	// A one-word deny rule must bound itself to its own word count and
	// ignore anything argv says afterward, not require an exact whole-line
	// match: "!reboot" followed by an allow-all "*" must still deny
	// "reboot now", not fall through to the allow-all rule.
	s, err := ParseFile(strings.NewReader("!reboot\n*\n"))
	require.NoError(t, err)
	require.False(t, s.Allowed(strings.Fields("reboot")))
	require.False(t, s.Allowed(strings.Fields("reboot now")))
	require.False(t, s.Allowed(strings.Fields("reboot -f now")))
	require.True(t, s.Allowed(strings.Fields("show version")))
}

func TestRuleLongerThanArgvStillMatches(t *testing.T) {
	s, err := ParseFile(strings.NewReader("!reboot now\n"))
	require.NoError(t, err)
	require.False(t, s.Allowed(strings.Fields("reboot")))
}

func TestWildcardOnlyMatchesItsOwnWord(t *testing.T) {
	s, err := ParseFile(strings.NewReader("!delete *\n"))
	require.NoError(t, err)
	require.False(t, s.Allowed(strings.Fields("delete database")))
	require.True(t, s.Allowed(strings.Fields("show delete")))
}

func TestExitImmediatelySentinel(t *testing.T) {
	s, err := ParseFile(strings.NewReader("!*\n"))
	require.NoError(t, err)
	require.True(t, s.ExitImmediately)
	require.False(t, s.Allowed(strings.Fields("anything")))
}

func TestNotExitImmediatelyWhenMoreRulesFollow(t *testing.T) {
	s, err := ParseFile(strings.NewReader("!*\nshow *\n"))
	require.NoError(t, err)
	require.False(t, s.ExitImmediately)
}

func TestLoadFileMissingAllowsAll(t *testing.T) {
	s, err := LoadFile("/nonexistent/path/to/permission.txt")
	require.NoError(t, err)
	require.True(t, s.Allowed(strings.Fields("anything")))
}
