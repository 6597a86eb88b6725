package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeSimple(t *testing.T) {
	words, err := Tokenize("show interfaces eth0")
	require.NoError(t, err)
	require.Equal(t, []string{"show", "interfaces", "eth0"}, words)
}

func TestTokenizeEmptyLine(t *testing.T) {
	words, err := Tokenize("   ")
	require.NoError(t, err)
	require.Nil(t, words)
}

func TestTokenizeQuotedString(t *testing.T) {
	words, err := Tokenize(`set description "uplink to core"`)
	require.NoError(t, err)
	require.Equal(t, []string{"set", "description", "uplink to core"}, words)
}

func TestTokenizeEscapedQuoteChar(t *testing.T) {
	words, err := Tokenize(`echo "say \"hi\""`)
	require.NoError(t, err)
	require.Equal(t, []string{"echo", `say "hi"`}, words)
}

func TestTokenizeUnterminatedQuoteErrors(t *testing.T) {
	_, err := Tokenize(`set description "uplink`)
	require.Error(t, err)
}

func TestTokenizeJunkAfterQuoteErrors(t *testing.T) {
	_, err := Tokenize(`set "foo"bar`)
	require.Error(t, err)
}

func TestTokenizeCommentStopsLine(t *testing.T) {
	words, err := Tokenize("show version # trailing comment")
	require.NoError(t, err)
	require.Equal(t, []string{"show", "version"}, words)
}

func TestTokenizeSemicolonStopsLine(t *testing.T) {
	words, err := Tokenize("show version; show interfaces")
	require.NoError(t, err)
	require.Equal(t, []string{"show", "version"}, words)
}

func TestTokenizeHashMidWordIsLiteral(t *testing.T) {
	words, err := Tokenize("vlan1#tag")
	require.NoError(t, err)
	require.Equal(t, []string{"vlan1#tag"}, words)
}

func TestTokenizeTooManyWordsErrors(t *testing.T) {
	line := ""
	for i := 0; i <= MaxArgs; i++ {
		line += "w "
	}
	_, err := Tokenize(line)
	require.Error(t, err)
}
