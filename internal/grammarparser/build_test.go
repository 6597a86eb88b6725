package grammarparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-recli/recli/internal/datatype"
	"github.com/go-recli/recli/internal/grammar"
)

func TestParseSimpleConcat(t *testing.T) {
	b := NewBuilder(grammar.NewEngine(datatype.NewRegistry()))
	n, err := b.ParseLine("show version")
	require.NoError(t, err)
	require.Equal(t, grammar.KConcat, n.Kind())
	require.Equal(t, "show", n.First().Name())
	require.Equal(t, "version", n.Rest().Name())
}

func TestParseAlternationAndOptional(t *testing.T) {
	b := NewBuilder(grammar.NewEngine(datatype.NewRegistry()))
	n, err := b.ParseLine("delete (all | name=STRING) [force]")
	require.NoError(t, err)
	require.Equal(t, grammar.KConcat, n.Kind())
	require.Equal(t, "delete", n.First().Name())
}

func TestParseMacroReference(t *testing.T) {
	b := NewBuilder(grammar.NewEngine(datatype.NewRegistry()))
	require.NoError(t, b.DefineMacro("TARGET", "interface=STRING"))
	n, err := b.ParseLine("show $TARGET")
	require.NoError(t, err)
	require.Equal(t, "show", n.First().Name())
	require.Equal(t, "interface", n.Rest().Name())
	require.Equal(t, "STRING", n.Rest().Validator())
}

func TestParseVarargsAndHelp(t *testing.T) {
	b := NewBuilder(grammar.NewEngine(datatype.NewRegistry()))
	n, err := b.ParseLine(`run ... %help1{"runs a command"}`)
	require.NoError(t, err)
	require.Equal(t, "run", n.First().Name())
}

func TestParseUndefinedMacro(t *testing.T) {
	b := NewBuilder(grammar.NewEngine(datatype.NewRegistry()))
	_, err := b.ParseLine("show $NOPE")
	require.Error(t, err)
}
