package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-recli/recli/internal/config"
	"github.com/go-recli/recli/internal/datatype"
	"github.com/go-recli/recli/internal/grammar"
	"github.com/go-recli/recli/internal/grammarparser"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	engine := grammar.NewEngine(datatype.NewRegistry())
	builder := grammarparser.NewBuilder(engine)
	cfg := config.New(t.TempDir())
	n, err := builder.ParseLine("show version")
	require.NoError(t, err)
	cfg.SetSyntax(n, 0)
	return New(engine, builder, cfg, "recli")
}

func TestPromptAtRoot(t *testing.T) {
	s := newTestSession(t)
	require.Equal(t, "recli> ", s.Prompt())
}

func TestPushAndPrompt(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Push(s.Current(), []string{"show"}))
	require.Equal(t, "recli show> ", s.Prompt())
}

func TestContextDepthLimit(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < MaxContextDepth; i++ {
		require.NoError(t, s.Push(s.Current(), []string{"show"}))
	}
	require.Error(t, s.Push(s.Current(), []string{"show"}))
}

func TestBuiltinExitAtRootEndsSession(t *testing.T) {
	s := newTestSession(t)
	outcome := s.RunBuiltin([]string{"exit"})
	require.True(t, outcome.Exit)
}

func TestBuiltinExitInsideContextPopsOnly(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Push(s.Current(), []string{"show"}))
	outcome := s.RunBuiltin([]string{"exit"})
	require.False(t, outcome.Exit)
	require.Equal(t, 0, s.Depth())
}

func TestBuiltinHelpSyntax(t *testing.T) {
	s := newTestSession(t)
	outcome := s.RunBuiltin([]string{"help", "syntax"})
	require.NotEmpty(t, outcome.Output)
}

func TestFullArgvPrependsPrefix(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Push(s.Current(), []string{"show"}))
	require.Equal(t, []string{"show", "version"}, s.FullArgv([]string{"version"}))
}
