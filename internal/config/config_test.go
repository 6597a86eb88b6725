package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-recli/recli/internal/permission"
)

func TestPromptBannerRoundTrip(t *testing.T) {
	m := New(t.TempDir())
	require.Equal(t, "", m.Prompt())
	m.SetPrompt("recli> ")
	require.Equal(t, "recli> ", m.Prompt())

	m.SetBanner("welcome")
	require.Equal(t, "welcome", m.Banner())
}

func TestSyntaxRoundTrip(t *testing.T) {
	m := New(t.TempDir())
	n, inode := m.Syntax()
	require.Nil(t, n)
	require.Zero(t, inode)

	m.SetSyntax(nil, 42)
	_, inode = m.Syntax()
	require.Equal(t, uint64(42), inode)
}

func TestHelpTables(t *testing.T) {
	m := New(t.TempDir())
	_, ok := m.LongHelp("show version")
	require.False(t, ok)

	m.SetLongHelp("show version", "prints the running version")
	m.SetShortHelp("show version", "prints version")

	text, ok := m.LongHelp("show version")
	require.True(t, ok)
	require.Equal(t, "prints the running version", text)

	short, ok := m.ShortHelp("show version")
	require.True(t, ok)
	require.Equal(t, "prints version", short)
}

func TestPermissionsDefaultsToAllowAll(t *testing.T) {
	m := New(t.TempDir())
	require.True(t, m.Permissions().Allowed([]string{"show", "version"}))

	m.SetPermissions(&permission.Set{ExitImmediately: true})
	require.True(t, m.Permissions().ExitImmediately)
}

func TestLoadEnvFileMergesIntoEnvp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ENV")
	require.NoError(t, os.WriteFile(path, []byte("FOO=bar\n"), 0o644))

	m := New(dir)
	require.NoError(t, m.LoadEnvFile(path))
	require.Contains(t, m.Envp(), "FOO=bar")
}

func TestLoadEnvFileMissingIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	m := New(dir)
	require.NoError(t, m.LoadEnvFile(filepath.Join(t.TempDir(), "ENV")))
	require.Equal(t, []string{"RECLI_DIR=" + dir}, m.Envp())
}

func TestLoadEnvFileAppendsReclidir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ENV")
	require.NoError(t, os.WriteFile(path, []byte("FOO=bar\n"), 0o644))

	m := New(dir)
	require.NoError(t, m.LoadEnvFile(path))
	require.Contains(t, m.Envp(), "FOO=bar")
	require.Contains(t, m.Envp(), "RECLI_DIR="+dir)
}

func TestLoadEnvFileCapsAt127Entries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ENV")
	var body strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&body, "VAR%d=%d\n", i, i)
	}
	require.NoError(t, os.WriteFile(path, []byte(body.String()), 0o644))

	m := New(dir)
	require.NoError(t, m.LoadEnvFile(path))
	require.LessOrEqual(t, len(m.Envp()), 127)
}
