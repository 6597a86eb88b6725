package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func mkExecutable(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho hi\n"), 0o755))
}

func TestResolveDirectExecutable(t *testing.T) {
	bin := t.TempDir()
	mkExecutable(t, filepath.Join(bin, "show", "version"))

	r, err := Resolve(bin, []string{"show", "version"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(bin, "show", "version"), r.ExecPath)
	require.Empty(t, r.Args)
	require.Equal(t, 2, r.Depth)
}

func TestResolveDefaultFallback(t *testing.T) {
	bin := t.TempDir()
	mkExecutable(t, filepath.Join(bin, "show", "DEFAULT"))

	r, err := Resolve(bin, []string{"show", "interfaces", "eth0"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(bin, "show", "DEFAULT"), r.ExecPath)
	require.Equal(t, []string{"interfaces", "eth0"}, r.Args)
}

func TestResolveNotFound(t *testing.T) {
	bin := t.TempDir()
	_, err := Resolve(bin, []string{"nope"})
	require.Error(t, err)
}

func TestCommandPrefix(t *testing.T) {
	bin := "/etc/recli/bin"
	exec := filepath.Join(bin, "show", "interfaces", "DEFAULT")
	require.Equal(t, "show interfaces", CommandPrefix(bin, exec))
}

func TestRewriteDefaultPrefix(t *testing.T) {
	out := rewriteDefaultPrefix("DEFAULT name=STRING\nDEFAULT\n", "show interfaces")
	require.Equal(t, "show interfaces name=STRING\nshow interfaces\n", out)
}
