package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeHandler(t *testing.T, path, syntax string) {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\nif [ \"$1\" = \"--config\" ] && [ \"$2\" = \"syntax\" ]; then\n  printf '%%s\\n' %q\nfi\n", syntax)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
}

func TestRunLoadsGrammarFromBinWalk(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	writeHandler(t, filepath.Join(binDir, "show"), "show version")

	result, err := Run(dir)
	require.NoError(t, err)
	require.NotNil(t, result.Engine)

	root, _ := result.Config.Syntax()
	verdict := result.Engine.Check(root, []string{"show", "version"})
	require.Equal(t, 2, verdict)
}

func TestRunHonorsCachedGrammarOnSecondLoad(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	writeHandler(t, filepath.Join(binDir, "show"), "show version")

	first, err := Run(dir)
	require.NoError(t, err)
	firstRoot, _ := first.Config.Syntax()
	require.NotNil(t, firstRoot)

	second, err := Run(dir)
	require.NoError(t, err)
	secondRoot, _ := second.Config.Syntax()
	verdict := second.Engine.Check(secondRoot, []string{"show", "version"})
	require.Equal(t, 2, verdict)
}

func TestRunLoadsBannerAndHelp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banner.txt"), []byte("welcome to recli"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "help.md"), []byte("# show version\nPrints the running software version.\n"), 0o644))

	result, err := Run(dir)
	require.NoError(t, err)
	require.Equal(t, "welcome to recli", result.Config.Banner())

	text, ok := result.Config.LongHelp("show version")
	require.True(t, ok)
	require.Equal(t, "Prints the running software version.", text)
}

func TestRunSkipsDotfilesAndBackupFilesInBinWalk(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	writeHandler(t, filepath.Join(binDir, "show"), "show version")
	writeHandler(t, filepath.Join(binDir, ".hidden"), "reboot now")
	writeHandler(t, filepath.Join(binDir, "show~"), "shutdown now")

	result, err := Run(dir)
	require.NoError(t, err)

	root, _ := result.Config.Syntax()
	require.Equal(t, 2, result.Engine.Check(root, []string{"show", "version"}))
	require.Less(t, result.Engine.Check(root, []string{"reboot", "now"}), 0)
	require.Less(t, result.Engine.Check(root, []string{"shutdown", "now"}), 0)
}

func TestOverrideGrammarReplacesLoadedSyntax(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	result, err := Run(dir)
	require.NoError(t, err)

	grammarFile := filepath.Join(dir, "test.grammar")
	require.NoError(t, os.WriteFile(grammarFile, []byte("ping host=HOSTNAME\n"), 0o644))
	require.NoError(t, result.OverrideGrammar(grammarFile))

	root, _ := result.Config.Syntax()
	verdict := result.Engine.Check(root, []string{"ping", "example.com"})
	require.Equal(t, 2, verdict)
}
