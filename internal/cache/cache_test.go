package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInodeOfExistingDir(t *testing.T) {
	dir := t.TempDir()
	inode, err := InodeOf(dir)
	require.NoError(t, err)
	require.NotZero(t, inode)
}

func TestInodeOfMissingPathErrors(t *testing.T) {
	_, err := InodeOf(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestStoreThenLoadRoundTrips(t *testing.T) {
	c := &Cache{Dir: filepath.Join(t.TempDir(), "cache")}
	require.NoError(t, c.Store(7, "show version\nshow interfaces\n"))

	body, ok := c.Load(7)
	require.True(t, ok)
	require.Equal(t, "show version\nshow interfaces\n", body)
}

func TestLoadMissesOnInodeMismatch(t *testing.T) {
	c := &Cache{Dir: filepath.Join(t.TempDir(), "cache")}
	require.NoError(t, c.Store(7, "show version\n"))

	_, ok := c.Load(8)
	require.False(t, ok)
}

func TestLoadMissesWhenCacheAbsent(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	_, ok := c.Load(1)
	require.False(t, ok)
}

func TestNewWatcherTracksDirectoryChildren(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()
}
