// Package cache implements the inode-keyed compiled-syntax cache under
// D/cache/syntax.txt: rather than re-walking and re-parsing D/bin/** on
// every startup, recli stamps the cache with the bin/ directory's inode
// number and trusts it as long as that inode hasn't changed (i.e. bin/
// hasn't been replaced out from under a long-lived cache directory).
// fsnotify supplements this, not replaces it: a directory watch lets a
// running session proactively invalidate rather than only re-checking the
// next time it starts.
package cache

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

const header = "# recli-syntax-cache inode="

// InodeOf returns path's filesystem inode number.
func InodeOf(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("cache: stat %s: %w", path, err)
	}
	return uint64(st.Ino), nil
}

// Cache wraps the cache directory (D/cache) holding syntax.txt.
type Cache struct {
	Dir string
}

func (c *Cache) filePath() string { return filepath.Join(c.Dir, "syntax.txt") }

// Load returns the cached grammar text if the cache's stamped inode still
// matches binDirInode; ok is false on any miss (file absent, unreadable, or
// stale), never an error — a cache miss always falls back to a fresh walk.
func (c *Cache) Load(binDirInode uint64) (body string, ok bool) {
	f, err := os.Open(c.filePath())
	if err != nil {
		return "", false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return "", false
	}
	first := sc.Text()
	if !strings.HasPrefix(first, header) {
		return "", false
	}
	stamped, err := strconv.ParseUint(strings.TrimPrefix(first, header), 10, 64)
	if err != nil || stamped != binDirInode {
		return "", false
	}

	var b strings.Builder
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	return b.String(), true
}

// Store writes body to the cache stamped with binDirInode, atomically: the
// new content lands in a uniquely-named temp file in the same directory
// and is renamed into place, so a concurrent reader never observes a
// partially-written cache.
func (c *Cache) Store(binDirInode uint64, body string) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("cache: mkdir: %w", err)
	}
	tmp := filepath.Join(c.Dir, ".syntax-"+uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cache: create temp: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s%d\n%s", header, binDirInode, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cache: write temp: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cache: close temp: %w", err)
	}
	if err := os.Rename(tmp, c.filePath()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cache: rename into place: %w", err)
	}
	return nil
}

// Watcher emits an event whenever files under a tracked bin/ directory
// change, so a long-lived session can re-derive its grammar proactively
// instead of only discovering staleness via the inode check at next
// startup.
type Watcher struct {
	fs *fsnotify.Watcher
}

// NewWatcher starts watching dir (and its immediate children) for changes.
func NewWatcher(dir string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cache: new watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("cache: watch %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				_ = fs.Add(filepath.Join(dir, e.Name()))
			}
		}
	}
	return &Watcher{fs: fs}, nil
}

// Events returns the channel of filesystem change notifications.
func (w *Watcher) Events() <-chan fsnotify.Event { return w.fs.Events }

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error { return w.fs.Errors }

// Close stops the watcher.
func (w *Watcher) Close() error { return w.fs.Close() }
