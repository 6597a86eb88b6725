package session

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// defaultMaxHistorySize bounds the on-disk history file before it is
// rotated to a timestamped backup, overridable via RECLI_HISTORY_MAX_SIZE
// (accepts suffixes like "1MB", "512KB").
const defaultMaxHistorySize = 1 << 20 // 1MB

// History manages the per-program, per-user command history file at
// ~/.recli/<progname>_history.txt (grounded on the original's history path
// convention — see DESIGN.md).
type History struct {
	path    string
	maxSize int64
}

// NewHistory returns a History for progName, rooted under the user's home
// directory. If the home directory can't be determined the history file
// falls back to the current directory.
func NewHistory(progName string) *History {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return &History{
		path:    filepath.Join(dir, ".recli", progName+"_history.txt"),
		maxSize: maxHistorySizeFromEnv(),
	}
}

func maxHistorySizeFromEnv() int64 {
	v := os.Getenv("RECLI_HISTORY_MAX_SIZE")
	if v == "" {
		return defaultMaxHistorySize
	}
	if size, err := parseSize(v); err == nil && size > 0 {
		return size
	}
	return defaultMaxHistorySize
}

func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1 << 30
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1 << 20
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1 << 10
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("history: bad size %q: %w", s, err)
	}
	return n * multiplier, nil
}

// Load reads the history file into a slice of lines, oldest first. A
// missing file is not an error: it yields an empty history.
func (h *History) Load() ([]string, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// Append writes one more entry to the history file, rotating the current
// file to a timestamped backup first if it has grown past maxSize.
func (h *History) Append(entry string) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("history: mkdir: %w", err)
	}
	if fi, err := os.Stat(h.path); err == nil && fi.Size() >= h.maxSize {
		backup := fmt.Sprintf("%s.bak-%d", h.path, time.Now().Unix())
		if err := os.Rename(h.path, backup); err != nil {
			return fmt.Errorf("history: rotate: %w", err)
		}
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("history: open: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, entry)
	return err
}
