// Package dispatch resolves a checked command line to an executable under
// bin/ and runs it, multiplexing its stdout/stderr back to the session and
// forwarding interactive signals to it (§6 of the interface spec).
package dispatch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-recli/recli/internal/rerr"
)

// fallbackNames are tried, in order, when no word of argv names a
// subdirectory or executable at the current depth: a directory can handle
// "anything from here down" by providing one of these.
var fallbackNames = []string{"DEFAULT", "run"}

// Resolved is the outcome of walking argv against bin/.
type Resolved struct {
	ExecPath string   // absolute path of the executable to run
	Args     []string // the argv words to pass as its arguments
	Depth    int       // how many argv words were consumed choosing ExecPath
}

// Resolve walks argv as a path under binDir, one word per directory level,
// until a word names an executable file rather than a subdirectory. If no
// word at some depth matches anything, that directory's DEFAULT (or,
// failing that, run) executable is used instead, receiving every word from
// that depth onward as its arguments — the "the handler understands
// whatever comes next" fallback.
func Resolve(binDir string, argv []string) (*Resolved, error) {
	dir := binDir
	i := 0
	for i < len(argv) {
		candidate := filepath.Join(dir, argv[i])
		fi, err := os.Stat(candidate)
		if err != nil {
			break
		}
		if fi.IsDir() {
			dir = candidate
			i++
			continue
		}
		if isExecutable(fi) {
			return &Resolved{ExecPath: candidate, Args: argv[i+1:], Depth: i + 1}, nil
		}
		break
	}

	for _, name := range fallbackNames {
		candidate := filepath.Join(dir, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() && isExecutable(fi) {
			return &Resolved{ExecPath: candidate, Args: argv[i:], Depth: i}, nil
		}
	}

	return nil, &rerr.DispatchError{Stage: rerr.StageResolve, Err: &notFoundError{argv: argv}}
}

type notFoundError struct{ argv []string }

func (e *notFoundError) Error() string {
	return "no command handler found for: " + strings.Join(e.argv, " ")
}

func isExecutable(fi os.FileInfo) bool {
	return fi.Mode()&0o111 != 0
}

// CommandPrefix converts the bin/-relative directory that execPath lives in
// into the space-joined command words a user would type to reach it, e.g.
// bin/show/interfaces -> "show interfaces" (used to rewrite a discovered
// DEFAULT handler's self-reported syntax onto its real mount point).
func CommandPrefix(binDir, execPath string) string {
	rel, err := filepath.Rel(binDir, filepath.Dir(execPath))
	if err != nil || rel == "." {
		return ""
	}
	return strings.ReplaceAll(rel, string(os.PathSeparator), " ")
}
