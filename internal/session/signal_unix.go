package session

import (
	"os"

	"golang.org/x/sys/unix"
)

// forceRefreshPrompt sends this process its own SIGWINCH: go-prompt
// redraws its live prefix on a terminal resize, and there is no public API
// to ask it to redraw on demand, so a self-signal is the standard trick to
// get the prompt to pick up a context push/pop immediately rather than on
// the next keystroke.
func forceRefreshPrompt() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(unix.SIGWINCH)
}
