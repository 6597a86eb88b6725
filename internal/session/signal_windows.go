//go:build windows

package session

// forceRefreshPrompt is a no-op on Windows: there is no SIGWINCH
// equivalent to nudge go-prompt into redrawing early.
func forceRefreshPrompt() {}
