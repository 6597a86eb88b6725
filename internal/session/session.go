// Package session implements the interactive context-stack state machine:
// the built-in commands every recli session understands without consulting
// the grammar (exit/end/quit/logout/help), the bounded stack of grammar
// contexts a partially-typed multi-word command pushes, and the
// quote-state side-variable the line editor consults while the user is
// mid-way through typing a quoted argument (§3.2, §5).
package session

import (
	"fmt"
	"strings"

	"github.com/go-recli/recli/internal/config"
	"github.com/go-recli/recli/internal/grammar"
	"github.com/go-recli/recli/internal/grammarparser"
	"github.com/go-recli/recli/internal/rerr"
)

// MaxContextDepth bounds the context-frame stack (§3.2 invariant 1).
const MaxContextDepth = 32

// Frame is one pushed context: the grammar remaining to be matched at this
// level, and the words already consumed to reach it (for prompt synthesis
// and for re-expanding a dispatched command's full argv).
type Frame struct {
	Node   *grammar.Node
	Prefix []string
}

// Session is one user's interactive recli state: which grammar context
// they're in, their line editor's quote state, and their command history.
type Session struct {
	Engine   *grammar.Engine
	Builder  *grammarparser.Builder
	Config   *config.Manager
	ProgName string

	stack []Frame

	// quoted tracks whether the line editor is currently inside an
	// open quote, toggled by the on_quote callback (§3.2) so on_space and
	// on_tab_complete can tell a literal space/tab apart from a
	// separator.
	quoted bool

	History *History
}

// New returns a Session with an empty context stack, rooted at the grammar
// currently loaded into cfg.
func New(engine *grammar.Engine, builder *grammarparser.Builder, cfg *config.Manager, progName string) *Session {
	return &Session{Engine: engine, Builder: builder, Config: cfg, ProgName: progName}
}

// Current returns the grammar node the next word typed is checked against:
// the top of the context stack, or the root syntax if the stack is empty.
func (s *Session) Current() *grammar.Node {
	if len(s.stack) > 0 {
		return s.stack[len(s.stack)-1].Node
	}
	root, _ := s.Config.Syntax()
	return root
}

// Push enters a new context, failing if the stack is already at
// MaxContextDepth.
func (s *Session) Push(n *grammar.Node, consumed []string) error {
	if len(s.stack) >= MaxContextDepth {
		return &rerr.DispatchError{Stage: rerr.StageResolve, Err: fmt.Errorf("context stack depth exceeds %d", MaxContextDepth)}
	}
	prefix := s.fullPrefix()
	prefix = append(append([]string{}, prefix...), consumed...)
	s.stack = append(s.stack, Frame{Node: n, Prefix: prefix})
	return nil
}

// Pop leaves the current context, returning false if the stack was already
// empty (at the root).
func (s *Session) Pop() bool {
	if len(s.stack) == 0 {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Reset returns to the root context.
func (s *Session) Reset() { s.stack = nil }

// Depth reports how many contexts are currently pushed.
func (s *Session) Depth() int { return len(s.stack) }

func (s *Session) fullPrefix() []string {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1].Prefix
}

// SetQuoted updates the quote-state side-variable; the line editor's
// on_quote callback calls this every time it crosses a quote boundary.
func (s *Session) SetQuoted(q bool) { s.quoted = q }

// Quoted reports whether the line editor is currently inside an open quote.
func (s *Session) Quoted() bool { return s.quoted }

// Prompt synthesizes the session's current prompt text: "{prog}> " at the
// root, "{prog} w1 w2...> " once words have been pushed as context (§3.2).
func (s *Session) Prompt() string {
	if len(s.stack) == 0 {
		return s.ProgName + "> "
	}
	return s.ProgName + " " + strings.Join(s.fullPrefix(), " ") + "> "
}

// FullArgv prepends the consumed context prefix onto words typed at the
// current level, reconstructing the complete command line to dispatch.
func (s *Session) FullArgv(words []string) []string {
	prefix := s.fullPrefix()
	out := make([]string, 0, len(prefix)+len(words))
	out = append(out, prefix...)
	out = append(out, words...)
	return out
}
