package session

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/go-recli/recli/internal/grammar"
)

// Outcome describes what running a built-in produced, distinct from
// dispatching an external command (§3.2).
type Outcome struct {
	Output string
	Exit   bool
}

// Builtin reports whether argv's first word is handled directly by the
// session rather than being checked against the grammar.
func Builtin(argv []string) bool {
	if len(argv) == 0 {
		return false
	}
	switch argv[0] {
	case "exit", "quit", "logout", "end", "help":
		return true
	}
	return false
}

// RunBuiltin executes argv[0], one of the words Builtin reports true for.
func (s *Session) RunBuiltin(argv []string) Outcome {
	switch argv[0] {
	case "exit", "quit", "logout":
		return s.runExit()
	case "end":
		return s.runEnd()
	case "help":
		return s.runHelp(argv[1:])
	default:
		return Outcome{Output: "not a built-in: " + argv[0]}
	}
}

// runExit implements exit/quit/logout: at the root context, end the
// session; inside a pushed context, first pop one level, matching the
// convention that "exit" means "leave where you are," only terminating the
// whole session once there is nowhere left to leave.
func (s *Session) runExit() Outcome {
	if s.Pop() {
		return Outcome{}
	}
	return Outcome{Exit: true}
}

// runEnd always pops exactly one context level (or is a no-op at the
// root), distinguishing it from exit/quit/logout which also terminates the
// session once the stack is empty.
func (s *Session) runEnd() Outcome {
	s.Pop()
	return Outcome{}
}

// runHelp implements "help" and the grounded "help syntax" special case,
// which dumps the current context's full grammar instead of its prose help
// body — useful when a command's help.md entry is silent on its exact
// accepted syntax.
func (s *Session) runHelp(args []string) Outcome {
	if len(args) == 1 && args[0] == "syntax" {
		return Outcome{Output: grammar.Print(s.Current())}
	}

	key := strings.Join(s.fullPrefix(), " ")
	if len(args) > 0 {
		if key != "" {
			key += " "
		}
		key += strings.Join(args, " ")
	}
	if text, ok := s.Config.LongHelp(key); ok {
		return Outcome{Output: text}
	}

	return Outcome{Output: formatFrontier(s.Engine.FrontierWords(s.Current()))}
}

// formatFrontier column-aligns each candidate word against its help text,
// measuring visual width with go-runewidth rather than byte or rune count
// so multi-byte literals still line up in a monospace terminal.
func formatFrontier(candidates []grammar.Candidate) string {
	width := 0
	for _, c := range candidates {
		if w := runewidth.StringWidth(c.Word); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, c := range candidates {
		b.WriteString(c.Word)
		if c.HelpText != "" {
			b.WriteString(strings.Repeat(" ", width-runewidth.StringWidth(c.Word)+2))
			b.WriteString(c.HelpText)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
