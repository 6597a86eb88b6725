package session

import (
	"strings"

	"github.com/c-bata/go-prompt"
)

// LineEditor wires go-prompt to a Session: its completer calls into the
// grammar engine's frontier for tab completion, and its
// key bindings track the quote-state side-variable so a literal space or
// tab typed inside an open quote isn't mistaken for a word separator
// (§3.2).
type LineEditor struct {
	session *Session
	execute func(line string)
}

// NewLineEditor returns a LineEditor over session whose executor callback
// runs execute for every line the user submits.
func NewLineEditor(session *Session, execute func(line string)) *LineEditor {
	return &LineEditor{session: session, execute: execute}
}

// Run starts the interactive read-eval loop and blocks until go-prompt's
// own loop ends. A built-in that reports Outcome.Exit does not make Run
// return: the execute callback ends the process itself.
func (le *LineEditor) Run() {
	p := prompt.New(
		le.onExecute,
		le.complete,
		prompt.OptionLivePrefix(le.livePrefix),
		prompt.OptionAddKeyBind(prompt.KeyBind{Key: prompt.ControlQ, Fn: le.onToggleQuote}),
	)
	p.Run()
}

func (le *LineEditor) onExecute(line string) {
	depthBefore := le.session.Depth()
	le.execute(line)
	if le.session.Depth() != depthBefore {
		forceRefreshPrompt()
	}
}

func (le *LineEditor) livePrefix() (string, bool) {
	return le.session.Prompt(), true
}

// onToggleQuote is the on_quote callback, bound to Ctrl-Q: it flips the
// session's quote-state side-variable. While the quote state is set,
// complete offers no suggestions, so whitespace typed inside the quote is
// not split into words for completion.
func (le *LineEditor) onToggleQuote(buf *prompt.Buffer) {
	le.session.SetQuoted(!le.session.Quoted())
}

// complete implements on_tab_complete: it enumerates the current context's
// frontier, filtered by whatever the user has typed of the current word so
// far. No separate "?" key binding exists.
func (le *LineEditor) complete(d prompt.Document) []prompt.Suggest {
	if le.session.Quoted() {
		return nil
	}
	typed := d.GetWordBeforeCursor()
	words, err := splitLiveWords(d.TextBeforeCursor())
	if err != nil {
		return nil
	}

	node := le.session.Current()
	if len(words) > 0 {
		residual, err := le.session.Engine.Skip(node, words)
		if err != nil {
			return nil
		}
		node = residual
	}

	var suggestions []prompt.Suggest
	for _, c := range le.session.Engine.PrefixWords(node, typed) {
		suggestions = append(suggestions, prompt.Suggest{Text: c.Word, Description: c.HelpText})
	}
	return suggestions
}

// splitLiveWords is a best-effort, non-erroring split of the in-progress
// line used only to drive completion; internal/lexer.Tokenize is the
// authoritative tokenizer used once a line is actually submitted.
func splitLiveWords(text string) ([]string, error) {
	fields := strings.Fields(text)
	return fields, nil
}
