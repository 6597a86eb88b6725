// Package lexer splits a raw terminal line into argv words (§4.1 of the
// grammar specification), honoring quoted strings and backslash escapes the
// way a restricted shell-like interpreter does.
package lexer

import (
	"github.com/go-recli/recli/internal/rerr"
)

// MaxArgs bounds the number of words a single line may tokenize to.
const MaxArgs = 256

// Tokenize splits line into argv words. ASCII space/tab separate tokens;
// ';' and '#' at a token boundary terminate the line early (shell-style
// comment/statement separators). A token starting with '"', '\'' or '`' is a
// quoted string whose closing character must match the opener; '\' escapes
// the following character inside a quoted string. An unterminated quote, or
// a quoted token immediately followed by a non-separator character, is a
// LexError carrying the offending byte offset. Empty input yields a nil
// slice with no error.
func Tokenize(line string) ([]string, error) {
	var argv []string
	i := 0
	n := len(line)

	skipSpace := func() {
		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
	}

	for {
		skipSpace()
		if i >= n {
			break
		}
		if line[i] == ';' || line[i] == '#' {
			break
		}

		var tok string
		var err error
		if line[i] == '"' || line[i] == '\'' || line[i] == '`' {
			tok, i, err = readQuoted(line, i)
		} else {
			tok, i = readBare(line, i)
		}
		if err != nil {
			return nil, err
		}

		if len(argv) >= MaxArgs {
			return nil, &rerr.LexError{Pos: i, Reason: "too many words"}
		}
		argv = append(argv, tok)
	}

	return argv, nil
}

// readBare consumes an unquoted word starting at i, stopping at whitespace
// or a ';'/'#' token-boundary marker.
func readBare(line string, i int) (string, int) {
	start := i
	n := len(line)
	for i < n {
		c := line[i]
		if c == ' ' || c == '\t' {
			break
		}
		if (c == ';' || c == '#') && isTokenBoundary(line, i) {
			break
		}
		i++
	}
	return line[start:i], i
}

// isTokenBoundary reports whether the ';' or '#' at position i sits on a
// token boundary: at the start of a token (preceded by a separator or the
// start of the line) or at the end of one (followed by a separator or the end
// of the line). Mid-word, as in "vlan1#tag" or "a;b", it is an ordinary
// character.
func isTokenBoundary(line string, i int) bool {
	before := i == 0 || line[i-1] == ' ' || line[i-1] == '\t'
	after := i+1 >= len(line) || line[i+1] == ' ' || line[i+1] == '\t'
	return before || after
}

// readQuoted consumes a quoted token starting at the opening quote
// character at position i. It returns the unescaped token content, the
// index just past the token, and an error if the quote is unterminated or
// immediately followed by a non-separator character.
func readQuoted(line string, i int) (string, int, error) {
	n := len(line)
	opener := line[i]
	start := i
	i++

	var out []byte
	closed := false
	for i < n {
		c := line[i]
		if c == '\\' && i+1 < n {
			out = append(out, line[i+1])
			i += 2
			continue
		}
		if c == opener {
			closed = true
			i++
			break
		}
		out = append(out, c)
		i++
	}

	if !closed {
		return "", i, &rerr.LexError{Pos: start, Reason: "unterminated quote"}
	}

	if i < n && line[i] != ' ' && line[i] != '\t' && line[i] != ';' && line[i] != '#' {
		return "", i, &rerr.LexError{Pos: i, Reason: "unexpected character after quoted string"}
	}

	return string(out), i, nil
}
