// Package grammarparser turns the textual syntax recli's bin/ command
// grammar files are written in into the hash-consed internal/grammar DAG.
// Tokenizing uses participle/v2/lexer, the way the rest of the example
// corpus tokenizes small domain-specific languages; building the DAG itself
// is a hand-written lowering pass over participle's parsed AST, since the
// struct-tag grammar participle builds is a plain tree, not the normalized,
// content-addressed structure internal/grammar requires.
package grammarparser

import "github.com/alecthomas/participle/v2/lexer"

// syntaxLexer tokenizes one grammar-file line. Ordering matters: longer,
// more specific patterns are listed before shorter ones that would
// otherwise shadow them (e.g. "..." before a bare "." would never arise
// here, but %help before a bare '%', and SlashI/SlashT before a generic
// punctuation catch-all, follow the same principle).
var syntaxLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Varargs", Pattern: `\.\.\.`},
	{Name: "HelpKw", Pattern: `%help[12]`},
	{Name: "SlashI", Pattern: `/i\b`},
	{Name: "SlashT", Pattern: `/t\b`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Punct", Pattern: `[(){}\[\]|=,$*+]`},
	{Name: "whitespace", Pattern: `[ \t]+`},
})
