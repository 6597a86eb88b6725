package grammarparser

import "github.com/alecthomas/participle/v2/lexer"

// AltGroup is one or more Sequences joined by '|': the concrete syntax's
// alternation, at whatever nesting depth it appears (top-level line,
// inside '(...)', or inside '[...]').
type AltGroup struct {
	Pos       lexer.Position `parser:""`
	Sequences []*Sequence    `parser:"@@ ('|' @@)*"`
}

// Sequence is a space-separated run of Terms: the concrete syntax's
// concatenation.
type Sequence struct {
	Pos   lexer.Position `parser:""`
	Terms []*Term        `parser:"@@+"`
}

// Term is either a parenthesized sub-alternation or a single postfixed atom.
type Term struct {
	Pos    lexer.Position `parser:""`
	Paren  *AltGroup      `parser:"(  '(' @@ ')'"`
	Single *Postfixed     `parser:" | @@ )"`
}

// Postfixed is an Atom with an optional repetition suffix: '*', '+', or the
// bounded form '{min,max}'.
type Postfixed struct {
	Pos    lexer.Position `parser:""`
	Atom   *Atom          `parser:"@@"`
	Star   bool           `parser:"( @'*'"`
	Plus   bool           `parser:"| @'+'"`
	Repeat *Repeat        `parser:"| @@ )?"`
}

// Repeat is the bounded '{min,max}' repetition suffix.
type Repeat struct {
	Pos lexer.Position `parser:""`
	Min string         `parser:"'{' @Number ','"`
	Max string         `parser:"@Number '}'"`
}

// Atom is one indivisible unit of syntax: a bracketed optional
// sub-alternation, the VARARGS catch-all, a macro reference, an attached
// help body, or an ordinary (possibly typed) literal.
type Atom struct {
	Pos      lexer.Position `parser:""`
	Optional *AltGroup      `parser:"(  '[' @@ ']'"`
	Varargs  bool           `parser:" | @Varargs"`
	MacroRef string         `parser:" | '$' @Ident"`
	Help     *HelpLiteral   `parser:" | @@"`
	Literal  *Literal       `parser:" | @@ )"`
}

// HelpLiteral attaches a long (%help1) or short (%help2) help body to the
// syntax line it appears in (§3.1).
type HelpLiteral struct {
	Pos  lexer.Position `parser:""`
	Rank string         `parser:"@HelpKw"`
	Text string         `parser:"'{' @String '}'"`
}

// Literal is a bare keyword, or a typed placeholder (name=TYPE), with
// optional /i (case-insensitive) and /t (requires a TTY) suffixes.
type Literal struct {
	Pos             lexer.Position `parser:""`
	Name            string         `parser:"@Ident"`
	Validator       string         `parser:"('=' @Ident)?"`
	CaseInsensitive bool           `parser:"@SlashI?"`
	TTYRequired     bool           `parser:"@SlashT?"`
}
