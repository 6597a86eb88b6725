package grammarparser

import (
	"strconv"
	"strings"

	"github.com/go-recli/recli/internal/grammar"
	"github.com/go-recli/recli/internal/rerr"
)

// Builder lowers parsed grammar-source lines into the hash-consed DAG,
// resolving macro references against a table populated by prior "define"
// directives — MACRO substitution happens here, at parse time, exactly as
// §3.1 requires (the DAG itself never contains a MACRO node as another
// node's child).
type Builder struct {
	Engine *grammar.Engine
	macros map[string]*grammar.Node
}

// NewBuilder returns a Builder over engine with an empty macro table.
func NewBuilder(engine *grammar.Engine) *Builder {
	return &Builder{Engine: engine, macros: make(map[string]*grammar.Node)}
}

// DefineMacro parses body and registers it under name for subsequent $name
// references. name must be all-uppercase, matching the grammar package's
// own macro-naming invariant.
func (b *Builder) DefineMacro(name, body string) error {
	node, err := b.ParseLine(body)
	if err != nil {
		return err
	}
	macro, err := b.Engine.Store.Macro(name, node)
	if err != nil {
		return err
	}
	b.macros[name] = macro.Body()
	return nil
}

// ParseLine parses and lowers one grammar-source line into a DAG node.
func (b *Builder) ParseLine(text string) (*grammar.Node, error) {
	ast, err := parseLine(text)
	if err != nil {
		return nil, err
	}
	return b.buildAltGroup(ast)
}

func (b *Builder) buildAltGroup(g *AltGroup) (*grammar.Node, error) {
	nodes := make([]*grammar.Node, 0, len(g.Sequences))
	for _, seq := range g.Sequences {
		n, err := b.buildSequence(seq)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return b.Engine.Alternate(nodes)
}

func (b *Builder) buildSequence(seq *Sequence) (*grammar.Node, error) {
	slots := make([]*grammar.Node, 0, len(seq.Terms))
	for _, term := range seq.Terms {
		n, err := b.buildTerm(term)
		if err != nil {
			return nil, err
		}
		slots = append(slots, n)
	}
	return b.Engine.Store.ConcatSlice(slots), nil
}

func (b *Builder) buildTerm(t *Term) (*grammar.Node, error) {
	if t.Paren != nil {
		return b.buildAltGroup(t.Paren)
	}
	return b.buildPostfixed(t.Single)
}

func (b *Builder) buildPostfixed(p *Postfixed) (*grammar.Node, error) {
	inner, err := b.buildAtom(p.Atom)
	if err != nil {
		return nil, err
	}
	switch {
	case p.Star:
		return b.Engine.Store.Plus(inner, 0, 0)
	case p.Plus:
		return b.Engine.Store.Plus(inner, 1, 0)
	case p.Repeat != nil:
		min, err := strconv.Atoi(p.Repeat.Min)
		if err != nil {
			return nil, &rerr.GrammarParseError{Reason: "bad repeat lower bound: " + p.Repeat.Min}
		}
		max, err := strconv.Atoi(p.Repeat.Max)
		if err != nil {
			return nil, &rerr.GrammarParseError{Reason: "bad repeat upper bound: " + p.Repeat.Max}
		}
		if max != 0 && max < min {
			return nil, &rerr.GrammarParseError{Reason: "repeat upper bound below lower bound"}
		}
		return b.Engine.Store.Plus(inner, min, max)
	default:
		return inner, nil
	}
}

func (b *Builder) buildAtom(a *Atom) (*grammar.Node, error) {
	switch {
	case a.Optional != nil:
		inner, err := b.buildAltGroup(a.Optional)
		if err != nil {
			return nil, err
		}
		return b.Engine.Store.Optional(inner), nil
	case a.Varargs:
		return b.Engine.Store.Varargs(), nil
	case a.MacroRef != "":
		body, ok := b.macros[a.MacroRef]
		if !ok {
			return nil, &rerr.GrammarParseError{Reason: "undefined macro: " + a.MacroRef}
		}
		return b.Engine.Store.Ref(body), nil
	case a.Help != nil:
		rank := grammar.HelpLong
		if a.Help.Rank == "%help2" {
			rank = grammar.HelpShort
		}
		return b.Engine.Store.HelpLiteral(rank, unquote(a.Help.Text)), nil
	case a.Literal != nil:
		lit := a.Literal
		return b.Engine.Store.Literal(lit.Name, lit.CaseInsensitive, lit.TTYRequired, lit.Validator)
	default:
		return nil, &rerr.GrammarParseError{Reason: "empty atom"}
	}
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}
