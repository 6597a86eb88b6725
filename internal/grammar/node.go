// Package grammar implements the content-addressed, hash-consed grammar DAG
// at the core of recli (§3.1, §4.3–§4.6 of the grammar specification):
// literal words, alternation, optionality, repetition, concatenation, typed
// placeholders and macros, all normalized to a canonical structural form so
// that structurally-equal grammars are pointer-equal.
//
// Throughout this package a nil *Node stands for epsilon, the zero-width
// match — it is not a Kind of its own, it is simply "no node here", which
// keeps the comparator and the merge algebra's "empty tail" cases uniform.
package grammar

import "github.com/go-recli/recli/internal/datatype"

// Kind tags the variant-specific fields of a Node.
type Kind int

const (
	KLiteral Kind = iota
	KVarargs
	KConcat
	KAlternate
	KOptional
	KPlus
	KMacro
)

func (k Kind) String() string {
	switch k {
	case KLiteral:
		return "literal"
	case KVarargs:
		return "varargs"
	case KConcat:
		return "concat"
	case KAlternate:
		return "alternate"
	case KOptional:
		return "optional"
	case KPlus:
		return "plus"
	case KMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// HelpRank distinguishes the two help-literal ranks from an ordinary literal
// (rank 0). §9's open question flags this as better modeled as a dedicated
// enum than an overloaded length field; this port does exactly that.
type HelpRank int

const (
	HelpNone HelpRank = iota
	HelpLong
	HelpShort
)

// Node is an immutable, reference-counted, content-addressed grammar node.
// Its identity is its content: Store.intern guarantees that any two
// semantically identical nodes are the same *Node (invariant 1, §3.1).
type Node struct {
	kind Kind

	// Literal
	name            string
	caseInsensitive bool
	ttyRequired     bool
	forceExact      bool // bypasses naming restrictions; set only by Store.forceExactLiteral
	validator       string
	helpRank        HelpRank
	helpText        string

	// Concat: first is never itself KConcat; length is the terminal slot count.
	// Alternate: first is never itself KAlternate.
	first *Node
	rest  *Node

	// Optional / Plus
	inner *Node
	min   int
	max   int

	// Macro
	macroName string
	body      *Node

	length int
	seq    int // stable tiebreak for the total order, assigned at intern time

	refcount int
}

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

// Name returns a literal's keyword text, or a macro's name.
func (n *Node) Name() string {
	if n.kind == KMacro {
		return n.macroName
	}
	return n.name
}

// CaseInsensitive reports whether a literal was declared with the /i suffix.
func (n *Node) CaseInsensitive() bool { return n.caseInsensitive }

// TTYRequired reports whether a literal was declared with the /t suffix.
func (n *Node) TTYRequired() bool { return n.ttyRequired }

// ForceExact reports whether a literal was synthesized by
// Store.forceExactLiteral, bypassing the ordinary naming restrictions.
func (n *Node) ForceExact() bool { return n.forceExact }

// Validator returns the attached datatype name, or "" if this literal is a
// bare keyword.
func (n *Node) Validator() string { return n.validator }

// HelpRank returns whether this is a help-text literal, and at which rank.
func (n *Node) HelpRank() HelpRank { return n.helpRank }

// HelpText returns the accumulated help body for a help-text literal.
func (n *Node) HelpText() string { return n.helpText }

// First returns a CONCAT's head or an ALTERNATE's first branch.
func (n *Node) First() *Node { return n.first }

// Rest returns a CONCAT's tail or an ALTERNATE's remaining branches.
func (n *Node) Rest() *Node { return n.rest }

// Inner returns the wrapped node of an OPTIONAL or PLUS.
func (n *Node) Inner() *Node { return n.inner }

// MinMax returns a PLUS's repetition bounds (min=1,max=0 is '+'; min=0,max=0
// is '*').
func (n *Node) MinMax() (int, int) { return n.min, n.max }

// Length returns a CONCAT's terminal slot count.
func (n *Node) Length() int { return n.length }

// Body returns a MACRO's substituted content.
func (n *Node) Body() *Node { return n.body }

// Refcount returns the node's current live reference count (diagnostic use
// only — callers should never need to act on it directly).
func (n *Node) Refcount() int { return n.refcount }

// lookupValidator resolves a literal's attached datatype name against reg,
// returning nil if the literal carries no validator or the name is unknown.
func (n *Node) lookupValidator(reg *datatype.Registry) datatype.Validator {
	if n.validator == "" || reg == nil {
		return nil
	}
	v, ok := reg.Lookup(n.validator)
	if !ok {
		return nil
	}
	return v
}
