package grammar

import "github.com/go-recli/recli/internal/rerr"

// Store is a single-threaded hash-consing table: content-identical nodes
// always intern to the same *Node, and nodes are freed the moment their
// refcount drops to zero (§3.1, §5 — no concurrent access to one Store is
// expected, matching the single-threaded session model).
type Store struct {
	table   map[nodeKey]*Node
	nextSeq int
}

// NewStore returns an empty hash-consing table.
func NewStore() *Store {
	return &Store{table: make(map[nodeKey]*Node)}
}

// nodeKey is the structural content key used for interning. Child pointers
// are used directly as key fields: the hash-consing invariant guarantees
// that two content-equal children are already the same *Node, so pointer
// identity in the key is equivalent to deep content equality.
type nodeKey struct {
	kind            Kind
	name            string
	caseInsensitive bool
	ttyRequired     bool
	forceExact      bool
	validator       string
	helpRank        HelpRank
	helpText        string
	first, rest     *Node
	inner, body     *Node
	length, min_    int
	max_            int
	macroName       string
}

func keyOf(n *Node) nodeKey {
	return nodeKey{
		kind: n.kind, name: n.name, caseInsensitive: n.caseInsensitive,
		ttyRequired: n.ttyRequired, forceExact: n.forceExact, validator: n.validator,
		helpRank: n.helpRank, helpText: n.helpText,
		first: n.first, rest: n.rest, inner: n.inner, body: n.body,
		length: n.length, min_: n.min, max_: n.max, macroName: n.macroName,
	}
}

// intern returns the canonical node for proto's content, bumping the
// existing refcount or inserting proto (given refcount 1) as the new
// canonical instance. proto's child pointers must already be canonical.
//
// On first insertion, proto's children each gain one reference, since proto
// is a new parent edge pointing at them. Re-use of an already-interned node
// bumps only that node's own count: its children's reference counts already
// account for the edges proto's content describes, so no double count.
func (s *Store) intern(proto *Node) *Node {
	k := keyOf(proto)
	if existing, ok := s.table[k]; ok {
		existing.refcount++
		return existing
	}
	proto.refcount = 1
	proto.seq = s.nextSeq
	s.nextSeq++
	s.table[k] = proto
	refChild(proto.first)
	refChild(proto.rest)
	refChild(proto.inner)
	if proto.kind == KMacro {
		refChild(proto.body)
	}
	return proto
}

func refChild(n *Node) {
	if n != nil {
		n.refcount++
	}
}

// Ref bumps n's refcount and returns n, for callers that hand out a second
// owning reference to an already-interned node (e.g. reusing a subterm
// across two grammars).
func (s *Store) Ref(n *Node) *Node {
	if n == nil {
		return nil
	}
	n.refcount++
	return n
}

// Release drops one reference to n. When the count reaches zero the node is
// removed from the table and its children are released in turn, so an
// entire unreferenced subtree unwinds in one call (§3.1's lifecycle:
// hash-consed nodes are swept when their refcount drops to zero).
func (s *Store) Release(n *Node) {
	if n == nil {
		return
	}
	n.refcount--
	if n.refcount > 0 {
		return
	}
	delete(s.table, keyOf(n))
	s.Release(n.first)
	s.Release(n.rest)
	s.Release(n.inner)
	if n.kind == KMacro {
		s.Release(n.body)
	}
}

// Live reports the number of distinct nodes currently interned, for tests
// asserting that a teardown released everything it held.
func (s *Store) Live() int { return len(s.table) }

// Literal interns a keyword (or typed-placeholder) node. name must be
// non-empty; validator may be "" for a bare keyword.
func (s *Store) Literal(name string, caseInsensitive, ttyRequired bool, validator string) (*Node, error) {
	if name == "" {
		return nil, &rerr.GrammarParseError{Reason: "literal name must not be empty"}
	}
	return s.intern(&Node{
		kind: KLiteral, name: name, caseInsensitive: caseInsensitive,
		ttyRequired: ttyRequired, validator: validator,
	}), nil
}

// HelpLiteral interns a help-text literal at the given rank (used to attach
// long/short help bodies to a syntax line, §3.1).
func (s *Store) HelpLiteral(rank HelpRank, text string) *Node {
	return s.intern(&Node{kind: KLiteral, helpRank: rank, helpText: text})
}

// forceExactLiteral builds a synthesized exact-match literal for "the bare
// word w, no validator", flagged forceExact. It deliberately bypasses
// Literal's naming validation. Nothing in this package calls it; MatchMax
// returns the grammar's own literals instead.
func (s *Store) forceExactLiteral(w string) *Node {
	return s.intern(&Node{kind: KLiteral, name: w, forceExact: true})
}

// Varargs interns the singleton VARARGS node.
func (s *Store) Varargs() *Node {
	return s.intern(&Node{kind: KVarargs})
}

// Concat interns first ++ rest. first must not itself be KConcat (callers
// build right-associative chains via ConcatSlice). rest may be nil (first is
// the final slot).
func (s *Store) Concat(first, rest *Node) *Node {
	if first == nil {
		return rest
	}
	length := 1
	if rest != nil {
		length += rest.length
	}
	return s.intern(&Node{kind: KConcat, first: first, rest: rest, length: length})
}

// ConcatSlice builds a right-associative CONCAT chain over slots, the last
// slot innermost. An empty slice yields nil (epsilon).
func (s *Store) ConcatSlice(slots []*Node) *Node {
	var tail *Node
	for i := len(slots) - 1; i >= 0; i-- {
		tail = s.Concat(slots[i], tail)
	}
	return tail
}

// alternate interns first | rest, where first must not itself be KAlternate
// (use buildAlternate to fold a sorted, deduped slice into one).
func (s *Store) alternate(first, rest *Node) *Node {
	if rest == nil {
		return first
	}
	return s.intern(&Node{kind: KAlternate, first: first, rest: rest})
}

// Optional interns OPTIONAL(inner). Wrapping nil (epsilon) or an already
// optional node returns inner unchanged, keeping OPTIONAL(OPTIONAL(x)) from
// ever being constructed (it is equivalent to OPTIONAL(x)).
func (s *Store) Optional(inner *Node) *Node {
	if inner == nil || inner.kind == KOptional {
		return inner
	}
	return s.intern(&Node{kind: KOptional, inner: inner})
}

// Plus interns a bounded repetition of inner: min=1,max=0 is '+' (one or
// more), min=0,max=0 is '*' (zero or more, i.e. OPTIONAL(PLUS(1,0,inner))
// collapsed by the parser rather than a distinct representation).
func (s *Store) Plus(inner *Node, min, max int) (*Node, error) {
	if inner == nil {
		return nil, &rerr.GrammarParseError{Reason: "PLUS requires a non-empty operand"}
	}
	return s.intern(&Node{kind: KPlus, inner: inner, min: min, max: max}), nil
}

// Macro interns a named reference to body. Per invariant 5 (§3.1) name must
// be non-empty and all-uppercase, matching the datatype registry's naming
// rule for the same reason: both are global, user-visible identifier
// namespaces.
func (s *Store) Macro(name string, body *Node) (*Node, error) {
	if name == "" {
		return nil, &rerr.GrammarParseError{Reason: "macro name must not be empty"}
	}
	for _, r := range name {
		if r < 'A' || r > 'Z' {
			if r < '0' || r > '9' {
				return nil, &rerr.GrammarParseError{Reason: "macro name must be all-uppercase: " + name}
			}
		}
	}
	return s.intern(&Node{kind: KMacro, macroName: name, body: body}), nil
}
