package grammar

import "strings"

// compare implements the total order over nodes (§4.3) that the merge
// algebra sorts alternatives by: nil (epsilon) sorts first, then VARARGS,
// and ALTERNATE sorts after everything else (two ALTERNATEs order by first
// branch, then by their remaining branches). Among the other kinds, a CONCAT
// is compared with any node by its head, ties broken toward the longer chain;
// OPTIONAL and PLUS are compared by their wrapped node, ties broken toward
// the wrapper; two literals order by name, a bare keyword before a
// same-named validator-bearing placeholder. Any residual tie falls back to
// each node's intern sequence number, which is stable for the lifetime of a
// Store.
func compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if a.kind == KVarargs || b.kind == KVarargs {
		switch {
		case a.kind == KVarargs && b.kind == KVarargs:
			return 0
		case a.kind == KVarargs:
			return -1
		default:
			return 1
		}
	}

	if a.kind == KAlternate || b.kind == KAlternate {
		switch {
		case a.kind == KAlternate && b.kind == KAlternate:
			return compareChain(a, b, KAlternate, func(n *Node) (*Node, *Node) { return n.first, n.rest })
		case a.kind == KAlternate:
			return 1
		default:
			return -1
		}
	}

	if a.kind == KConcat || b.kind == KConcat {
		return compareChain(a, b, KConcat, func(n *Node) (*Node, *Node) { return n.first, n.rest })
	}

	if a.kind == KOptional || b.kind == KOptional || a.kind == KPlus || b.kind == KPlus {
		return compareWrapped(a, b)
	}

	return compareLiteral(a, b)
}

// compareChain handles CONCAT and ALTERNATE uniformly: both are
// right-associative chains ordered by (head, then chain length/tail).
func compareChain(a, b *Node, kind Kind, parts func(*Node) (*Node, *Node)) int {
	aHead, aTail, aIs := headOf(a, kind, parts)
	bHead, bTail, bIs := headOf(b, kind, parts)

	if c := compare(aHead, bHead); c != 0 {
		return c
	}
	switch {
	case aIs && bIs:
		return compare(aTail, bTail)
	case aIs:
		return 1 // the chain is "longer" than its bare head, so it sorts after
	case bIs:
		return -1
	default:
		return tiebreak(a, b)
	}
}

func headOf(n *Node, kind Kind, parts func(*Node) (*Node, *Node)) (head, tail *Node, is bool) {
	if n != nil && n.kind == kind {
		h, t := parts(n)
		return h, t, true
	}
	return n, nil, false
}

// compareWrapped handles OPTIONAL and PLUS uniformly: both order by their
// wrapped node, ties broken toward the wrapper (x sorts before OPTIONAL(x)
// and before PLUS(x, ...)).
func compareWrapped(a, b *Node) int {
	aInner, aIs := unwrap(a)
	bInner, bIs := unwrap(b)
	if c := compare(aInner, bInner); c != 0 {
		return c
	}
	switch {
	case aIs && bIs:
		return tiebreak(a, b)
	case aIs:
		return 1
	case bIs:
		return -1
	default:
		return tiebreak(a, b)
	}
}

func unwrap(n *Node) (*Node, bool) {
	if n != nil && (n.kind == KOptional || n.kind == KPlus) {
		return n.inner, true
	}
	return n, false
}

func compareLiteral(a, b *Node) int {
	if c := strings.Compare(a.name, b.name); c != 0 {
		return c
	}
	aHasVal := a.validator != ""
	bHasVal := b.validator != ""
	if aHasVal != bHasVal {
		if aHasVal {
			return 1
		}
		return -1
	}
	return tiebreak(a, b)
}

func tiebreak(a, b *Node) int {
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}

// sortNodes sorts a slice of (possibly nil) nodes in place by compare,
// insertion-sort style: the lists merge() deals with are short (alternative
// counts per syntax line, not corpus-sized), so O(n^2) is the right
// trade-off against pulling in sort.Slice's interface overhead everywhere.
func sortNodes(nodes []*Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && compare(nodes[j-1], nodes[j]) > 0; j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
}
