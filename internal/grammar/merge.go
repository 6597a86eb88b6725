package grammar

import "github.com/go-recli/recli/internal/rerr"

// Merge combines a and b into the smallest grammar that accepts everything
// either accepted (§4.3). It does not take ownership of a or b — the
// result may structurally share nodes with either input — so a caller
// replacing a stored grammar with the merged result is responsible for
// Release-ing the superseded root(s) itself.
func (s *Store) Merge(a, b *Node) (*Node, error) {
	if a == b {
		return s.Ref(a), nil
	}

	aSlots, bSlots := toSlots(a), toSlots(b)
	if k := commonPrefixLen(aSlots, bSlots); k > 0 {
		return s.mergePrefixed(aSlots, bSlots, k)
	}

	alts := sortDedup(append(flattenAlternatives(a), flattenAlternatives(b)...))
	return factorAlternatives(s, alts)
}

// mergePrefixed implements the longest-common-prefix rule: strip the k
// slots a and b agree on, merge whatever remains, and rebuild the shared
// prefix around the merged tail.
func (s *Store) mergePrefixed(aSlots, bSlots []*Node, k int) (*Node, error) {
	aTail := s.ConcatSlice(aSlots[k:])
	bTail := s.ConcatSlice(bSlots[k:])

	var mergedTail *Node
	switch {
	case aTail == nil && bTail == nil:
		mergedTail = nil
	case aTail == nil:
		if hasVarargsTail(bTail) {
			return nil, &rerr.GrammarMergeError{Reason: "VARARGS cannot appear inside an optionality"}
		}
		mergedTail = s.Optional(bTail)
	case bTail == nil:
		if hasVarargsTail(aTail) {
			return nil, &rerr.GrammarMergeError{Reason: "VARARGS cannot appear inside an optionality"}
		}
		mergedTail = s.Optional(aTail)
	default:
		var err error
		mergedTail, err = s.Merge(aTail, bTail)
		if err != nil {
			return nil, err
		}
	}

	result := mergedTail
	for i := k - 1; i >= 0; i-- {
		result = s.Concat(aSlots[i], result)
	}
	return result, nil
}

// toSlots decomposes a right-associative CONCAT chain into its ordered
// terminal slots. A non-CONCAT node (including nil/epsilon) decomposes to
// zero or one slot.
func toSlots(n *Node) []*Node {
	var out []*Node
	for n != nil && n.kind == KConcat {
		out = append(out, n.first)
		n = n.rest
	}
	if n != nil {
		out = append(out, n)
	}
	return out
}

func commonPrefixLen(a, b []*Node) int {
	k := 0
	for k < len(a) && k < len(b) && a[k] == b[k] {
		k++
	}
	return k
}

// hasVarargsTail reports whether n's terminal slot is VARARGS — the shape
// disallowed as an alternation branch or as the operand of OPTIONAL (§3.1).
func hasVarargsTail(n *Node) bool {
	slots := toSlots(n)
	return len(slots) > 0 && slots[len(slots)-1].kind == KVarargs
}

// flattenAlternatives expands n into its list of top-level alternatives. A
// non-ALTERNATE node (including nil/epsilon) is a single-element list.
func flattenAlternatives(n *Node) []*Node {
	if n == nil || n.kind != KAlternate {
		return []*Node{n}
	}
	var out []*Node
	cur := n
	for cur != nil && cur.kind == KAlternate {
		out = append(out, cur.first)
		cur = cur.rest
	}
	if cur != nil {
		out = append(out, cur)
	}
	return out
}

// sortDedup returns nodes sorted by compare with consecutive pointer-equal
// duplicates collapsed. Since the store hash-conses, pointer equality after
// sorting is exactly content equality.
func sortDedup(nodes []*Node) []*Node {
	cp := make([]*Node, len(nodes))
	copy(cp, nodes)
	sortNodes(cp)
	out := cp[:0:0]
	for i, n := range cp {
		if i == 0 || n != out[len(out)-1] {
			out = append(out, n)
		}
	}
	return out
}

// buildAlternate folds a sorted, deduped alternative list into one node: a
// lone alternative collapses to itself, a leading nil (epsilon) collapses
// the rest into OPTIONAL(...), per "x | epsilon === [x]" (§3.1).
func buildAlternate(s *Store, sorted []*Node) (*Node, error) {
	hasEpsilon := len(sorted) > 0 && sorted[0] == nil
	rest := sorted
	if hasEpsilon {
		rest = sorted[1:]
	}
	if len(rest) == 0 {
		return nil, nil
	}
	if len(rest) > 1 || hasEpsilon {
		for _, alt := range rest {
			if hasVarargsTail(alt) {
				return nil, &rerr.GrammarMergeError{Reason: "VARARGS cannot appear inside an alternation"}
			}
		}
	}
	var node *Node
	for i := len(rest) - 1; i >= 0; i-- {
		node = s.alternate(rest[i], node)
	}
	if hasEpsilon {
		if hasVarargsTail(node) {
			return nil, &rerr.GrammarMergeError{Reason: "VARARGS cannot appear inside an optionality"}
		}
		node = s.Optional(node)
	}
	return node, nil
}

// factorAlternatives groups adjacent alternatives (sorted, so same-headed
// ones are already contiguous) that share a one-slot prefix, factors that
// slot out, and recurses on the remaining tails — the same longest-prefix
// idea mergePrefixed applies to a pair, generalized to an n-way list.
func factorAlternatives(s *Store, alts []*Node) (*Node, error) {
	groups := groupByHead(alts)
	built := make([]*Node, 0, len(groups))
	for _, g := range groups {
		if len(g) == 1 {
			built = append(built, g[0])
			continue
		}
		head := headSlot(g[0])
		tails := make([]*Node, 0, len(g))
		for _, alt := range g {
			tails = append(tails, tailAfterHead(s, alt))
		}
		mergedTail, err := factorAlternatives(s, sortDedup(tails))
		if err != nil {
			return nil, err
		}
		built = append(built, s.Concat(head, mergedTail))
	}
	return buildAlternate(s, sortDedup(built))
}

func groupByHead(alts []*Node) [][]*Node {
	var groups [][]*Node
	for _, alt := range alts {
		h := headSlot(alt)
		if len(groups) > 0 && headSlot(groups[len(groups)-1][0]) == h {
			last := len(groups) - 1
			groups[last] = append(groups[last], alt)
			continue
		}
		groups = append(groups, []*Node{alt})
	}
	return groups
}

func headSlot(n *Node) *Node {
	slots := toSlots(n)
	if len(slots) == 0 {
		return nil
	}
	return slots[0]
}

func tailAfterHead(s *Store, n *Node) *Node {
	slots := toSlots(n)
	if len(slots) <= 1 {
		return nil
	}
	return s.ConcatSlice(slots[1:])
}
