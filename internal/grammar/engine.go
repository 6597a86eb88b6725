package grammar

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/go-recli/recli/internal/datatype"
	"github.com/go-recli/recli/internal/rerr"
)

var fold = cases.Fold()

func foldCase(s string) string { return fold.String(s) }

// Engine binds a Store to a datatype.Registry so that check/match_word can
// resolve a literal's attached validator. A session typically owns one
// Engine over one Store for its whole lifetime.
type Engine struct {
	Store *Store
	Types *datatype.Registry
}

// NewEngine returns an Engine over a fresh Store and the given registry. A
// nil registry is legal; validator-bearing literals will then never match.
func NewEngine(types *datatype.Registry) *Engine {
	return &Engine{Store: NewStore(), Types: types}
}

// Alternate folds nodes into a single grammar via repeated Merge, the way
// a top-level syntax file combines one line per command into one DAG. A
// nil slice yields the epsilon node.
func (e *Engine) Alternate(nodes []*Node) (*Node, error) {
	var acc *Node
	for _, n := range nodes {
		if acc == nil {
			acc = n
			continue
		}
		merged, err := e.Store.Merge(acc, n)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

// MatchWord reports whether word satisfies literal n: exact sense requires
// an outright match (full command-line matching, §4.4); non-exact sense
// tests whether n is a completion candidate for the partial word the user
// has typed so far (tab-completion / "?" help, §4.6).
func (e *Engine) MatchWord(n *Node, word string, exact bool) bool {
	if n == nil || n.kind != KLiteral {
		return false
	}
	return e.matchWordSense(n, word, exact)
}

func (e *Engine) matchWordSense(n *Node, word string, exact bool) bool {
	if n.validator != "" {
		v := n.lookupValidator(e.Types)
		if v == nil {
			return false
		}
		if !exact {
			return true // the typed text can't be prefix-checked against an opaque validator
		}
		return v(word) == nil
	}
	target, candidate := n.name, word
	if n.caseInsensitive {
		target, candidate = foldCase(target), foldCase(candidate)
	}
	if exact {
		return target == candidate
	}
	return strings.HasPrefix(target, candidate)
}

// nullable reports whether n can match zero words.
func nullable(n *Node) bool {
	switch {
	case n == nil:
		return true
	case n.kind == KOptional:
		return true
	case n.kind == KPlus:
		return n.min == 0
	case n.kind == KConcat:
		return nullable(n.first) && nullable(n.rest)
	case n.kind == KAlternate:
		return nullable(n.first) || nullable(n.rest)
	case n.kind == KMacro:
		return nullable(n.body)
	default:
		return false
	}
}

// minWords returns the fewest words that could ever satisfy n completely.
func minWords(n *Node) int {
	switch {
	case n == nil:
		return 0
	case n.kind == KLiteral:
		return 1
	case n.kind == KVarargs:
		return 0
	case n.kind == KConcat:
		return minWords(n.first) + minWords(n.rest)
	case n.kind == KAlternate:
		a, b := minWords(n.first), minWords(n.rest)
		if a < b {
			return a
		}
		return b
	case n.kind == KOptional:
		return 0
	case n.kind == KPlus:
		if n.min == 0 {
			return 0
		}
		return minWords(n.inner) * n.min
	case n.kind == KMacro:
		return minWords(n.body)
	default:
		return 0
	}
}

// Check walks n against words and returns a signed verdict (§4.4):
//
//	0 < r <= len(words): n fully matched the first r words
//	r > len(words):      n is a valid, not-yet-complete prefix of words,
//	                      needing r words total to complete
//	r == 0:               n matched zero words (words is empty, or n is
//	                      optional and its inner grammar rejected words)
//	r < 0:                n rejected words at index -r-1
func (e *Engine) Check(n *Node, words []string) int {
	switch {
	case n == nil:
		return 0
	case n.kind == KLiteral:
		if len(words) == 0 {
			return 1
		}
		if e.matchWordSense(n, words[0], true) {
			return 1
		}
		return -1
	case n.kind == KVarargs:
		return len(words)
	case n.kind == KConcat:
		return e.checkConcat(n, words)
	case n.kind == KAlternate:
		r1 := e.Check(n.first, words)
		r2 := e.Check(n.rest, words)
		return betterVerdict(r1, r2)
	case n.kind == KOptional:
		if len(words) == 0 {
			return 0
		}
		r := e.Check(n.inner, words)
		if r < 0 {
			return 0
		}
		return r
	case n.kind == KPlus:
		return e.checkPlus(n, words)
	case n.kind == KMacro:
		return e.Check(n.body, words)
	default:
		return 0
	}
}

func (e *Engine) checkConcat(n *Node, words []string) int {
	r1 := e.Check(n.first, words)
	if r1 < 0 {
		return r1
	}
	if r1 > len(words) {
		return r1 + minWords(n.rest)
	}
	r2 := e.Check(n.rest, words[r1:])
	if r2 < 0 {
		return r2 - r1 // r2 is already negative; r2 - r1 shifts its -(index+1) past the r1 words matched here
	}
	if r2 == 0 {
		return r1
	}
	return r1 + r2
}

func (e *Engine) checkPlus(n *Node, words []string) int {
	consumed, count := 0, 0
	for consumed < len(words) {
		if n.max > 0 && count >= n.max {
			break
		}
		remaining := words[consumed:]
		r := e.Check(n.inner, remaining)
		if r <= 0 {
			break
		}
		if r > len(remaining) {
			return consumed + r
		}
		consumed += r
		count++
	}
	if count < n.min {
		if consumed < len(words) {
			return -(consumed + 1)
		}
		return consumed + minWords(n.inner)*(n.min-count)
	}
	return consumed
}

// betterVerdict picks the more useful of two ALTERNATE branch verdicts: an
// outright match or a shorter valid prefix beats a longer one, any valid
// verdict beats a failure, and between two failures the one that matched
// further into words (reported a more negative index) wins, since it
// pinpoints the more specific rejection (§4.4).
func betterVerdict(a, b int) int {
	aOK, bOK := a >= 0, b >= 0
	switch {
	case aOK && bOK:
		if a <= b {
			return a
		}
		return b
	case aOK:
		return a
	case bOK:
		return b
	default:
		if a < b {
			return a
		}
		return b
	}
}

// Skip consumes exactly words against n and returns the residual grammar —
// what remains to be matched after words — for pushing as a new session
// context once Check has confirmed words is a valid, not-yet-complete
// prefix of n. It returns a CheckFailure if words is not such a prefix.
func (e *Engine) Skip(n *Node, words []string) (*Node, error) {
	residual, consumed, err := e.skip(n, words)
	if err != nil {
		return nil, err
	}
	if consumed != len(words) {
		return nil, &rerr.CheckFailure{ArgvIndex: consumed, Reason: "not a valid command prefix"}
	}
	return residual, nil
}

func (e *Engine) skip(n *Node, words []string) (*Node, int, error) {
	if len(words) == 0 {
		return n, 0, nil
	}
	switch n.kind {
	case KLiteral:
		if !e.matchWordSense(n, words[0], true) {
			return nil, 0, &rerr.CheckFailure{ArgvIndex: 0, Reason: "word does not match " + n.name}
		}
		return nil, 1, nil
	case KVarargs:
		return nil, len(words), nil
	case KConcat:
		fr, fc, err := e.skip(n.first, words)
		if err != nil {
			return nil, fc, err
		}
		if fr != nil {
			return e.Store.Concat(fr, n.rest), fc, nil
		}
		if fc >= len(words) {
			return n.rest, fc, nil
		}
		rr, rc, err := e.skip(n.rest, words[fc:])
		if err != nil {
			return nil, fc + rc, err
		}
		return rr, fc + rc, nil
	case KAlternate:
		rFirst := e.Check(n.first, words)
		rRest := e.Check(n.rest, words)
		if betterVerdict(rFirst, rRest) == rFirst {
			return e.skip(n.first, words)
		}
		return e.skip(n.rest, words)
	case KOptional:
		if e.Check(n.inner, words) < 0 {
			return nil, 0, nil
		}
		return e.skip(n.inner, words)
	case KPlus:
		return e.skipPlus(n, words)
	case KMacro:
		return e.skip(n.body, words)
	default:
		return nil, 0, nil
	}
}

func (e *Engine) skipPlus(n *Node, words []string) (*Node, int, error) {
	consumed := 0
	for consumed < len(words) {
		remaining := words[consumed:]
		r := e.Check(n.inner, remaining)
		if r <= 0 {
			break
		}
		if r > len(remaining) {
			fr, fc, err := e.skip(n.inner, remaining)
			if err != nil {
				return nil, consumed + fc, err
			}
			consumed += fc
			if fr != nil {
				return e.Store.Concat(fr, n), consumed, nil
			}
			continue
		}
		consumed += r
	}
	return n, consumed, nil
}

// MatchMax returns the first literal of n's frontier (in FrontierWords
// order) that word matches exactly, and whether one was found. It looks at
// one word only; it does not build a matched-prefix-plus-residual grammar,
// and no other package calls it.
func (e *Engine) MatchMax(n *Node, word string) (*Node, bool) {
	for _, c := range e.FrontierWords(n) {
		if c.literal == nil {
			continue
		}
		if e.matchWordSense(c.literal, word, true) {
			return c.literal, true
		}
	}
	return nil, false
}

// Candidate is one completion/help entry in a node's frontier — the set of
// words immediately acceptable without consuming anything else first.
type Candidate struct {
	Word            string
	Validator       string
	CaseInsensitive bool
	HelpRank        HelpRank
	HelpText        string

	literal *Node
}

// FrontierWords returns n's frontier (its "first set"): deduped, sorted by
// Word, used both for tab completion and for "?" help enumeration (§4.6).
func (e *Engine) FrontierWords(n *Node) []Candidate {
	out := map[string]Candidate{}
	collectFrontier(n, out)
	list := make([]Candidate, 0, len(out))
	for _, c := range out {
		list = append(list, c)
	}
	sortCandidates(list)
	return list
}

func sortCandidates(list []Candidate) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j-1].Word > list[j].Word; j-- {
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
}

func collectFrontier(n *Node, out map[string]Candidate) {
	if n == nil {
		return
	}
	switch n.kind {
	case KLiteral:
		if n.helpRank != HelpNone {
			return
		}
		word := n.name
		if n.validator != "" {
			word = "<" + n.validator + ">"
		}
		out[n.name+"\x00"+n.validator] = Candidate{
			Word: word, Validator: n.validator, CaseInsensitive: n.caseInsensitive,
			HelpRank: n.helpRank, HelpText: n.helpText, literal: n,
		}
	case KVarargs:
		out["\x00\x00varargs"] = Candidate{Word: "..."}
	case KConcat:
		collectFrontier(n.first, out)
		if nullable(n.first) {
			collectFrontier(n.rest, out)
		}
	case KAlternate:
		collectFrontier(n.first, out)
		collectFrontier(n.rest, out)
	case KOptional:
		collectFrontier(n.inner, out)
	case KPlus:
		collectFrontier(n.inner, out)
	case KMacro:
		collectFrontier(n.body, out)
	}
}

// PrefixWords filters FrontierWords(n) to those whose Word begins with
// typed (case-folded per candidate where the underlying literal is
// case-insensitive); typed == "" returns the full frontier.
func (e *Engine) PrefixWords(n *Node, typed string) []Candidate {
	all := e.FrontierWords(n)
	if typed == "" {
		return all
	}
	out := make([]Candidate, 0, len(all))
	for _, c := range all {
		target, candidate := c.Word, typed
		if c.CaseInsensitive {
			target, candidate = foldCase(target), foldCase(candidate)
		}
		if strings.HasPrefix(target, candidate) {
			out = append(out, c)
		}
	}
	return out
}
