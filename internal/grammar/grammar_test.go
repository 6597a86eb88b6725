package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-recli/recli/internal/datatype"
)

func lit(t *testing.T, s *Store, name string) *Node {
	t.Helper()
	n, err := s.Literal(name, false, false, "")
	require.NoError(t, err)
	return n
}

func concat(s *Store, nodes ...*Node) *Node {
	return s.ConcatSlice(nodes)
}

func TestMergeIdempotent(t *testing.T) {
	s := NewStore()
	a := concat(s, lit(t, s, "show"), lit(t, s, "version"))

	merged, err := s.Merge(a, a)
	require.NoError(t, err)
	require.Same(t, a, merged)
}

func TestMergeCommonPrefixFactoring(t *testing.T) {
	s := NewStore()
	a := concat(s, lit(t, s, "show"), lit(t, s, "version"))
	b := concat(s, lit(t, s, "show"), lit(t, s, "interfaces"))

	merged, err := s.Merge(a, b)
	require.NoError(t, err)
	require.Equal(t, KConcat, merged.Kind())
	require.Equal(t, "show", merged.First().Name())
	require.Equal(t, KAlternate, merged.Rest().Kind())
}

func TestMergeOptionalCollapse(t *testing.T) {
	s := NewStore()
	a := concat(s, lit(t, s, "show"), lit(t, s, "version"))
	b := lit(t, s, "show")

	merged, err := s.Merge(a, b)
	require.NoError(t, err)
	require.Equal(t, KConcat, merged.Kind())
	require.Equal(t, "show", merged.First().Name())
	require.Equal(t, KOptional, merged.Rest().Kind())
	require.Equal(t, "version", merged.Rest().Inner().Name())
}

func TestMergeCommutative(t *testing.T) {
	s1 := NewStore()
	a1 := concat(s1, lit(t, s1, "show"), lit(t, s1, "version"))
	b1 := concat(s1, lit(t, s1, "show"), lit(t, s1, "interfaces"))
	ab, err := s1.Merge(a1, b1)
	require.NoError(t, err)

	s2 := NewStore()
	a2 := concat(s2, lit(t, s2, "show"), lit(t, s2, "version"))
	b2 := concat(s2, lit(t, s2, "show"), lit(t, s2, "interfaces"))
	ba, err := s2.Merge(b2, a2)
	require.NoError(t, err)

	require.Equal(t, Print(ab), Print(ba))
}

func TestMergeRejectsVarargsInAlternation(t *testing.T) {
	s := NewStore()
	a := concat(s, lit(t, s, "show"), s.Varargs())
	b := concat(s, lit(t, s, "show"), lit(t, s, "version"))

	_, err := s.Merge(a, b)
	require.Error(t, err)
}

func TestCheckFullMatch(t *testing.T) {
	e := NewEngine(datatype.NewRegistry())
	n := concat(e.Store, lit(t, e.Store, "show"), lit(t, e.Store, "version"))

	require.Equal(t, 2, e.Check(n, []string{"show", "version"}))
}

func TestCheckPrefixNeedsMore(t *testing.T) {
	e := NewEngine(datatype.NewRegistry())
	n := concat(e.Store, lit(t, e.Store, "show"), lit(t, e.Store, "version"))

	r := e.Check(n, []string{"show"})
	require.Greater(t, r, 1)
}

func TestCheckFailureIndex(t *testing.T) {
	e := NewEngine(datatype.NewRegistry())
	n := concat(e.Store, lit(t, e.Store, "show"), lit(t, e.Store, "version"))

	r := e.Check(n, []string{"show", "bogus"})
	require.Less(t, r, 0)
}

func TestCheckOptional(t *testing.T) {
	e := NewEngine(datatype.NewRegistry())
	opt := e.Store.Optional(lit(t, e.Store, "force"))
	n := concat(e.Store, lit(t, e.Store, "delete"), opt)

	require.Equal(t, 1, e.Check(n, []string{"delete"}))
	require.Equal(t, 2, e.Check(n, []string{"delete", "force"}))
}

func TestSkipProducesResidual(t *testing.T) {
	e := NewEngine(datatype.NewRegistry())
	n := concat(e.Store, lit(t, e.Store, "show"), lit(t, e.Store, "version"))

	residual, err := e.Skip(n, []string{"show"})
	require.NoError(t, err)
	require.Equal(t, "version", residual.Name())
}

func TestPrefixWordsFiltersByTyped(t *testing.T) {
	e := NewEngine(datatype.NewRegistry())
	alt, err := e.Store.Merge(lit(t, e.Store, "show"), lit(t, e.Store, "set"))
	require.NoError(t, err)

	cands := e.PrefixWords(alt, "sh")
	require.Len(t, cands, 1)
	require.Equal(t, "show", cands[0].Word)
}

func TestPrintRendersConcatOverAlternation(t *testing.T) {
	e := NewEngine(datatype.NewRegistry())
	alt, err := e.Store.Merge(lit(t, e.Store, "show"), lit(t, e.Store, "set"))
	require.NoError(t, err)
	n := concat(e.Store, lit(t, e.Store, "do"), alt)

	text := Print(n)
	require.NotEmpty(t, text)
	require.Equal(t, "do (set|show)", text)
}

func TestRefcountBalance(t *testing.T) {
	s := NewStore()
	a := lit(t, s, "show")
	require.Equal(t, 1, a.Refcount())

	b := s.Ref(a)
	require.Same(t, a, b)
	require.Equal(t, 2, a.Refcount())

	s.Release(a)
	require.Equal(t, 1, a.Refcount())
	s.Release(a)
	require.Equal(t, 0, s.Live())
}
