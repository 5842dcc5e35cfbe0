package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/depgraph"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var natT = term.BaseType{Name: "nat"}

// Two dependency pairs that trivially connect to each other and to
// themselves (both sides the nullary constant g#, so the edge test
// only compares head names and types), forming a single 2-cycle SCC.
func twoCyclePairs() dep.Set {
	g := term.Constant{Name: "g#", Typ: natT}
	p1 := dep.NewPair(g, g, dep.StyleNormal)
	p2 := dep.NewPair(g, g, dep.StyleNormal)
	return dep.Set{p1, p2}
}

func TestGetSCCsFindsCycle(t *testing.T) {
	alph := alphabet.New()
	alph.Declare("g", natT)
	rs := rule.Set{}

	gr := depgraph.New(alph, twoCyclePairs(), rs)
	sccs := gr.GetSCCs()
	require.Len(t, sccs, 1)
	require.Len(t, sccs[0], 2)
}

func TestRemovePairsShrinksGraph(t *testing.T) {
	alph := alphabet.New()
	alph.Declare("g", natT)
	rs := rule.Set{}

	pairs := twoCyclePairs()
	gr := depgraph.New(alph, pairs, rs)
	gr.RemovePairs(dep.Set{pairs[0]})
	require.Len(t, gr.Pairs(), 1)
}
