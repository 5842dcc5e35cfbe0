// Package depgraph approximates the dependency graph over a set of
// dependency pairs and extracts its strongly connected components,
// grounded on dependencygraph.h/.cpp.
package depgraph

import (
	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

const (
	pseudoAbs = "#ABS"
	pseudoVar = "#VAR"
)

// Graph is the over-approximated dependency graph for one DP problem:
// an edge p1 -> p2 means an instance of p1's right-hand side might
// rewrite to an instance of p2's left-hand side.
type Graph struct {
	alph  *alphabet.Alphabet
	rules rule.Set

	pairs     dep.Set
	index     map[int]int // pair id -> row/column index
	matrix    [][]bool
	reachable [][]bool

	defined     map[string]bool
	noneatingPos map[string][]bool
	canReduceTo  map[[2]string]bool
}

// New builds the graph for pairs over rules, computing the
// non-eating and reduce-to tables first (dependencygraph.h's
// constructor order: get_eating_info, get_reduction_info, then the
// connection matrix, then reachability).
func New(alph *alphabet.Alphabet, pairs dep.Set, rules rule.Set) *Graph {
	g := &Graph{
		alph:    alph,
		rules:   rules,
		pairs:   pairs,
		index:   map[int]int{},
		defined: dep.DefinedSymbols(rules),
	}
	for i, p := range pairs {
		g.index[p.ID()] = i
	}
	g.computeEatingInfo()
	g.computeReductionInfo()
	g.computeMatrix()
	g.CalculateReachable()
	return g
}

// Pairs returns the graph's current pair set (live, shared slice).
func (g *Graph) Pairs() dep.Set { return g.pairs }

func (g *Graph) computeMatrix() {
	n := len(g.pairs)
	g.matrix = make([][]bool, n)
	for i := range g.matrix {
		g.matrix[i] = make([]bool, n)
		for j := range g.matrix[i] {
			g.matrix[i][j] = g.ConnectionPossible(g.pairs[i], g.pairs[j])
		}
	}
}

// CalculateReachable recomputes the reachability array from the
// current connection matrix via a flood fill from every node.
func (g *Graph) CalculateReachable() {
	n := len(g.matrix)
	g.reachable = make([][]bool, n)
	for i := 0; i < n; i++ {
		g.reachable[i] = make([]bool, n)
		var stack []int
		for j := 0; j < n; j++ {
			if g.matrix[i][j] {
				g.reachable[i][j] = true
				stack = append(stack, j)
			}
		}
		for len(stack) > 0 {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for k := 0; k < n; k++ {
				if g.matrix[last][k] && !g.reachable[i][k] {
					g.reachable[i][k] = true
					stack = append(stack, k)
				}
			}
		}
	}
}

// GetSCC returns one strongly connected component that lies on a
// cycle (the first self-reachable index found), or nil if none
// remains.
func (g *Graph) GetSCC() dep.Set {
	n := len(g.pairs)
	i := 0
	for ; i < n && !g.reachable[i][i]; i++ {
	}
	if i == n {
		return nil
	}
	var out dep.Set
	for j := 0; j < n; j++ {
		if g.reachable[i][j] && g.reachable[j][i] {
			out = append(out, g.pairs[j])
		}
	}
	return out
}

// GetSCCs extracts every SCC that lies on a cycle, by repeatedly
// pulling one out with GetSCC and marking its members as not
// self-reachable so the next call skips them, restoring the
// reachability flags afterwards (mirrors get_sccs's redo bookkeeping).
func (g *Graph) GetSCCs() []dep.Set {
	var result []dep.Set
	var redo []int
	scc := g.GetSCC()
	for len(scc) > 0 {
		for i, p := range g.pairs {
			for _, q := range scc {
				if p.ID() == q.ID() {
					g.reachable[i][i] = false
					redo = append(redo, i)
				}
			}
		}
		result = append(result, scc)
		scc = g.GetSCC()
	}
	for _, i := range redo {
		g.reachable[i][i] = true
	}
	return result
}

// RemovePairs deletes dead from the graph's pair set, severing every
// edge to or from them, and recomputes reachability.
func (g *Graph) RemovePairs(dead dep.Set) {
	remove := map[int]bool{}
	for _, p := range dead {
		remove[p.ID()] = true
	}
	n := len(g.pairs)
	var kept dep.Set
	keepIdx := make([]int, 0, n)
	for i, p := range g.pairs {
		if !remove[p.ID()] {
			kept = append(kept, p)
			keepIdx = append(keepIdx, i)
		}
	}
	newMatrix := make([][]bool, len(keepIdx))
	for a, i := range keepIdx {
		newMatrix[a] = make([]bool, len(keepIdx))
		for b, j := range keepIdx {
			newMatrix[a][b] = g.matrix[i][j]
		}
	}
	g.pairs = kept
	g.matrix = newMatrix
	g.index = map[int]int{}
	for i, p := range kept {
		g.index[p.ID()] = i
	}
	g.CalculateReachable()
}

func (g *Graph) isConstructor(name string) bool {
	return !g.defined[name]
}

func freeVarIndices(t term.Term) map[int]bool {
	out := map[int]bool{}
	for idx := range term.FreeVariables(t) {
		out[idx] = true
	}
	return out
}

func containsAll(super, sub map[int]bool) bool {
	for k := range sub {
		if !super[k] {
			return false
		}
	}
	return true
}
