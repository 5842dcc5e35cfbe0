package rule

import (
	"context"
	"sort"

	"github.com/hezzel/wanda-sub001/internal/sat"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// SortOrdering is a total preorder on base sorts, represented as an
// integer rank per sort (spec §9's design note: collapse the
// original's map<string,int> sortordering into the same shape here).
// Ge(a,b) holds iff rank(a) >= rank(b); Gt(a,b) iff rank(a) > rank(b).
type SortOrdering struct {
	rank map[string]int
}

// Ge reports whether a >= b in the ordering.
func (o SortOrdering) Ge(a, b string) bool { return o.rank[a] >= o.rank[b] }

// Gt reports whether a > b in the ordering.
func (o SortOrdering) Gt(a, b string) bool { return o.rank[a] > o.rank[b] }

// occurrence records one place a meta-variable Z occurs inside an
// argument s_i of some rule's left-hand side, together with the
// polarity (true = positive) under which it was reached and the sort
// of s_i's own output (kappa in the spec's definition).
type occurrence struct {
	targetSort string // kappa: output sort of s_i
	occSort    string // kappa': sort at Z's occurrence
	positive   bool
}

// ComputePFP searches, via the given solver, for a sort ordering
// under which rs is plain-function-passing: every free meta-variable
// of every rule's right-hand side occurs in some left-hand-side
// argument at an accessible position (spec §4.2). It returns
// (ordering, true) on success, or (zero value, false) if no such
// ordering exists or the search timed out.
func ComputePFP(ctx context.Context, rs Set, solver sat.Solver) (SortOrdering, bool) {
	sorts := collectSorts(rs)
	if len(sorts) == 0 {
		return SortOrdering{}, true
	}
	f := sat.NewFormula()
	ge := map[[2]string]sat.Var{}
	for _, a := range sorts {
		for _, b := range sorts {
			if a == b {
				continue
			}
			ge[[2]string{a, b}] = f.NewVar()
		}
	}
	// Totality.
	for _, a := range sorts {
		for _, b := range sorts {
			if a >= b {
				continue
			}
			f.AddClause(sat.Pos(ge[[2]string{a, b}]), sat.Pos(ge[[2]string{b, a}]))
		}
	}
	// Transitivity.
	for _, a := range sorts {
		for _, b := range sorts {
			for _, c := range sorts {
				if a == b || b == c || a == c {
					continue
				}
				f.AddClause(
					negLit(f, ge, a, b),
					negLit(f, ge, b, c),
					posLit(f, ge, a, c),
				)
			}
		}
	}
	// Per-rule accessibility requirement.
	for _, r := range rs {
		head, args := term.Spine(r.Left)
		if _, ok := head.(term.Constant); !ok {
			continue
		}
		for zIdx := range term.FreeMetaVariables(r.Right) {
			var occVars []sat.Var
			for _, s := range args {
				for _, occ := range findOccurrences(s, zIdx) {
					occVars = append(occVars, occurrenceVar(f, ge, occ))
				}
			}
			if len(occVars) == 0 {
				return SortOrdering{}, false
			}
			lits := make([]sat.Literal, len(occVars))
			for i, v := range occVars {
				lits[i] = sat.Pos(v)
			}
			f.AddClause(lits...)
		}
	}
	model, ok, err := solver.Solve(ctx, f)
	if err != nil || !ok {
		return SortOrdering{}, false
	}
	return buildOrdering(sorts, ge, model), true
}

func posLit(f *sat.Formula, ge map[[2]string]sat.Var, a, b string) sat.Literal {
	if a == b {
		// trivially true: encode as a fresh always-true literal via a
		// unit clause on a dedicated variable.
		v := f.NewVar()
		f.AddClause(sat.Pos(v))
		return sat.Pos(v)
	}
	return sat.Pos(ge[[2]string{a, b}])
}

func negLit(f *sat.Formula, ge map[[2]string]sat.Var, a, b string) sat.Literal {
	if a == b {
		v := f.NewVar()
		f.AddClause(sat.Neg(v))
		return sat.Pos(v)
	}
	return sat.Neg(ge[[2]string{a, b}])
}

// occurrenceVar returns a Tseitin variable equivalent to "occ's
// accessibility constraint holds under the chosen ordering".
func occurrenceVar(f *sat.Formula, ge map[[2]string]sat.Var, occ occurrence) sat.Var {
	occVar := f.NewVar()
	kappa, kappaPrime := occ.targetSort, occ.occSort
	if occ.positive {
		if kappa == kappaPrime {
			f.AddClause(sat.Pos(occVar))
			return occVar
		}
		geVar := ge[[2]string{kappa, kappaPrime}]
		f.AddClause(sat.Neg(occVar), sat.Pos(geVar))
		f.AddClause(sat.Neg(geVar), sat.Pos(occVar))
		return occVar
	}
	// Negative occurrence requires strict kappa > kappa'.
	if kappa == kappaPrime {
		f.AddClause(sat.Neg(occVar))
		return occVar
	}
	ge1 := ge[[2]string{kappa, kappaPrime}]
	ge2 := ge[[2]string{kappaPrime, kappa}]
	f.AddClause(sat.Neg(occVar), sat.Pos(ge1))
	f.AddClause(sat.Neg(occVar), sat.Neg(ge2))
	f.AddClause(sat.Pos(occVar), sat.Neg(ge1), sat.Pos(ge2))
	return occVar
}

// findOccurrences walks s tracking polarity (true = positive,
// flipping at every application argument position) and records one
// occurrence per position where meta-variable zIdx is applied.
func findOccurrences(s term.Term, zIdx int) []occurrence {
	var out []occurrence
	target := baseSort(term.Output(s.Type()))
	var walk func(term.Term, bool)
	walk = func(t term.Term, pos bool) {
		switch n := t.(type) {
		case term.Application:
			walk(n.Fun, pos)
			walk(n.Arg, !pos)
		case term.Abstraction:
			walk(n.Body, pos)
		case term.MetaApplication:
			if n.Meta.Index == zIdx {
				out = append(out, occurrence{
					targetSort: target,
					occSort:    baseSort(term.Output(n.Type())),
					positive:   pos,
				})
			}
			for _, a := range n.Args {
				walk(a, pos)
			}
		}
	}
	walk(s, true)
	return out
}

func baseSort(t term.Type) string {
	if b, ok := t.(term.BaseType); ok {
		return b.Name
	}
	return t.String()
}

func collectSorts(rs Set) []string {
	seen := map[string]bool{}
	var out []string
	var walkType func(term.Type)
	walkType = func(t term.Type) {
		switch tt := t.(type) {
		case term.BaseType:
			if !seen[tt.Name] {
				seen[tt.Name] = true
				out = append(out, tt.Name)
			}
		case term.ArrowType:
			walkType(tt.Left)
			walkType(tt.Right)
		}
	}
	var walkTerm func(term.Term)
	walkTerm = func(t term.Term) {
		walkType(t.Type())
		switch n := t.(type) {
		case term.Application:
			walkTerm(n.Fun)
			walkTerm(n.Arg)
		case term.Abstraction:
			walkTerm(n.Body)
		case term.MetaApplication:
			for _, a := range n.Args {
				walkTerm(a)
			}
		}
	}
	for _, r := range rs {
		walkTerm(r.Left)
		walkTerm(r.Right)
	}
	sort.Strings(out)
	return out
}

func buildOrdering(sorts []string, ge map[[2]string]sat.Var, model sat.Model) SortOrdering {
	geVal := func(a, b string) bool {
		if a == b {
			return true
		}
		return model[ge[[2]string{a, b}]]
	}
	// Condense into equivalence classes, then rank classes by the
	// total order Ge induces between them.
	classOf := map[string]int{}
	var reps []string
	for _, s := range sorts {
		placed := false
		for ci, rep := range reps {
			if geVal(s, rep) && geVal(rep, s) {
				classOf[s] = ci
				placed = true
				break
			}
		}
		if !placed {
			classOf[s] = len(reps)
			reps = append(reps, s)
		}
	}
	order := make([]int, len(reps))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return !geVal(reps[order[i]], reps[order[j]])
	})
	rankOfClass := make([]int, len(reps))
	for rank, ci := range order {
		rankOfClass[ci] = rank
	}
	result := SortOrdering{rank: map[string]int{}}
	for _, s := range sorts {
		result.rank[s] = rankOfClass[classOf[s]]
	}
	return result
}
