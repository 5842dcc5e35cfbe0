// Package sat defines the propositional-satisfiability interface that
// the subterm-criterion and PFP/accessibility processors encode their
// search problems against (spec §9's injectable-interface design
// note: "the SAT solver used by individual processors" is supporting
// plumbing, treated as an external collaborator). No SAT/SMT library
// appears anywhere in the reference corpus (see DESIGN.md), so this
// package also ships the one concrete Solver the framework uses by
// default: a small in-process DPLL solver.
package sat

import (
	"context"
	"fmt"
)

// Var is a 1-based propositional variable identifier.
type Var int

// Literal is a variable or its negation: positive for the variable,
// negative for its negation. Literal 0 never occurs.
type Literal int

// Pos returns the positive literal for v.
func Pos(v Var) Literal { return Literal(v) }

// Neg returns the negative literal for v.
func Neg(v Var) Literal { return Literal(-v) }

// Var returns the variable underlying a literal.
func (l Literal) Var() Var { return Var(abs(int(l))) }

// Sign returns true if the literal is positive.
func (l Literal) Sign() bool { return l > 0 }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (l Literal) String() string {
	if l.Sign() {
		return fmt.Sprintf("x%d", l.Var())
	}
	return fmt.Sprintf("-x%d", l.Var())
}

// Formula is a CNF formula built up incrementally: the subterm
// criterion and PFP processors allocate one variable per (symbol,
// position) or per DP pair and then add clauses describing when a
// projection/ordering is consistent.
type Formula struct {
	nvars   int
	Clauses [][]Literal
}

// NewFormula returns an empty formula.
func NewFormula() *Formula {
	return &Formula{}
}

// NewVar allocates and returns a fresh variable.
func (f *Formula) NewVar() Var {
	f.nvars++
	return Var(f.nvars)
}

// NumVars returns how many variables have been allocated.
func (f *Formula) NumVars() int { return f.nvars }

// AddClause adds a disjunction of literals to the formula.
func (f *Formula) AddClause(lits ...Literal) {
	clause := make([]Literal, len(lits))
	copy(clause, lits)
	f.Clauses = append(f.Clauses, clause)
}

// AtLeastOne adds the clause requiring at least one of vars to hold.
func (f *Formula) AtLeastOne(vars []Var) {
	lits := make([]Literal, len(vars))
	for i, v := range vars {
		lits[i] = Pos(v)
	}
	f.AddClause(lits...)
}

// AtMostOne adds pairwise clauses forbidding two of vars from holding
// simultaneously (quadratic, fine for the small domains — per-symbol
// arities — this framework encodes).
func (f *Formula) AtMostOne(vars []Var) {
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			f.AddClause(Neg(vars[i]), Neg(vars[j]))
		}
	}
}

// ExactlyOne combines AtLeastOne and AtMostOne.
func (f *Formula) ExactlyOne(vars []Var) {
	f.AtLeastOne(vars)
	f.AtMostOne(vars)
}

// Model is a satisfying assignment, keyed by variable.
type Model map[Var]bool

// Value looks up a literal's truth value under the model.
func (m Model) Value(l Literal) bool {
	v := m[l.Var()]
	if !l.Sign() {
		return !v
	}
	return v
}

// Solver decides satisfiability of a Formula, returning a witness
// Model on success. Implementations may consult ctx for a deadline
// (spec §5: the SAT call is a suspension point bounded by the
// driver's wall-clock budget); a solver that times out returns
// (nil, false, ctx.Err()).
type Solver interface {
	Solve(ctx context.Context, f *Formula) (Model, bool, error)
}
