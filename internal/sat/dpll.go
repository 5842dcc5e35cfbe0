package sat

import (
	"context"

	"github.com/bits-and-blooms/bitset"
)

// DPLLSolver is a small backtracking solver with unit propagation; it
// does no pure-literal elimination. It is not competitive with a production
// SAT engine, but the formulas this framework generates (one variable
// per symbol/argument-position or per DP pair) are small enough that
// a textbook DPLL loop suffices; see DESIGN.md for why no ecosystem
// SAT library was available to wire in instead.
type DPLLSolver struct{}

// Solve implements Solver.
func (DPLLSolver) Solve(ctx context.Context, f *Formula) (Model, bool, error) {
	assigned := bitset.New(uint(f.nvars + 1))
	value := bitset.New(uint(f.nvars + 1))
	ok, err := dpll(ctx, f, assigned, value)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	model := Model{}
	for v := 1; v <= f.nvars; v++ {
		model[Var(v)] = value.Test(uint(v))
	}
	return model, true, nil
}

func dpll(ctx context.Context, f *Formula, assigned, value *bitset.BitSet) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}
	// Unit propagation and conflict detection.
	for {
		progressed := false
		for _, clause := range f.Clauses {
			status, unit := clauseStatus(clause, assigned, value)
			switch status {
			case clauseFalse:
				return false, nil
			case clauseUnit:
				assigned.Set(uint(unit.Var()))
				setValue(value, unit.Var(), unit.Sign())
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	// Check for a fully-satisfying, fully-assigned state.
	nextVar, done := firstUnassigned(f, assigned)
	if done {
		return true, nil
	}
	for _, trial := range [2]bool{true, false} {
		assignedCopy := assigned.Clone()
		valueCopy := value.Clone()
		assignedCopy.Set(uint(nextVar))
		setValue(valueCopy, nextVar, trial)
		if consistent(f, assignedCopy, valueCopy) {
			ok, err := dpll(ctx, f, assignedCopy, valueCopy)
			if err != nil {
				return false, err
			}
			if ok {
				*assigned = *assignedCopy
				*value = *valueCopy
				return true, nil
			}
		}
	}
	return false, nil
}

type clauseState int

const (
	clauseUndetermined clauseState = iota
	clauseTrue
	clauseFalse
	clauseUnit
)

func clauseStatus(clause []Literal, assigned, value *bitset.BitSet) (clauseState, Literal) {
	var unassignedCount int
	var unassignedLit Literal
	for _, lit := range clause {
		v := uint(lit.Var())
		if !assigned.Test(v) {
			unassignedCount++
			unassignedLit = lit
			continue
		}
		lv := value.Test(v)
		if lv == lit.Sign() {
			return clauseTrue, 0
		}
	}
	switch unassignedCount {
	case 0:
		return clauseFalse, 0
	case 1:
		return clauseUnit, unassignedLit
	default:
		return clauseUndetermined, 0
	}
}

func consistent(f *Formula, assigned, value *bitset.BitSet) bool {
	for _, clause := range f.Clauses {
		status, _ := clauseStatus(clause, assigned, value)
		if status == clauseFalse {
			return false
		}
	}
	return true
}

func firstUnassigned(f *Formula, assigned *bitset.BitSet) (Var, bool) {
	for v := 1; v <= f.nvars; v++ {
		if !assigned.Test(uint(v)) {
			return Var(v), false
		}
	}
	return 0, true
}

func setValue(value *bitset.BitSet, v Var, b bool) {
	if b {
		value.Set(uint(v))
	} else {
		value.Clear(uint(v))
	}
}
