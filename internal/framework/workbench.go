// Package framework implements the dependency-pair framework driver
// described in the framework-driver section of the specification: a
// stack of open DP problems, worked down in processor order until
// every problem is discharged (YES), some problem proves
// non-terminating (NO), or no processor can make further progress
// (MAYBE). Grounded on the teacher's cobra-driven cmd package for the
// surrounding plumbing conventions (flag parsing, logrus fields) and
// on the academic tool's DependencyFramework class for the processor
// ordering itself.
package framework

import (
	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/rule"
)

// StaticMode selects whether a DP problem is worked dynamically or
// with one of the two static (accessibility-aware) flavours.
type StaticMode int

const (
	// Dynamic is the default, cheapest approach.
	Dynamic StaticMode = iota
	// Static restricts dependency pairs to the static-DP subset.
	Static
	// StaticAccessible additionally enables the accessible subterm
	// criterion.
	StaticAccessible
)

// Problem is one entry on the driver's stack: a dependency-pair set
// together with the (possibly already-restricted) rule set it may
// still draw on, and whether it has already been SCC-split this
// round.
type Problem struct {
	Ps           dep.Set
	Rs           rule.Set
	Static       StaticMode
	GraphOptimal bool
}

// Clone returns a problem with its own Ps/Rs slices so that a
// processor can build a replacement without aliasing the original
// slices. The *dep.Pair values and the rules' terms are shared with
// the original, not copied.
func (p Problem) Clone() Problem {
	return Problem{Ps: p.Ps.Clone(), Rs: append(rule.Set(nil), p.Rs...), Static: p.Static, GraphOptimal: p.GraphOptimal}
}

// Workbench owns the stack of open problems plus the read-only
// alphabet shared by all of them. Processors never see the Workbench
// directly; they receive a borrowed Problem and return replacement
// problems that the driver pushes.
type Workbench struct {
	Alphabet *alphabet.Alphabet
	stack    []Problem
}

// NewWorkbench seeds the stack with a single initial problem.
func NewWorkbench(alph *alphabet.Alphabet, initial Problem) *Workbench {
	return &Workbench{Alphabet: alph, stack: []Problem{initial}}
}

// Empty reports whether the stack has been fully discharged.
func (w *Workbench) Empty() bool { return len(w.stack) == 0 }

// Pop removes and returns the top problem.
func (w *Workbench) Pop() Problem {
	n := len(w.stack)
	p := w.stack[n-1]
	w.stack = w.stack[:n-1]
	return p
}

// Push adds a problem back onto the stack (used both for "no progress,
// retry later" and for a processor's split-off sub-problems).
func (w *Workbench) Push(p Problem) { w.stack = append(w.stack, p) }

// PushAll pushes problems in order, so that indices later in split
// (e.g. SCC index ascending) are popped first -- matching the spec's
// ordering guarantee that split-off problems are pushed in
// deterministic ascending order.
func (w *Workbench) PushAll(ps []Problem) {
	for _, p := range ps {
		w.Push(p)
	}
}
