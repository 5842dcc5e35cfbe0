package framework

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/orderpair"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/sat"
)

// Verdict is the driver's final answer, mirroring the three lines the
// output layer is allowed to print.
type Verdict int

const (
	Maybe Verdict = iota
	Yes
	No
)

func (v Verdict) String() string {
	switch v {
	case Yes:
		return "YES"
	case No:
		return "NO"
	default:
		return "MAYBE"
	}
}

// depDriver bundles the read-only resources every processor needs:
// the alphabet, a SAT solver, a reduction-pair engine, and (once
// computed) the sort ordering the static-accessible subterm criterion
// consumes.
type depDriver struct {
	alph     *alphabet.Alphabet
	solver   sat.Solver
	engine   orderpair.Engine
	ordering *rule.SortOrdering
	policy   Policy
	log      *logrus.Entry
}

// Driver runs the dependency-pair framework loop described in the
// framework-driver section: pop a problem, try processors in a fixed
// order, push whatever a successful processor produces, and repeat
// until the workbench is empty (YES) or a processor has reported
// non-termination (NO) or nothing commits on an otherwise-unworkable
// problem (MAYBE).
type Driver struct {
	d  *depDriver
	wb *Workbench
}

// New builds a Driver over rs, starting from the dynamic dependency
// pairs constructed from analysis.
func New(alph *alphabet.Alphabet, rs rule.Set, analysis rule.Analysis, solver sat.Solver, engine orderpair.Engine, policy Policy) *Driver {
	pairs := dep.Construct(rs, alph, analysis, dep.Dynamic)
	initial := Problem{Ps: pairs, Rs: rs, Static: Dynamic}
	return &Driver{
		d: &depDriver{
			alph:   alph,
			solver: solver,
			engine: engine,
			policy: policy,
			log:    logrus.WithField("component", "framework"),
		},
		wb: NewWorkbench(alph, initial),
	}
}

// Run executes the outer loop until the workbench empties or a
// non-terminating witness is found by a caller-supplied non-terminator
// (passed in as checkNonTerm, since internal/nonterm depends on
// internal/framework's Problem type and importing it directly here
// would cycle). checkNonTerm may be nil to skip the non-termination
// check entirely.
func (drv *Driver) Run(ctx context.Context, checkNonTerm func(rule.Set) bool) Verdict {
	if !drv.d.policy.DisableNonTerm && checkNonTerm != nil && checkNonTerm(drv.wb.stack[0].Rs) {
		return No
	}

	for !drv.wb.Empty() {
		select {
		case <-ctx.Done():
			return Maybe
		default:
		}

		prob := drv.wb.Pop()
		out, discharged := drv.tryProcessors(ctx, prob)
		if discharged {
			continue
		}
		if out == nil {
			// No processor made progress: push prob back per the
			// driver's "push back and report MAYBE" rule, then stop.
			// The dynamic-first/static-fallback restart (escalating
			// prob.Static) is the caller's responsibility, since it
			// requires re-running PFP and eta-expansion outside this
			// package's scope.
			drv.wb.Push(prob)
			return Maybe
		}
		drv.wb.PushAll(out)
	}
	return Yes
}

// tryProcessors attempts every processor on prob in the fixed order
// from the framework-driver section, returning the replacement
// problems from the first one that commits (nil, false if none did;
// nil, true if the problem was fully discharged).
func (drv *Driver) tryProcessors(ctx context.Context, prob Problem) ([]Problem, bool) {
	if o := graphProcessor(prob, drv.d); o.Committed {
		return commit(o)
	}
	if o := emptyProcessor(prob); o.Committed {
		return commit(o)
	}
	if o := subtermProcessor(ctx, prob, drv.d); o.Committed {
		return commit(o)
	}
	if o := staticAccessibleSubtermProcessor(ctx, prob, drv.d); o.Committed {
		return commit(o)
	}
	if o := formativeProcessor(prob, drv.d); o.Committed {
		return commit(o)
	}
	if o := reductionPairProcessor(prob, drv.d); o.Committed {
		return commit(o)
	}
	return nil, false
}

func commit(o outcome) ([]Problem, bool) {
	if o.Discharged {
		return nil, true
	}
	return o.Split, false
}
