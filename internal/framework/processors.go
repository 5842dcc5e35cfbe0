package framework

import (
	"context"

	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/depgraph"
	"github.com/hezzel/wanda-sub001/internal/orderpair"
	"github.com/hezzel/wanda-sub001/internal/restrict"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/subterm"
)

// outcome is what a single processor reports after being tried
// against one problem.
type outcome struct {
	// Committed is true iff the processor made progress (including
	// just setting GraphOptimal) and Split should replace the popped
	// problem on the workbench.
	Committed bool
	// Discharged is true iff the problem is now proved terminating;
	// when set, Split is ignored (nothing is pushed back).
	Discharged bool
	// Split is the replacement problem(s) to push, in order, when
	// Committed && !Discharged.
	Split []Problem
}

// graphProcessor re-splits prob's dependency graph into SCCs. Runs at
// most once per problem (guarded by GraphOptimal): pairs outside any
// cycle are dropped outright, and each remaining SCC becomes its own
// problem. If the graph is already a single SCC spanning every pair,
// nothing changes except GraphOptimal being set, which still counts as
// committing so later processors get their turn without the driver
// re-running the graph computation on every iteration.
func graphProcessor(prob Problem, d *depDriver) outcome {
	if prob.GraphOptimal || d.policy.DisableGraph {
		return outcome{}
	}
	g := depgraph.New(d.alph, prob.Ps, prob.Rs)
	sccs := g.GetSCCs()

	if len(sccs) == 1 && len(sccs[0]) == len(prob.Ps) {
		next := prob
		next.GraphOptimal = true
		return outcome{Committed: true, Split: []Problem{next}}
	}

	var split []Problem
	for _, scc := range sccs {
		if len(scc) == 0 {
			continue
		}
		split = append(split, Problem{Ps: scc, Rs: prob.Rs, Static: prob.Static, GraphOptimal: true})
	}
	if len(split) == 0 {
		return outcome{Committed: true, Discharged: true}
	}
	return outcome{Committed: true, Split: split}
}

func emptyProcessor(prob Problem) outcome {
	if len(prob.Ps) == 0 {
		return outcome{Committed: true, Discharged: true}
	}
	return outcome{}
}

func subtermProcessor(ctx context.Context, prob Problem, d *depDriver) outcome {
	if d.policy.DisableSubterm {
		return outcome{}
	}
	result, ok := subterm.Apply(ctx, prob.Ps, d.alph, d.solver)
	if !ok || len(result.Strict) == 0 {
		return outcome{}
	}
	return afterRemoval(prob, result.Strict)
}

func staticAccessibleSubtermProcessor(ctx context.Context, prob Problem, d *depDriver) outcome {
	if d.policy.DisableSubterm || prob.Static != StaticAccessible || d.ordering == nil {
		return outcome{}
	}
	result, ok := subterm.ApplyAccessible(ctx, prob.Ps, d.alph, d.solver, *d.ordering)
	if !ok || len(result.Strict) == 0 {
		return outcome{}
	}
	return afterRemoval(prob, result.Strict)
}

func formativeProcessor(prob Problem, d *depDriver) outcome {
	if d.policy.DisableFormative {
		return outcome{}
	}
	restricted := restrict.FormativeRules(prob.Ps, prob.Rs)
	if sameRuleSet(restricted, prob.Rs) {
		return outcome{}
	}
	next := prob
	next.Rs = restricted
	return outcome{Committed: true, Split: []Problem{next}}
}

// reductionPairProcessor builds an ordering problem from prob (running
// the usable-rules restriction first unless disabled) and asks the
// engine to orient it; any dependency pairs it manages to orient
// strictly are removed.
func reductionPairProcessor(prob Problem, d *depDriver) outcome {
	if d.policy.DisableOrderpair || d.engine == nil {
		return outcome{}
	}
	usable := prob.Rs
	if !d.policy.DisableUsable {
		usable = restrict.UsableRules(prob.Ps, prob.Rs)
	}
	problem := orderpair.Build(prob.Ps, usable, d.alph, prob.Static != Dynamic, d.policy.UWRT)
	oriented, ok := d.engine.Orient(problem)
	if !ok || len(oriented) == 0 {
		return outcome{}
	}
	return afterRemoval(prob, oriented)
}

// afterRemoval builds the outcome for a processor that strictly
// discharges the given pairs from prob.
func afterRemoval(prob Problem, dead dep.Set) outcome {
	remaining := prob.Ps.Remove(dead)
	next := prob
	next.Ps = remaining
	next.GraphOptimal = false
	if len(remaining) == 0 {
		return outcome{Committed: true, Discharged: true}
	}
	return outcome{Committed: true, Split: []Problem{next}}
}

func sameRuleSet(a, b rule.Set) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
