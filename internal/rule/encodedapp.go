package rule

import "github.com/hezzel/wanda-sub001/internal/term"

// SimplifyEncodedApplications detects function symbols whose only
// defining rule has the shape "f Z x1 ... xn => Z x1 ... xn" (Z and
// each x_i a distinct, zero-argument meta-variable) and whose every
// other occurrence in the rule set is applied to exactly that same
// arity. Such an f is a named re-export of application; it is
// rewritten out by replacing every "f v s1 ... sn" with "v s1 ... sn"
// throughout the rule set.
//
// This may lose termination of the full system but never of its
// first-order part (spec §4.2); PrepareAndAnalyse sets
// Analysis.NonTerminationSound to false whenever this fires, and the
// prove command then disables non-termination detection.
func SimplifyEncodedApplications(rs Set) (Set, []string, bool) {
	var removed []string
	fired := false
	changed := true
	for changed {
		changed = false
		candidates := encodedApplicationSymbols(rs)
		for _, name := range candidates {
			rs = removeEncodedApplicationSymbol(rs, name)
			removed = append(removed, name)
			fired = true
			changed = true
		}
	}
	return rs, removed, fired
}

func encodedApplicationSymbols(rs Set) []string {
	byHead := map[string][]MatchRule{}
	for _, r := range rs {
		head, _ := term.Spine(r.Left)
		if c, ok := head.(term.Constant); ok {
			byHead[c.Name] = append(byHead[c.Name], r)
		}
	}
	var out []string
	for name, defs := range byHead {
		if len(defs) != 1 {
			continue
		}
		arity, ok := matchesApplyShape(defs[0])
		if !ok {
			continue
		}
		if !everyOtherOccurrenceHasArity(rs, name, arity) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// matchesApplyShape checks that r is exactly "f Z x1 ... xn => Z x1
// ... xn" and returns f's declared arity (n+1).
func matchesApplyShape(r MatchRule) (int, bool) {
	_, largs := term.Spine(r.Left)
	if len(largs) < 1 {
		return 0, false
	}
	var metaOrder []int
	seen := map[int]bool{}
	for _, a := range largs {
		m, ok := a.(term.MetaApplication)
		if !ok || len(m.Args) != 0 || seen[m.Meta.Index] {
			return 0, false
		}
		seen[m.Meta.Index] = true
		metaOrder = append(metaOrder, m.Meta.Index)
	}
	rhead, rargs := term.Spine(r.Right)
	rm, ok := rhead.(term.MetaApplication)
	if !ok || len(rm.Args) != 0 || rm.Meta.Index != metaOrder[0] {
		return 0, false
	}
	if len(rargs) != len(metaOrder)-1 {
		return 0, false
	}
	for i, a := range rargs {
		m, ok := a.(term.MetaApplication)
		if !ok || len(m.Args) != 0 || m.Meta.Index != metaOrder[i+1] {
			return 0, false
		}
	}
	return len(largs), true
}

func everyOtherOccurrenceHasArity(rs Set, name string, arity int) bool {
	ok := true
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch n := t.(type) {
		case term.Application:
			head, args := term.Spine(n)
			if c, isConst := head.(term.Constant); isConst && c.Name == name && len(args) != arity {
				ok = false
			}
			walk(n.Fun)
			walk(n.Arg)
		case term.Abstraction:
			walk(n.Body)
		case term.MetaApplication:
			for _, a := range n.Args {
				walk(a)
			}
		}
	}
	for _, r := range rs {
		walk(r.Left)
		walk(r.Right)
	}
	return ok
}

func removeEncodedApplicationSymbol(rs Set, name string) Set {
	out := make(Set, 0, len(rs))
	for _, r := range rs {
		if head, _ := term.Spine(r.Left); isConstNamed(head, name) {
			continue // drop the defining rule itself
		}
		out = append(out, MatchRule{
			Name:  r.Name,
			Left:  collapseApply(r.Left, name),
			Right: collapseApply(r.Right, name),
		})
	}
	return out
}

func isConstNamed(t term.Term, name string) bool {
	c, ok := t.(term.Constant)
	return ok && c.Name == name
}

func collapseApply(t term.Term, name string) term.Term {
	switch n := t.(type) {
	case term.Application:
		fun := collapseApply(n.Fun, name)
		arg := collapseApply(n.Arg, name)
		rebuilt := term.Application{Fun: fun, Arg: arg}
		head, args := term.Spine(rebuilt)
		if isConstNamed(head, name) && len(args) >= 1 {
			return term.ApplyArgs(args[0], args[1:])
		}
		return rebuilt
	case term.Abstraction:
		return term.Abstraction{Bound: n.Bound, Body: collapseApply(n.Body, name)}
	case term.MetaApplication:
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = collapseApply(a, name)
		}
		return term.MetaApplication{Meta: n.Meta, Args: args}
	default:
		return t
	}
}
