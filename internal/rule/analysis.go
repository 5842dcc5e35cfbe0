package rule

import "github.com/hezzel/wanda-sub001/internal/term"

// Analysis gathers the boolean/map properties of a rule set that the
// DP framework's processors use as preconditions, per the rule
// analysis table in the spec. Analysis is computed once per rule set
// by Analyse and treated as read-only afterwards.
type Analysis struct {
	LeftLinear       bool
	FullyExtended    bool
	Algebraic        bool
	ArgumentFree     bool
	MetaSingle       bool
	BaseOutputs      bool
	EtaLong          bool
	Monomorphic      bool
	FullyFirstOrder  bool
	HasCriticalPairs bool
	// NonTerminationSound is false exactly when encoded-application
	// simplification (encodedapp.go) fired on this rule set: such a
	// simplification can lose termination of the full system, so the
	// non-terminator must be disabled whenever this is false (spec
	// §4.2's rule, enforced by the framework policy).
	NonTerminationSound bool
	// Arities is the max n such that f s1 ... sn occurs in any rule,
	// per symbol name.
	Arities map[string]int
}

// PrepareAndAnalyse runs encoded-application simplification on rs,
// then computes Analysis over the simplified set. It is the entry
// point the CLI's prove and query commands call, rather than Analyse
// directly, so
// that NonTerminationSound always reflects whether the simplification
// fired.
func PrepareAndAnalyse(rs Set) (Set, Analysis) {
	simplified, _, fired := SimplifyEncodedApplications(rs)
	a := Analyse(simplified)
	if fired {
		a.NonTerminationSound = false
	}
	return simplified, a
}

// Analyse computes every Analysis property for rs in one pass.
func Analyse(rs Set) Analysis {
	a := Analysis{
		LeftLinear:          true,
		FullyExtended:       true,
		Algebraic:           true,
		ArgumentFree:        true,
		MetaSingle:          true,
		BaseOutputs:         true,
		EtaLong:             true,
		Monomorphic:         true,
		FullyFirstOrder:     true,
		NonTerminationSound: true,
		Arities:             map[string]int{},
	}
	for _, r := range rs {
		if !isLeftLinear(r.Left) {
			a.LeftLinear = false
		}
		if !isFullyExtended(r.Left) {
			a.FullyExtended = false
		}
		if !isAlgebraic(r.Left) {
			a.Algebraic = false
		}
		if !isArgumentFree(r.Left) {
			a.ArgumentFree = false
		}
		if !isMetaSingle(r.Left) {
			a.MetaSingle = false
		}
		if !r.Left.Type().IsBase() {
			a.BaseOutputs = false
		}
		if !isEtaLong(r.Left) || !isEtaLong(r.Right) {
			a.EtaLong = false
		}
		if r.Left.Type().HasTypeVariables() || r.Right.Type().HasTypeVariables() {
			a.Monomorphic = false
		}
		if !isFirstOrder(r.Left) || !isFirstOrder(r.Right) {
			a.FullyFirstOrder = false
		}
		recordArities(r.Left, a.Arities)
		recordArities(r.Right, a.Arities)
	}
	a.HasCriticalPairs = hasCriticalPairs(rs)
	return a
}

// IsLinear reports whether t is left-linear: no meta-variable occurs
// more than once. Exposed for restrict's formative-rules precondition
// check, which must test this on a single dependency pair's
// left-hand side rather than a whole rule set's aggregate.
func IsLinear(t term.Term) bool { return isLeftLinear(t) }

// IsFullyExtended reports whether every meta-variable in t is applied
// to exactly the bound variables currently in scope. See IsLinear.
func IsFullyExtended(t term.Term) bool { return isFullyExtended(t) }

func isLeftLinear(t term.Term) bool {
	seen := map[int]bool{}
	ok := true
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch n := t.(type) {
		case term.Application:
			walk(n.Fun)
			walk(n.Arg)
		case term.Abstraction:
			walk(n.Body)
		case term.MetaApplication:
			if seen[n.Meta.Index] {
				ok = false
			}
			seen[n.Meta.Index] = true
			for _, a := range n.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return ok
}

// isFullyExtended: every meta-variable in the term is applied to
// exactly the bound variables currently in scope (distinct, matching
// the binders enclosing it), per spec's "fully extended" property.
func isFullyExtended(t term.Term) bool {
	ok := true
	var walk func(term.Term, []term.Variable)
	walk = func(t term.Term, scope []term.Variable) {
		switch n := t.(type) {
		case term.Application:
			walk(n.Fun, scope)
			walk(n.Arg, scope)
		case term.Abstraction:
			walk(n.Body, append(scope, n.Bound))
		case term.MetaApplication:
			if len(n.Args) != len(scope) {
				ok = false
				return
			}
			seen := map[int]bool{}
			for i, a := range n.Args {
				v, isVar := a.(term.Variable)
				if !isVar || v.Index != scope[i].Index || seen[v.Index] {
					ok = false
					return
				}
				seen[v.Index] = true
			}
		}
	}
	walk(t, nil)
	return ok
}

// isAlgebraic: no abstractions except those of the eta-shape \x.Z[x].
func isAlgebraic(t term.Term) bool {
	ok := true
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch n := t.(type) {
		case term.Application:
			walk(n.Fun)
			walk(n.Arg)
		case term.Abstraction:
			if !isEtaShape(n) {
				ok = false
			}
			walk(n.Body)
		case term.MetaApplication:
			for _, a := range n.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return ok
}

// isEtaShape matches \x.Z[x] exactly.
func isEtaShape(abs term.Abstraction) bool {
	m, ok := abs.Body.(term.MetaApplication)
	if !ok || len(m.Args) != 1 {
		return false
	}
	v, ok := m.Args[0].(term.Variable)
	return ok && v.Index == abs.Bound.Index
}

func isArgumentFree(t term.Term) bool {
	ok := true
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch n := t.(type) {
		case term.Application:
			walk(n.Fun)
			walk(n.Arg)
		case term.Abstraction:
			walk(n.Body)
		case term.MetaApplication:
			if len(n.Args) != 0 {
				ok = false
			}
		}
	}
	walk(t)
	return ok
}

func isMetaSingle(t term.Term) bool {
	ok := true
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch n := t.(type) {
		case term.Application:
			walk(n.Fun)
			walk(n.Arg)
		case term.Abstraction:
			walk(n.Body)
		case term.MetaApplication:
			if len(n.Args) > 1 {
				ok = false
			}
		}
	}
	walk(t)
	return ok
}

// isEtaLong: every subterm of functional type is itself an
// abstraction or a meta-variable applied enough times to reach its
// own declared arity (i.e. cannot be extended by one more argument
// without leaving a meta-application).
func isEtaLong(t term.Term) bool {
	ok := true
	var walk func(term.Term)
	walk = func(t term.Term) {
		if term.IsFunctional(t.Type()) {
			switch n := t.(type) {
			case term.Abstraction:
				// fine, recurse below
				_ = n
			case term.MetaApplication:
				// fine: still accepting more args, eta-long at this
				// level means the surrounding context applies it
				// fully; nothing further to check here
			default:
				ok = false
			}
		}
		switch n := t.(type) {
		case term.Application:
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
	walk(t)
	return ok
}

func isFirstOrder(t term.Term) bool {
	ok := true
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch n := t.(type) {
		case term.MetaApplication:
			if len(n.Args) != 0 {
				ok = false
				return
			}
		case term.Abstraction:
			ok = false
			return
		case term.Application:
			walk(n.Fun)
			walk(n.Arg)
		}
	}
	walk(t)
	return ok
}

func recordArities(t term.Term, arities map[string]int) {
	switch n := t.(type) {
	case term.Application:
		head, args := term.Spine(n)
		if c, ok := head.(term.Constant); ok {
			if len(args) > arities[c.Name] {
				arities[c.Name] = len(args)
			}
		}
		for _, a := range args {
			recordArities(a, arities)
		}
	case term.Abstraction:
		recordArities(n.Body, arities)
	case term.MetaApplication:
		for _, a := range n.Args {
			recordArities(a, arities)
		}
	}
}

// hasCriticalPairs returns whether the left-hand sides of any two
// different rules in rs can be matched against each other at the
// root, a cheap over-approximation of the existence of critical
// pairs used only to decide whether the system could be
// non-orthogonal (relevant to counterexample lifting in the
// first-order splitter).
func hasCriticalPairs(rs Set) bool {
	for i := range rs {
		for j := range rs {
			if i == j {
				continue
			}
			if _, ok := Match(rs[i].Left, rs[j].Left); ok {
				return true
			}
			if _, ok := Match(rs[j].Left, rs[i].Left); ok {
				return true
			}
		}
	}
	return false
}
