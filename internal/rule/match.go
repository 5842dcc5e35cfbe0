package rule

import "github.com/hezzel/wanda-sub001/internal/term"

// Match attempts to find a meta-substitution gamma such that
// pattern*gamma = target. Patterns are assumed to be fully extended
// at meta-variable occurrences (each Z[...] applies Z to distinct
// bound variables currently in scope), which is what makes this
// first-order-flavoured matcher decidable. In a non-extended pattern
// (e.g. Z applied to a non-variable subterm) Z is still bound to the
// whole target, and its non-variable arguments are ignored when the
// binding is instantiated.
func Match(pattern, target term.Term) (term.MetaSubstitution, bool) {
	sub := term.MetaSubstitution{}
	if matchInto(pattern, target, sub) {
		return sub, true
	}
	return nil, false
}

func matchInto(pattern, target term.Term, sub term.MetaSubstitution) bool {
	switch p := pattern.(type) {
	case term.MetaApplication:
		if existing, ok := sub[p.Meta.Index]; ok {
			return term.Equals(existing(p.Args), target)
		}
		capturedArgs := append([]term.Term{}, p.Args...)
		capturedTarget := target
		sub[p.Meta.Index] = func(callArgs []term.Term) term.Term {
			result := capturedTarget
			for i, a := range capturedArgs {
				if v, ok := a.(term.Variable); ok && i < len(callArgs) {
					result = term.Substitute(result, v.Index, callArgs[i])
				}
			}
			return result
		}
		return true
	case term.Variable:
		t2, ok := target.(term.Variable)
		return ok && t2.Index == p.Index
	case term.Constant:
		t2, ok := target.(term.Constant)
		return ok && t2.Name == p.Name && t2.Typ.Equals(p.Typ)
	case term.Application:
		t2, ok := target.(term.Application)
		return ok && matchInto(p.Fun, t2.Fun, sub) && matchInto(p.Arg, t2.Arg, sub)
	case term.Abstraction:
		t2, ok := target.(term.Abstraction)
		if !ok {
			return false
		}
		renamedBody := term.Substitute(t2.Body, t2.Bound.Index, p.Bound)
		return matchInto(p.Body, renamedBody, sub)
	default:
		return false
	}
}
