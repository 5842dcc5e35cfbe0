package term

// Beta is the single rewrite rule the core framework knows about
// outside of user-supplied rules. It is applied explicitly by the
// non-terminator and by rule-analysis's beta-saturation; ordinary DP
// framework reasoning treats it as implicit in the rewrite relation.
type Beta struct{}

// ApplicableTop returns whether t is a beta-redex at the root, i.e.
// an application whose function is an abstraction.
func (Beta) ApplicableTop(t Term) bool {
	app, ok := t.(Application)
	if !ok {
		return false
	}
	_, ok = app.Fun.(Abstraction)
	return ok
}

// ApplyTop performs a single beta step at the root. If t is not a
// redex, it is returned unchanged (a no-op, not an error).
func (Beta) ApplyTop(t Term) Term {
	app, ok := t.(Application)
	if !ok {
		return t
	}
	abs, ok := app.Fun.(Abstraction)
	if !ok {
		return t
	}
	return Substitute(abs.Body, abs.Bound.Index, app.Arg)
}

// BetaStepAt applies a single beta step at the given position,
// reporting whether the position was a redex. Positions that address
// a non-redex leave the term unchanged, matching the "no-op on a
// non-redex" error policy.
func BetaStepAt(t Term, pos Position) (Term, bool) {
	sub, ok := Subterm(t, pos)
	if !ok {
		return t, false
	}
	if !(Beta{}).ApplicableTop(sub) {
		return t, false
	}
	reduced := (Beta{}).ApplyTop(sub)
	result, ok := Replace(t, pos, reduced)
	return result, ok
}

// NormalizeBetaOnce drives Beta to normal form using a simple
// depth-most (innermost) strategy, mirroring the generic Rule::
// normalise default from the original tool: only terminating when
// the term actually is beta-normalizing, which every simply-typed
// term is.
func NormalizeBetaOnce(t Term) Term {
	switch n := t.(type) {
	case Application:
		fun := NormalizeBetaOnce(n.Fun)
		arg := NormalizeBetaOnce(n.Arg)
		redex := Application{Fun: fun, Arg: arg}
		if (Beta{}).ApplicableTop(redex) {
			return NormalizeBetaOnce((Beta{}).ApplyTop(redex))
		}
		return redex
	case Abstraction:
		return Abstraction{Bound: n.Bound, Body: NormalizeBetaOnce(n.Body)}
	case MetaApplication:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = NormalizeBetaOnce(a)
		}
		return MetaApplication{Meta: n.Meta, Args: args}
	default:
		return t
	}
}
