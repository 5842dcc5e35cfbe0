package term

// FreeVariables collects the bound-variable occurrences of t that are
// not captured by an enclosing abstraction, keyed by index.
func FreeVariables(t Term) map[int]Variable {
	fv := map[int]Variable{}
	collectFreeVariables(t, fv)
	return fv
}

func collectFreeVariables(t Term, out map[int]Variable) {
	switch n := t.(type) {
	case Variable:
		out[n.Index] = n
	case Constant:
	case Application:
		collectFreeVariables(n.Fun, out)
		collectFreeVariables(n.Arg, out)
	case Abstraction:
		inner := map[int]Variable{}
		collectFreeVariables(n.Body, inner)
		delete(inner, n.Bound.Index)
		for k, v := range inner {
			out[k] = v
		}
	case MetaApplication:
		for _, a := range n.Args {
			collectFreeVariables(a, out)
		}
	}
}

// FreeMetaVariables collects the meta-variables occurring in t, keyed
// by index.
func FreeMetaVariables(t Term) map[int]MetaVariable {
	fmv := map[int]MetaVariable{}
	collectFreeMetaVariables(t, fmv)
	return fmv
}

func collectFreeMetaVariables(t Term, out map[int]MetaVariable) {
	switch n := t.(type) {
	case Variable, Constant:
	case Application:
		collectFreeMetaVariables(n.Fun, out)
		collectFreeMetaVariables(n.Arg, out)
	case Abstraction:
		collectFreeMetaVariables(n.Body, out)
	case MetaApplication:
		out[n.Meta.Index] = n.Meta
		for _, a := range n.Args {
			collectFreeMetaVariables(a, out)
		}
	}
}

// BoundVariables returns the set of de-facto bound variables
// introduced by abstractions anywhere in t (used by eta/fully-
// extended checks to tell a meta-application's arguments apart from
// arbitrary subterms).
func BoundVariables(t Term) map[int]Variable {
	bv := map[int]Variable{}
	var walk func(Term)
	walk = func(t Term) {
		switch n := t.(type) {
		case Application:
			walk(n.Fun)
			walk(n.Arg)
		case Abstraction:
			bv[n.Bound.Index] = n.Bound
			walk(n.Body)
		case MetaApplication:
			for _, a := range n.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return bv
}
