package term

import "sync/atomic"

// freshCounter seeds fresh variable indices well above anything a
// parser is expected to allocate directly, so capture-avoiding
// renaming never collides with a user-supplied index.
var freshCounter atomic.Int64

func init() {
	freshCounter.Store(1 << 30)
}

// FreshVariable returns a variable guaranteed not to occur anywhere
// else in the system, of the given type.
func FreshVariable(typ Type) Variable {
	return Variable{Index: int(freshCounter.Add(1)), Typ: typ}
}

// FreshMetaVariable returns a meta-variable guaranteed not to occur
// anywhere else in the system, of the given type. Used when a
// processor needs to extend both sides of a pair or rule with a brand
// new placeholder, e.g. headmost dependency pair construction.
func FreshMetaVariable(typ Type) MetaVariable {
	return MetaVariable{Index: int(freshCounter.Add(1)), Typ: typ}
}

// Substitute replaces every free occurrence of the bound variable
// with the given index by replacement, renaming abstractions as
// needed so that free variables of replacement are never captured.
// Substitution that would change a term's type is a programming
// error in the caller and is not itself checked here; callers that
// need that guarantee should compare Type() before and after.
func Substitute(t Term, index int, replacement Term) Term {
	switch n := t.(type) {
	case Variable:
		if n.Index == index {
			return replacement
		}
		return n
	case Constant:
		return n
	case Application:
		return Application{
			Fun: Substitute(n.Fun, index, replacement),
			Arg: Substitute(n.Arg, index, replacement),
		}
	case Abstraction:
		if n.Bound.Index == index {
			return n
		}
		if _, captured := FreeVariables(replacement)[n.Bound.Index]; captured {
			fresh := FreshVariable(n.Bound.Typ)
			body := Substitute(n.Body, n.Bound.Index, fresh)
			return Abstraction{Bound: fresh, Body: Substitute(body, index, replacement)}
		}
		return Abstraction{Bound: n.Bound, Body: Substitute(n.Body, index, replacement)}
	case MetaApplication:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = Substitute(a, index, replacement)
		}
		return MetaApplication{Meta: n.Meta, Args: args}
	default:
		return t
	}
}

// MetaSubstitution maps meta-variable indices to a replacement
// function: given the arguments a meta-application supplies, it
// produces the instantiated term. This is how rule/DP matching
// instantiates the right-hand side once a substitution for the
// left-hand side's meta-variables has been found.
type MetaSubstitution map[int]func(args []Term) Term

// SubstituteMeta replaces every meta-application headed by a
// meta-variable in sub with the instantiation sub yields.
func SubstituteMeta(t Term, sub MetaSubstitution) Term {
	switch n := t.(type) {
	case Variable, Constant:
		return t
	case Application:
		return Application{Fun: SubstituteMeta(n.Fun, sub), Arg: SubstituteMeta(n.Arg, sub)}
	case Abstraction:
		return Abstraction{Bound: n.Bound, Body: SubstituteMeta(n.Body, sub)}
	case MetaApplication:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = SubstituteMeta(a, sub)
		}
		if f, ok := sub[n.Meta.Index]; ok {
			return f(args)
		}
		return MetaApplication{Meta: n.Meta, Args: args}
	default:
		return t
	}
}

// ApplyTypeSubstitution pushes a type substitution through every
// type annotation in a term, used after AFS/ATRS type inference
// settles on concrete sorts for what were type variables.
func ApplyTypeSubstitution(t Term, sub TypeSubstitution) Term {
	switch n := t.(type) {
	case Variable:
		return Variable{Index: n.Index, Typ: sub.Apply(n.Typ)}
	case Constant:
		return Constant{Name: n.Name, Typ: sub.Apply(n.Typ)}
	case Application:
		return Application{Fun: ApplyTypeSubstitution(n.Fun, sub), Arg: ApplyTypeSubstitution(n.Arg, sub)}
	case Abstraction:
		return Abstraction{
			Bound: Variable{Index: n.Bound.Index, Typ: sub.Apply(n.Bound.Typ)},
			Body:  ApplyTypeSubstitution(n.Body, sub),
		}
	case MetaApplication:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = ApplyTypeSubstitution(a, sub)
		}
		return MetaApplication{
			Meta: MetaVariable{Index: n.Meta.Index, Typ: sub.Apply(n.Meta.Typ)},
			Args: args,
		}
	default:
		return t
	}
}
