package afs

import "github.com/hezzel/wanda-sub001/internal/term"

// ToAFSM converts one AFS rule's left/right pair into an AFSM rule
// pair: every free variable of left (and, transitively, of right) is
// replaced by a fresh 0-ary meta-variable of the same type, grounded
// on the free-variable-as-meta-variable convention
// MonomorphicAFS::to_afsm relies on (an AFS has no meta-variables of
// its own; every genuinely free variable of a rule is what an AFSM
// calls a meta-variable, since it is instantiated by matching rather
// than captured by a binder).
//
// RespectArity is not applied here: callers that need
// arity-respecting AFSM terms (rather than raw, possibly
// under-applied ones) should run RecalculateArityEta over the result.
func ToAFSM(left, right term.Term) (term.Term, term.Term) {
	mapping := map[int]term.MetaVariable{}
	for idx, v := range term.FreeVariables(left) {
		mapping[idx] = term.FreshMetaVariable(v.Typ)
	}
	for idx, v := range term.FreeVariables(right) {
		if _, ok := mapping[idx]; !ok {
			mapping[idx] = term.FreshMetaVariable(v.Typ)
		}
	}
	return replaceFreeVars(left, mapping), replaceFreeVars(right, mapping)
}

func replaceFreeVars(t term.Term, mapping map[int]term.MetaVariable) term.Term {
	switch n := t.(type) {
	case term.Variable:
		if mv, ok := mapping[n.Index]; ok {
			return term.MetaApplication{Meta: mv}
		}
		return n
	case term.Constant:
		return n
	case term.Application:
		return term.Application{Fun: replaceFreeVars(n.Fun, mapping), Arg: replaceFreeVars(n.Arg, mapping)}
	case term.Abstraction:
		return term.Abstraction{Bound: n.Bound, Body: replaceFreeVars(n.Body, mapping)}
	case term.MetaApplication:
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = replaceFreeVars(a, mapping)
		}
		return term.MetaApplication{Meta: n.Meta, Args: args}
	default:
		return t
	}
}
