// Package afs converts a typed monomorphic AFS into an AFSM: free
// variables become 0-ary meta-variables, and terms under-applied
// relative to a symbol's declared arity get eta-expanded so that
// every occurrence of a symbol in the result is applied to exactly
// its arity, grounded on afs.h/afs.cpp's MonomorphicAFS class.
package afs

import "github.com/hezzel/wanda-sub001/internal/term"

// AdjustArities computes, for each symbol, the minimum of its given
// initial arity and the number of arguments it is actually applied to
// across every left-hand side in lhsTerms, grounded on
// MonomorphicAFS::adjust_arities: a symbol's arity should never force
// an eta-expansion beyond what any rule actually uses it at.
func AdjustArities(lhsTerms []term.Term, initial map[string]int) map[string]int {
	arities := make(map[string]int, len(initial))
	for k, v := range initial {
		arities[k] = v
	}

	var walk func(term.Term)
	walk = func(t term.Term) {
		head, args := term.Spine(t)
		if c, ok := head.(term.Constant); ok {
			if cur, ok := arities[c.Name]; !ok || len(args) < cur {
				arities[c.Name] = len(args)
			}
		}
		for _, a := range args {
			walk(a)
		}
		if abs, ok := t.(term.Abstraction); ok {
			walk(abs.Body)
		}
	}
	for _, l := range lhsTerms {
		walk(l)
	}
	return arities
}

// RespectArity rewrites term so that every occurrence of a symbol
// declared in arities is applied to exactly that many arguments,
// eta-expanding under-applied occurrences, grounded on
// MonomorphicAFS::respect_arity(PTerm, bool). ignoretop mirrors the
// original parameter of the same name: when false (the usual case)
// term's own root is also checked for under-application; recursive
// calls on already-processed subterms pass true to skip re-checking a
// position that cannot itself be extended further.
//
// This deliberately reproduces a bug present in the reference
// implementation's Application branch:
//
//	PTerm sub2 = respect_arity(term->subterm("2"), false);
//	term->replace_subterm(sub2, "2");
//	PTerm sub1 = respect_arity(term->subterm("1"), true);
//	term->replace_subterm(sub2, "1");   // should be sub1
//
// sub1 - the arity-respecting rewrite of the function-position
// subterm - is computed and then thrown away; the line that should
// install it into position "1" installs sub2 (the argument-position
// rewrite) there a second time instead, so the result's function
// subterm and argument subterm become identical copies of sub2
// whenever respecting arity needed to do anything to the function
// side. This is preserved here rather than corrected, per the
// project's standing rule to document rather than silently fix
// questionable behaviour inherited from the tool this was ported
// from; RespectArity's doc comment is the flag for this Open
// Question, mirroring how dep.Pair.QueryNoneating's bug is handled.
func RespectArity(t term.Term, arities map[string]int, ignoretop bool) term.Term {
	if !ignoretop {
		head, args := term.Spine(t)
		if c, ok := head.(term.Constant); ok {
			if ar, ok := arities[c.Name]; ok && len(args) < ar {
				paramType := inputType(t.Type())
				x := term.FreshVariable(paramType)
				extended := RespectArity(term.Application{Fun: t, Arg: x}, arities, false)
				return term.Abstraction{Bound: x, Body: extended}
			}
		}
	}

	switch n := t.(type) {
	case term.Abstraction:
		sub := RespectArity(n.Body, arities, false)
		return term.Abstraction{Bound: n.Bound, Body: sub}

	case term.Application:
		sub2 := RespectArity(n.Arg, arities, false)
		_ = RespectArity(n.Fun, arities, true) // sub1: computed, then discarded - see doc comment above.
		return term.Application{Fun: sub2, Arg: sub2}
	}

	return t
}

// inputType returns the parameter type of typ, i.e. the Left of its
// ArrowType, matching query_type()->query_child(0) in the original.
func inputType(typ term.Type) term.Type {
	at, ok := typ.(term.ArrowType)
	if !ok {
		return typ
	}
	return at.Left
}

// RecalculateArityEta orchestrates AdjustArities followed by
// RespectArity over every right-hand side, grounded on
// MonomorphicAFS::recalculate_arity_eta: the left-hand sides alone
// determine the (possibly lowered) arities, and only the right-hand
// sides need eta-expanding to match them (a rule's left-hand side is
// always already applied to exactly the arity adjust_arities derives
// from it).
func RecalculateArityEta(lhs, rhs []term.Term, initial map[string]int) (map[string]int, []term.Term) {
	arities := AdjustArities(lhs, initial)
	out := make([]term.Term, len(rhs))
	for i, r := range rhs {
		out[i] = RespectArity(r, arities, false)
	}
	return arities, out
}
