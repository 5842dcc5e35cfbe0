package dep

import (
	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// Flavour selects which DP construction variant Construct uses.
type Flavour int

const (
	Dynamic Flavour = iota
	Static
	StaticAccessible
)

// DefinedSymbols returns the set of constant names that occur as the
// head of some rule's left-hand side.
func DefinedSymbols(rs rule.Set) map[string]bool {
	out := map[string]bool{}
	for _, r := range rs {
		head, _ := term.Spine(r.Left)
		if c, ok := head.(term.Constant); ok {
			out[c.Name] = true
		}
	}
	return out
}

// Construct builds the initial dependency-pair set for rs under the
// requested flavour, grounded on dpframework.h's DP-generation call
// and dependencypair.h's two pair styles.
func Construct(rs rule.Set, alph *alphabet.Alphabet, analysis rule.Analysis, flavour Flavour) Set {
	defined := DefinedSymbols(rs)
	var out Set
	for _, r := range rs {
		out = append(out, candidatePairs(r, alph, defined, analysis, flavour)...)
	}
	return out
}

// candidatePairs enumerates the dependency pairs generated from a
// single rule, per spec §4.3: a normal DP for every candidate subterm
// of r headed by a defined symbol (when r isn't already first-order),
// and one headmost DP per curried parameter when r's head is a
// functional meta-variable.
func candidatePairs(r rule.MatchRule, alph *alphabet.Alphabet, defined map[string]bool, analysis rule.Analysis, flavour Flavour) Set {
	var out Set
	lhsUpped := upSpine(r.Left, alph)

	if !analysis.FullyFirstOrder {
		var walk func(t term.Term)
		walk = func(t term.Term) {
			switch n := t.(type) {
			case term.Application:
				if head, _ := term.Spine(n); isDefinedHead(head, defined) {
					out = append(out, NewPair(lhsUpped, upSpine(n, alph), StyleNormal))
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
		walk(r.Right)
	}

	head, _ := term.Spine(r.Right)
	if z, ok := head.(term.MetaApplication); ok && term.IsFunctional(z.Type()) {
		collapsing := flavour == Static || flavour == StaticAccessible
		if !collapsing {
			out = append(out, headmostPairs(lhsUpped, z)...)
		}
	}

	annotateNoneating(out, r)
	return out
}

func isDefinedHead(t term.Term, defined map[string]bool) bool {
	c, ok := t.(term.Constant)
	return ok && defined[c.Name]
}

// upSpine rebuilds t with its head constant replaced by its upped
// companion, leaving argument subterms untouched. Non-constant-headed
// terms are returned unchanged (a headmost DP's own right-hand side,
// for instance, is never upped: it is built directly by
// headmostPairs).
func upSpine(t term.Term, alph *alphabet.Alphabet) term.Term {
	head, args := term.Spine(t)
	c, ok := head.(term.Constant)
	if !ok {
		return t
	}
	upped := term.Constant{Name: alph.Upped(c.Name), Typ: c.Typ}
	return term.ApplyArgs(upped, args)
}

// headmostPairs emits one DP per curried parameter of a functional
// meta-variable head Z occurring as r's head: l# ~~> Z z1 ... zk for
// k = 1..arity(Z's output chain), each pair marked headmost.
func headmostPairs(lhsUpped term.Term, zHead term.MetaApplication) Set {
	var out Set
	typ := zHead.Type()
	prefix := term.Term(zHead)
	args := []term.Term(nil)
	for {
		arrow, ok := typ.(term.ArrowType)
		if !ok {
			break
		}
		fresh := term.Term(term.MetaApplication{Meta: term.FreshMetaVariable(arrow.Left)})
		args = append(args, fresh)
		prefix = term.Application{Fun: prefix, Arg: fresh}
		p := NewPair(extendLHS(lhsUpped, args), prefix, StyleHeadmost)
		out = append(out, p)
		typ = arrow.Right
	}
	return out
}

// extendLHS extends the left-hand side of a headmost pair with the
// same k fresh meta-variables used on its right, so both sides of the
// pair stay closed under the same extra arguments (spec §4.3's "extend
// both sides with fresh meta-variables").
func extendLHS(lhs term.Term, extra []term.Term) term.Term {
	return term.ApplyArgs(lhs, extra)
}

// annotateNoneating marks, on every pair derived from r, which
// (meta-variable, position) combinations were reached through an
// abstraction or a meta-application argument position: positions that
// can be eaten by substitution must not be trusted as non-eating, so
// only positions reached without ever crossing such a boundary are
// recorded (spec §4.3's "non-eating annotations propagate... through
// candidate enumeration").
func annotateNoneating(pairs Set, r rule.MatchRule) {
	for _, p := range pairs {
		var walk func(t term.Term, pos int, safe bool)
		walk = func(t term.Term, pos int, safe bool) {
			switch n := t.(type) {
			case term.Abstraction:
				walk(n.Body, pos, false)
			case term.MetaApplication:
				if safe {
					p.SetNoneating(n.Meta.Index, pos)
				}
				for i, a := range n.Args {
					walk(a, i, false)
				}
			case term.Application:
				walk(n.Fun, pos, safe)
				walk(n.Arg, pos, false)
			}
		}
		walk(p.Right, 0, true)
	}
}
