package rule

import "github.com/hezzel/wanda-sub001/internal/term"

// Saturate computes the beta-saturation of rs: for every rule whose
// right-hand side is headed by an abstraction lambda x.r', a new rule
// "l x => r'" is added (so that the functional content of r is also
// available as a first-class rewrite step), and any right-hand side
// that is itself headed by a beta-redex is normalized first. The
// process repeats to a fixed point: a newly added rule may again have
// an abstraction-headed right side.
//
// Round-trip law (spec §8): for every rule in the result, either its
// right-hand side is not headed by an abstraction, or the
// corresponding unfolded rule is also present.
func Saturate(rs Set) Set {
	out := make(Set, 0, len(rs))
	queue := make(Set, len(rs))
	copy(queue, rs)
	seen := map[string]bool{}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		r.Right = term.NormalizeBetaOnce(r.Right)
		key := r.Left.String() + " => " + r.Right.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
		if abs, ok := r.Right.(term.Abstraction); ok {
			next := MatchRule{
				Name:  r.Name + "@beta",
				Left:  term.Application{Fun: r.Left, Arg: abs.Bound},
				Right: abs.Body,
			}
			queue = append(queue, next)
		}
	}
	return out
}

// EtaExpand returns the eta-long form of t: every subterm of
// functional type that is not already an abstraction is wrapped in
// one, recursively, until no further expansion is possible. Used
// before retrying the static DP approach once the dynamic approach is
// exhausted (spec §4.8's "dynamic-first / static-fallback").
func EtaExpand(t term.Term) term.Term {
	typ := t.Type()
	if !typ.IsArrow() {
		return expandChildren(t)
	}
	if _, ok := t.(term.Abstraction); ok {
		return expandChildren(t)
	}
	arrow := typ.(term.ArrowType)
	fresh := term.FreshVariable(arrow.Left)
	body := EtaExpand(term.Application{Fun: t, Arg: fresh})
	return term.Abstraction{Bound: fresh, Body: body}
}

func expandChildren(t term.Term) term.Term {
	switch n := t.(type) {
	case term.Application:
		return term.Application{Fun: EtaExpand(n.Fun), Arg: EtaExpand(n.Arg)}
	case term.Abstraction:
		return term.Abstraction{Bound: n.Bound, Body: EtaExpand(n.Body)}
	case term.MetaApplication:
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = EtaExpand(a)
		}
		return term.MetaApplication{Meta: n.Meta, Args: args}
	default:
		return t
	}
}

// EtaExpandRule eta-expands both sides of a rule.
func EtaExpandRule(r MatchRule) MatchRule {
	return MatchRule{Name: r.Name, Left: EtaExpand(r.Left), Right: EtaExpand(r.Right)}
}
