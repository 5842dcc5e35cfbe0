package depgraph

import (
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// ConnectionPossible estimates whether an instance of p1's right-hand
// side might rewrite to an instance of p2's left-hand side, grounded
// on dependencygraph.cpp's connection_possible.
func (g *Graph) ConnectionPossible(p1, p2 *dep.Pair) bool {
	if p1 == nil || p2 == nil {
		return false
	}
	from, to := p1.Right, p2.Left

	// A subterm step from a meta-application-headed term can reach
	// anything.
	if fromHead, _ := term.Spine(from); isMetaHead(fromHead) {
		return true
	}

	fromHead, fromArgs := term.Spine(from)
	toHead, toArgs := term.Spine(to)
	if len(fromArgs) > len(toArgs) && !p2.IsHeadmost() {
		return false
	}
	if len(fromArgs) < len(toArgs) && !p1.IsHeadmost() {
		return false
	}
	n := len(fromArgs)
	if len(toArgs) < n {
		n = len(toArgs)
	}

	fc, fok := fromHead.(term.Constant)
	tc, tok := toHead.(term.Constant)
	if !fok || !tok {
		return true // matches the original's defensive "ERROR!" fallback
	}
	if fc.Name != tc.Name {
		return false
	}
	if _, ok := term.Unify(fc.Typ, tc.Typ); !ok {
		return false
	}
	if _, ok := term.Unify(from.Type(), to.Type()); !ok {
		return false
	}
	for i := 1; i < n; i++ {
		if !g.ReductionPossible(fromArgs[i], toArgs[i], p2) {
			return false
		}
	}
	return true
}

func isMetaHead(t term.Term) bool {
	_, ok := t.(term.MetaApplication)
	return ok
}

// ReductionPossible over-approximates whether an instance of from
// could reduce to an instance of to, grounded on
// dependencygraph.cpp's reduction_possible.
func (g *Graph) ReductionPossible(from, to term.Term, toDP *dep.Pair) bool {
	if _, ok := term.Unify(from.Type(), to.Type()); !ok {
		return false
	}

	into := g.GetCertainVariables(to, toDP)
	infrom := freeVarIndices(from)
	if !containsAll(infrom, into) {
		return false
	}

	if m, ok := to.(term.MetaApplication); ok {
		problems := freeVarIndices(from)
		for _, sub := range m.Args {
			v, isVar := sub.(term.Variable)
			if !isVar {
				return true // matches the original's defensive fallback
			}
			delete(problems, v.Index)
		}
		for z := range problems {
			if g.AtNonEatingPos(from, z) {
				return false
			}
		}
		return true
	}

	if fabs, ok := from.(term.Abstraction); ok {
		tabs, ok := to.(term.Abstraction)
		if !ok {
			return false
		}
		renamed := term.Substitute(tabs.Body, tabs.Bound.Index, fabs.Bound)
		return g.ReductionPossible(fabs.Body, renamed, toDP)
	}

	if fv, ok := from.(term.Variable); ok {
		tv, ok := to.(term.Variable)
		return ok && fv.Index == tv.Index
	}

	fromHead, _ := term.Spine(from)
	toHead, _ := term.Spine(to)
	if fc, ok := fromHead.(term.Constant); ok && g.isConstructor(fc.Name) && !isMetaHead(toHead) {
		tc, ok := toHead.(term.Constant)
		if !ok || fc.Name != tc.Name {
			return false
		}
		if _, isConst := from.(term.Constant); isConst {
			return true
		}
	}

	if _, ok := fromHead.(term.Abstraction); ok {
		return true
	}
	if isMetaHead(toHead) {
		return true
	}
	if isMetaHead(fromHead) {
		return true
	}

	if fv, isVar := fromHead.(term.Variable); isVar || g.isConstructorHead(fromHead) {
		fapp, fok := from.(term.Application)
		tapp, tok := to.(term.Application)
		if !fok || !tok {
			return false
		}
		_ = fv
		return g.ReductionPossible(fapp.Fun, tapp.Fun, toDP) &&
			g.ReductionPossible(fapp.Arg, tapp.Arg, toDP)
	}

	fc, ok := fromHead.(term.Constant)
	if !ok {
		return true
	}
	if _, isAbs := to.(term.Abstraction); isAbs {
		return g.canReduceTo[[2]string{fc.Name, pseudoAbs}]
	}
	if _, isVar := toHead.(term.Variable); isVar {
		return g.canReduceTo[[2]string{fc.Name, pseudoVar}]
	}
	if tc, isConst := toHead.(term.Constant); isConst {
		return g.canReduceTo[[2]string{fc.Name, tc.Name}]
	}
	return true
}

func (g *Graph) isConstructorHead(head term.Term) bool {
	c, ok := head.(term.Constant)
	return ok && g.isConstructor(c.Name)
}

// GetCertainVariables collects the (non-meta) variables occurring in
// t that are guaranteed to survive any reduction, i.e. everything
// except variables sitting solely inside an eating meta-application
// argument position, per get_certain_variables.
func (g *Graph) GetCertainVariables(t term.Term, dp *dep.Pair) map[int]bool {
	switch n := t.(type) {
	case term.Variable:
		return map[int]bool{n.Index: true}
	case term.MetaApplication:
		out := map[int]bool{}
		for i, child := range n.Args {
			if dp.QueryNoneating(n.Meta.Index, i) {
				for k := range g.GetCertainVariables(child, dp) {
					out[k] = true
				}
			}
		}
		return out
	case term.Constant:
		return map[int]bool{}
	case term.Application:
		out := g.GetCertainVariables(n.Fun, dp)
		for k := range g.GetCertainVariables(n.Arg, dp) {
			out[k] = true
		}
		return out
	default:
		return map[int]bool{}
	}
}

// AtNonEatingPos reports whether variable Z occurs in s at a position
// that, per the non-eating table, cannot disappear under reduction.
// May return false negatives, never false positives (at_non_eating_pos).
func (g *Graph) AtNonEatingPos(s term.Term, z int) bool {
	head, args := term.Spine(s)
	switch h := head.(type) {
	case term.MetaApplication:
		return h.Meta.Index == z
	case term.Variable:
		return h.Index == z
	case term.Abstraction:
		abs, ok := s.(term.Abstraction)
		if !ok {
			return false
		}
		return g.AtNonEatingPos(abs.Body, z)
	case term.Constant:
		positions := g.noneatingPos[h.Name]
		for i, arg := range args {
			if i < len(positions) && !positions[i] {
				continue
			}
			if i >= len(positions) && !g.isConstructor(h.Name) {
				break
			}
			if g.AtNonEatingPos(arg, z) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
