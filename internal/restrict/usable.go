package restrict

import (
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// isPattern reports whether t is a pattern term in the sense usable
// rules cares about: no meta-application's arguments contain anything
// but distinct bound variables at that position. This is the
// "query_pattern" risk test: a collapsing or otherwise non-pattern
// right-hand side disables the usable-rules restriction entirely.
func isPattern(t term.Term) bool {
	switch n := t.(type) {
	case term.Variable, term.Constant:
		return true
	case term.Application:
		return isPattern(n.Fun) && isPattern(n.Arg)
	case term.Abstraction:
		return isPattern(n.Body)
	case term.MetaApplication:
		for _, a := range n.Args {
			if _, ok := a.(term.Variable); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// reachableFrom collects, starting from symbol, every symbol
// transitively reachable via some rule's left-hand-side head ->
// right-hand-side heads relationship (reachable_from).
func reachableFrom(symbol string, rs rule.Set, found map[string]bool) {
	if found[symbol] {
		return
	}
	found[symbol] = true
	for _, r := range rs {
		lhead, _ := term.Spine(r.Left)
		lc, ok := lhead.(term.Constant)
		if !ok || lc.Name != symbol {
			continue
		}
		var walk func(term.Term)
		walk = func(s term.Term) {
			for {
				if abs, ok := s.(term.Abstraction); ok {
					s = abs.Body
					continue
				}
				break
			}
			head, args := term.Spine(s)
			for _, a := range args {
				walk(a)
			}
			if c, ok := head.(term.Constant); ok && !found[c.Name] {
				reachableFrom(c.Name, rs, found)
			}
		}
		walk(r.Right)
	}
}

// UsableRules computes the usable-rules restriction for problem (ps,
// rs): every rule whose left-hand-side head is reachable (by the
// rewrite relation) from some pair's right-hand side. Falls back to
// the full rule set whenever any pair is collapsing, has a non-
// pattern argument, or the restricted set would itself contain a
// risky rule (usable_rules's conservative bail-outs).
func UsableRules(ps dep.Set, rs rule.Set) rule.Set {
	symbols := map[string]bool{}
	for _, p := range ps {
		head, args := term.Spine(p.Right)
		if _, ok := head.(term.Constant); !ok {
			return rs // collapsing pair: everything is usable
		}
		for _, a := range args {
			if !isPattern(a) {
				return rs // risky pair: everything is usable
			}
			var walk func(term.Term)
			walk = func(s term.Term) {
				for {
					if abs, ok := s.(term.Abstraction); ok {
						s = abs.Body
						continue
					}
					break
				}
				h, subArgs := term.Spine(s)
				for _, sub := range subArgs {
					walk(sub)
				}
				if c, ok := h.(term.Constant); ok {
					reachableFrom(c.Name, rs, symbols)
				}
			}
			walk(a)
		}
	}

	var out rule.Set
	for _, r := range rs {
		lhead, _ := term.Spine(r.Left)
		lc, ok := lhead.(term.Constant)
		if !ok || !symbols[lc.Name] {
			continue
		}
		if _, isAbs := r.Right.(term.Abstraction); isAbs {
			return rs
		}
		if m, isMeta := r.Right.(term.MetaApplication); isMeta && term.IsFunctional(m.Type()) {
			return rs
		}
		if !isPattern(r.Right) {
			return rs
		}
		out = append(out, r)
	}
	return out
}
