// Package restrict implements the formative-rules and usable-rules
// restrictions consumed by the reduction-pair processor, grounded on
// rulesmanipulator.cpp's formative_rules/usable_rules.
package restrict

import (
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

const maxTypesPerSymbol = 20

// symbolTypes maps a symbol name (or the pseudo-names "#ABS"/"#VAR")
// to the list of output types it is known to be required at.
type symbolTypes map[string][]term.Type

// addSymbol records that symbol is required at typ, collapsing to a
// single top type-variable once the per-symbol cap is hit (mirrors
// add_symbol's "if list[symbol].size() >= 20" fallback). Returns
// whether this changed the map.
func (st symbolTypes) addSymbol(symbol string, typ term.Type) bool {
	existing, ok := st[symbol]
	if !ok {
		st[symbol] = []term.Type{typ}
		return true
	}
	for _, other := range existing {
		if other.Equals(typ) {
			return false
		}
	}
	existing = append(existing, typ)
	if len(existing) >= maxTypesPerSymbol {
		existing = []term.Type{term.TypeVar{Name: "formative-overflow"}}
	}
	st[symbol] = existing
	return true
}

// occurs reports whether some entry for symbol (or, with symbol ==
// "#ANY", any entry at all) is compatible with typ.
func (st symbolTypes) occurs(symbol string, typ term.Type) bool {
	if symbol == "#ANY" {
		for name := range st {
			if st.occurs(name, typ) {
				return true
			}
		}
		return false
	}
	for _, other := range st[symbol] {
		if _, ok := term.Unify(other, typ); ok {
			return true
		}
	}
	return false
}

// addSubSymbols walks the proper argument subterms of l (not l's own
// head) and records every symbol/variable/abstraction head found
// inside them, the formative-rules seeding step (add_sub_symbols).
func addSubSymbols(st symbolTypes, l term.Term) bool {
	changed := false
	_, args := term.Spine(l)
	for _, a := range args {
		changed = collectHeads(st, a) || changed
	}
	return changed
}

func collectHeads(st symbolTypes, s term.Term) bool {
	if _, ok := s.(term.MetaApplication); ok {
		return false
	}
	if abs, ok := s.(term.Abstraction); ok {
		changed := st.addSymbol("#ABS", s.Type())
		return collectHeads(st, abs.Body) || changed
	}
	head, args := term.Spine(s)
	changed := false
	if c, ok := head.(term.Constant); ok {
		changed = st.addSymbol(c.Name, s.Type())
	} else {
		changed = st.addSymbol("#VAR", s.Type())
	}
	for _, a := range args {
		changed = collectHeads(st, a) || changed
	}
	return changed
}

// FormativeRules computes the formative-rules restriction for problem
// (ps, rs): the least set of rules whose right-hand-side head-symbol
// is required to construct a left-hand side of some pair in ps. Falls
// back to rs unchanged unless every pair's left-hand side is linear
// and fully extended (formative_rules's "all_ok" guard).
func FormativeRules(ps dep.Set, rs rule.Set) rule.Set {
	list := formativeSymbols(ps, rs)
	restricted := formativeRulesFor(list, rs)

	for _, p := range ps {
		if !rule.IsLinear(p.Left) || !rule.IsFullyExtended(p.Left) {
			return rs
		}
	}
	return restricted
}

func formativeSymbols(ps dep.Set, rs rule.Set) symbolTypes {
	list := symbolTypes{}
	for _, p := range ps {
		addSubSymbols(list, p.Left)
	}

	changed := true
	for changed {
		changed = false
		for _, r := range rs {
			if abs, ok := r.Right.(term.Abstraction); ok {
				if list.occurs("#ABS", r.Right.Type()) {
					changed = collectLHSHeads(list, r.Left) || changed
				}
				_ = abs
				continue
			}
			head, _ := term.Spine(r.Right)
			outp := r.Right.Type()
			for {
				ok := false
				if c, isConst := head.(term.Constant); isConst {
					ok = list.occurs(c.Name, outp)
				} else {
					ok = list.occurs("#ANY", outp)
				}
				if ok {
					lhead, _ := term.Spine(r.Left)
					if lc, isConst := lhead.(term.Constant); isConst {
						changed = list.addSymbol(lc.Name, outp) || changed
					}
					changed = addSubSymbols(list, r.Left) || changed
				}
				arrow, isArrow := outp.(term.ArrowType)
				if !isArrow {
					break
				}
				outp = arrow.Right
			}
		}
	}
	return list
}

func collectLHSHeads(list symbolTypes, l term.Term) bool {
	changed := false
	head, args := term.Spine(l)
	if c, ok := head.(term.Constant); ok {
		changed = list.addSymbol(c.Name, l.Type())
	} else {
		changed = list.addSymbol("#VAR", l.Type())
	}
	for _, a := range args {
		changed = collectHeads(list, a) || changed
	}
	return changed
}

// formativeRulesFor keeps a matching rule as-is rather than extending
// it with fresh trailing meta-variable applications the way
// formative_rules_for does when the match is found partway down r's
// curried output chain; the restriction the DP framework cares about
// is which rules are included, not the exact arity the included copy
// is padded to, so the extension step is dropped here.
func formativeRulesFor(list symbolTypes, rs rule.Set) rule.Set {
	var out rule.Set
	for _, r := range rs {
		if _, ok := r.Right.(term.Abstraction); ok {
			if list.occurs("#ABS", r.Right.Type()) {
				out = append(out, r)
			}
			continue
		}
		head, _ := term.Spine(r.Right)
		outp := r.Right.Type()
		for {
			ok := false
			if c, isConst := head.(term.Constant); isConst {
				ok = list.occurs(c.Name, outp)
			} else {
				ok = list.occurs("#ANY", outp)
			}
			if ok {
				out = append(out, r)
				break
			}
			arrow, isArrow := outp.(term.ArrowType)
			if !isArrow {
				break
			}
			outp = arrow.Right
		}
	}
	return out
}
