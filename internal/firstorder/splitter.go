// Package firstorder identifies the first-order fragment of an AFSM
// (spec §4.10): the symbols and rules that are genuinely first-order,
// so that an external, dedicated first-order termination prover can be
// delegated to instead of the higher-order dependency-pair machinery,
// grounded on firstorder.h/.cpp's FirstOrderSplitter class.
package firstorder

import (
	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// Splitter partitions an alphabet's symbols into TFO (truly first
// order) and PHO (potentially higher order), and answers first-order
// membership questions for terms, rules, and dependency pairs built
// over that alphabet.
type Splitter struct {
	pho map[string]bool
	tfo map[string]bool
}

// NewSplitter computes the TFO/PHO partition for alph given the rule
// set rules that defines it. A symbol is PHO if:
//
//   - one of its curried input types is not a base (data) type, or
//     its output type is not a base type; or
//   - it is the head of a rule whose left-hand side has a composed
//     (arrow) type; or
//   - (closure) it heads a rule whose left- or right-hand side
//     mentions, anywhere below an actual application, a symbol
//     already known to be in PHO.
//
// Every symbol not in PHO after the closure is TFO.
func NewSplitter(alph *alphabet.Alphabet, rules rule.Set) *Splitter {
	s := &Splitter{pho: map[string]bool{}, tfo: map[string]bool{}}

	for _, name := range alph.Symbols() {
		typ, _ := alph.Lookup(name)
		ins, out := term.InputsAndOutput(typ)
		pho := !out.IsBase()
		for _, in := range ins {
			if !in.IsBase() {
				pho = true
			}
		}
		if pho {
			s.pho[name] = true
		}
	}

	for _, r := range rules {
		if !r.Left.Type().IsBase() {
			if head, _ := term.Spine(r.Left); isConstantHead(head) {
				s.pho[head.(term.Constant).Name] = true
			}
		}
	}

	// Closure: propagate PHO-ness to the head of every rule whose
	// left- or right-hand side mentions an already-PHO symbol.
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			head, _ := term.Spine(r.Left)
			c, ok := head.(term.Constant)
			if !ok || s.pho[c.Name] {
				continue
			}
			if !s.onlyTFOReferences(r.Left) || !s.onlyTFOReferences(r.Right) {
				s.pho[c.Name] = true
				changed = true
			}
		}
	}

	for _, name := range alph.Symbols() {
		if !s.pho[name] {
			s.tfo[name] = true
		}
	}
	return s
}

// onlyTFOReferences walks every subterm of t and checks that no
// applicative head it finds is a constant already known to be in PHO;
// variable, meta-variable (applied or not) and abstraction heads are
// all accepted. It does not itself decide whether t's own head is first order;
// it is used to look inside both sides of a rule during the closure
// step above.
func (s *Splitter) onlyTFOReferences(t term.Term) bool {
	head, args := term.Spine(t)
	if c, ok := head.(term.Constant); ok && s.pho[c.Name] {
		return false
	}
	for _, a := range args {
		if !s.onlyTFOReferences(a) {
			return false
		}
	}
	switch n := t.(type) {
	case term.Abstraction:
		return s.onlyTFOReferences(n.Body)
	case term.MetaApplication:
		for _, a := range n.Args {
			if !s.onlyTFOReferences(a) {
				return false
			}
		}
	}
	return true
}

func isConstantHead(t term.Term) bool {
	_, ok := t.(term.Constant)
	return ok
}

// IsPHO reports whether name was classified as potentially higher
// order.
func (s *Splitter) IsPHO(name string) bool { return s.pho[name] }

// IsTFO reports whether name was classified as truly first order.
func (s *Splitter) IsTFO(name string) bool { return s.tfo[name] }

// FirstOrderTerm reports whether t, in isolation, is a first-order
// term: a data-typed variable or bare meta-variable, or an
// application f s1 ... sn with f a TFO constant and every si
// first-order.
func (s *Splitter) FirstOrderTerm(t term.Term) bool {
	if !t.Type().IsBase() {
		return false
	}
	switch n := t.(type) {
	case term.Variable:
		return true
	case term.MetaApplication:
		if len(n.Args) == 0 {
			return true
		}
	}

	head, args := term.Spine(t)
	c, ok := head.(term.Constant)
	if !ok || s.pho[c.Name] {
		return false
	}
	for _, a := range args {
		if !s.FirstOrderTerm(a) {
			return false
		}
	}
	return true
}

// FirstOrderRule reports whether both sides of r are first-order
// terms.
func (s *Splitter) FirstOrderRule(r rule.MatchRule) bool {
	return s.FirstOrderTerm(r.Left) && s.FirstOrderTerm(r.Right)
}

// FirstOrderPart returns the subset of rules that are themselves
// first order.
func (s *Splitter) FirstOrderPart(rules rule.Set) rule.Set {
	var out rule.Set
	for _, r := range rules {
		if s.FirstOrderRule(r) {
			out = append(out, r)
		}
	}
	return out
}

// FirstOrderPairs reports whether every pair in ps can be expressed
// as a first-order rewrite step: both sides data-typed, both headed
// by a constant (the head need not itself be TFO, since a dependency
// pair's head is never actually reduced), every argument of the left
// side first order, and every argument of the right side first order
// once any outermost abstractions are stripped (an eta-expanded
// right-hand side argument is still first order underneath its
// binders).
func (s *Splitter) FirstOrderPairs(ps dep.Set) bool {
	for _, p := range ps {
		if !p.Left.Type().IsBase() || !p.Right.Type().IsBase() {
			return false
		}
		lhead, largs := term.Spine(p.Left)
		rhead, rargs := term.Spine(p.Right)
		if !isConstantHead(lhead) || !isConstantHead(rhead) {
			return false
		}
		for _, a := range largs {
			if !s.FirstOrderTerm(a) {
				return false
			}
		}
		for _, a := range rargs {
			for {
				abs, ok := a.(term.Abstraction)
				if !ok {
					break
				}
				a = abs.Body
			}
			if !s.FirstOrderTerm(a) {
				return false
			}
		}
	}
	return true
}
