// Package rule implements match-rules (user-defined rewrite rules
// over AFSM terms) and the rule-analysis routines that classify a
// rule set: linearity, extension, PFP, beta-saturation, eta-expansion,
// formative/usable restriction inputs, and encoded-application
// simplification.
package rule

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hezzel/wanda-sub001/internal/term"
)

// Rewriter is the trait every rewrite rule implements, replacing the
// deep Rule/MatchRule/Beta inheritance chain of the original tool
// with a single interface plus the generic helpers below (Apply,
// Applicable, Normalise, Normal).
type Rewriter interface {
	// ApplicableTop returns whether this rewriter fires at the root
	// of t.
	ApplicableTop(t term.Term) bool
	// ApplyTop fires this rewriter at the root of t. If t is not
	// applicable at the root, ApplyTop returns t unchanged.
	ApplyTop(t term.Term) term.Term
}

// Apply fires r at the given position inside t. A non-applicable
// position leaves t unchanged, matching the no-op-on-non-redex
// policy used throughout the term package.
func Apply(r Rewriter, t term.Term, pos term.Position) term.Term {
	sub, ok := term.Subterm(t, pos)
	if !ok || !r.ApplicableTop(sub) {
		return t
	}
	reduced := r.ApplyTop(sub)
	result, ok := term.Replace(t, pos, reduced)
	if !ok {
		return t
	}
	return result
}

// Applicable returns whether r fires at the given position in t.
func Applicable(r Rewriter, t term.Term, pos term.Position) bool {
	sub, ok := term.Subterm(t, pos)
	if !ok {
		return false
	}
	return r.ApplicableTop(sub)
}

// Normalise repeatedly fires r at the leftmost-outermost applicable
// position until none remains. Only terminates for rewriters that are
// actually terminating and confluent enough to have a normal form
// reachable this way; callers pass rules known to have that property
// (beta-saturation's beta steps, for instance).
func Normalise(r Rewriter, t term.Term) term.Term {
	for {
		pos, found := firstApplicable(r, t, term.Position{})
		if !found {
			return t
		}
		t = Apply(r, t, pos)
	}
}

// Normal returns whether no position of t is applicable for r.
func Normal(r Rewriter, t term.Term) bool {
	_, found := firstApplicable(r, t, term.Position{})
	return !found
}

func firstApplicable(r Rewriter, t term.Term, pos term.Position) (term.Position, bool) {
	if Applicable(r, t, pos) {
		return pos, true
	}
	switch n := t.(type) {
	case term.Application:
		if p, ok := firstApplicable(r, n.Fun, append(pos, 1)); ok {
			return p, ok
		}
		return firstApplicable(r, n.Arg, append(pos, 2))
	case term.Abstraction:
		return firstApplicable(r, n.Body, append(pos, 1))
	case term.MetaApplication:
		for i, a := range n.Args {
			if p, ok := firstApplicable(r, a, append(pos, i+1)); ok {
				return p, ok
			}
		}
	}
	return nil, false
}

// MatchRule is a pair (l, r) of meta-terms: a user-defined rewrite
// rule. A MatchRule is valid iff every free meta-variable and free
// variable of r occurs in l, and l itself has no free (unbound)
// variables.
type MatchRule struct {
	Name  string
	Left  term.Term
	Right term.Term
}

// ApplicableTop implements Rewriter: l matches t at the root iff a
// substitution gamma exists with l*gamma = t. Matching itself lives
// in match.go; this only answers the existence question.
func (m MatchRule) ApplicableTop(t term.Term) bool {
	_, ok := Match(m.Left, t)
	return ok
}

// ApplyTop implements Rewriter.
func (m MatchRule) ApplyTop(t term.Term) term.Term {
	sub, ok := Match(m.Left, t)
	if !ok {
		return t
	}
	return term.SubstituteMeta(m.Right, sub)
}

// Validate checks the well-formedness condition from the data model:
// FV(r) subset-of FV(l), FreeMeta(r) subset-of FreeMeta(l), and l has
// the same type as r.
func (m MatchRule) Validate() error {
	if !m.Left.Type().Equals(m.Right.Type()) {
		return errors.Errorf("rule %s: left and right side have different types (%s vs %s)",
			m.Name, m.Left.Type(), m.Right.Type())
	}
	lfv, rfv := term.FreeVariables(m.Left), term.FreeVariables(m.Right)
	for idx := range rfv {
		if _, ok := lfv[idx]; !ok {
			return errors.Errorf("rule %s: right-hand side has a free variable not bound on the left", m.Name)
		}
	}
	lfm, rfm := term.FreeMetaVariables(m.Left), term.FreeMetaVariables(m.Right)
	for idx := range rfm {
		if _, ok := lfm[idx]; !ok {
			return errors.Errorf("rule %s: right-hand side uses meta-variable Z%d not present on the left", m.Name, idx)
		}
	}
	return nil
}

func (m MatchRule) String() string {
	return fmt.Sprintf("%s => %s", m.Left.String(), m.Right.String())
}

// Set is an ordered sequence of match-rules, analogous to Ps/Rs
// slots in the framework workbench: once created, a Set's contents
// are treated as immutable by the processors that consult it (they
// build new Sets rather than mutating in place).
type Set []MatchRule

// Clone copies the rule slice for a new workbench slot; the terms
// inside the rules are shared, not copied.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}
