// Package orderpair carries an ordering problem (the strict and
// non-strict requirements a reduction-pair processor must orient) and
// defines the engine interface that discharges it, grounded on the
// "ordering problem" object described by the framework driver and on
// reqmodifier.h's superseded RequirementModifier (kept only as a
// naming/shape reference: OrderingProblem is its documented
// successor, per that header's own comment).
package orderpair

import (
	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// Requirement is one "l >? r" (strict) or "l >= r" (non-strict)
// orientation obligation.
type Requirement struct {
	Left, Right term.Term
	// Origin is the dependency pair this strict requirement came from
	// (nil for a non-strict, usable-rule requirement); on success the
	// engine reports which origin pairs could be discharged.
	Origin *dep.Pair
}

// Problem is everything a reduction-pair engine needs to attempt an
// orientation: the strict requirements (one per DP in the current
// problem), the non-strict requirements (one per usable rule, plus
// extra usable-rules-with-respect-to-requirements copies when UWRT is
// set), the alphabet/arities, and whether the system is currently
// tagged (abstraction-simple and formative-restricted).
type Problem struct {
	Strict    []Requirement
	NonStrict []Requirement
	Alphabet  *alphabet.Alphabet
	Tagged    bool
	UWRT      bool
}

// Build assembles a Problem from a DP set and its usable rules.
func Build(ps dep.Set, usable rule.Set, alph *alphabet.Alphabet, tagged, uwrt bool) Problem {
	p := Problem{Alphabet: alph, Tagged: tagged, UWRT: uwrt}
	for _, pair := range ps {
		p.Strict = append(p.Strict, Requirement{Left: pair.Left, Right: pair.Right, Origin: pair})
	}
	for _, r := range usable {
		p.NonStrict = append(p.NonStrict, Requirement{Left: r.Left, Right: r.Right})
	}
	return p
}
