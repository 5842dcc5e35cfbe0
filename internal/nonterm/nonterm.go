// Package nonterm implements the lightweight syntactic
// non-termination check described in the Non-Terminator section of
// the specification, grounded on nonterminator.h's NonTerminator
// class (obvious_loop, lambda_calculus) -- only the header survives in
// the retrieval pack, so the loop search here is a direct, simplified
// reading of its doc comments rather than a port of its body.
package nonterm

import (
	"fmt"

	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// Witness describes a found non-termination proof: the rule whose
// right-hand side was found to contain an instance of its own
// left-hand side, and the position (as a dotted path of argument
// indices) at which the match occurred.
type Witness struct {
	Rule rule.MatchRule
	Pos  string
}

func (w Witness) String() string {
	return fmt.Sprintf("rule %q loops: an instance of its left-hand side recurs at position %s of its right-hand side, so repeated self-application diverges", w.Rule.Name, w.Pos)
}

// Check searches rs for an obvious self-loop or a lambda-calculus
// encoding and reports the first witness found. It is a heuristic,
// incomplete check: a false result means only that this particular
// search found nothing, not that rs terminates.
func Check(rs rule.Set) (Witness, bool) {
	for _, r := range rs {
		if pos, ok := obviousLoop(r); ok {
			return Witness{Rule: r, Pos: pos}, true
		}
	}
	for _, r := range rs {
		if LambdaCalculus(r) {
			return Witness{Rule: r, Pos: "(lambda-calculus encoding)"}, true
		}
	}
	return Witness{}, false
}

// obviousLoop looks for a position p in r.Right such that r.Left
// matches the subterm at p (rule.Match finds a meta-substitution
// gamma with r.Left*gamma = r.Right|_p). Such a match is itself a
// non-termination witness: instantiating the rule at p and rewriting
// there reproduces another instance of the left-hand side one level
// deeper, so the rewrite sequence r -> r[p := r.Left*gamma -> ...]
// never reaches normal form. This tests direct containment rather
// than the original's arbitrary-depth reachability search
// (omega/reachable), a conservative restriction: every match found
// here is still a genuine witness, but a deeper loop reachable only
// after several rewrite steps is not found.
func obviousLoop(r rule.MatchRule) (string, bool) {
	var walk func(t term.Term, pos string) (string, bool)
	walk = func(t term.Term, pos string) (string, bool) {
		if _, ok := rule.Match(r.Left, t); ok {
			return pos, true
		}
		switch n := t.(type) {
		case term.Application:
			head, args := term.Spine(n)
			for i, a := range args {
				if p, ok := walk(a, fmt.Sprintf("%s.%d", pos, i)); ok {
					return p, true
				}
			}
			_ = head
		case term.Abstraction:
			return walk(n.Body, pos+".0")
		case term.MetaApplication:
			for i, a := range n.Args {
				if p, ok := walk(a, fmt.Sprintf("%s.%d", pos, i)); ok {
					return p, true
				}
			}
		}
		return "", false
	}
	return walk(r.Right, "")
}
