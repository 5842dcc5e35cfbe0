package orderpair

import (
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/term"
)

// LinearWeightEngine is the default reduction-pair engine: a simple
// additive weight interpretation (every base symbol and variable
// occurrence contributes a constant 1, every application sums its
// function and argument weights). This is a size-based polynomial
// interpretation in the cheapest sense -- not a general polynomial
// search and not HORPO -- but it is enough to discharge the common
// case where a dependency pair strictly decreases argument sizes
// (successor/list-recursion style systems), which is the bulk of what
// the reduction-pair processor is asked to close in practice.
//
// Requirements are compared by their ground-weight approximation:
// meta-variables and bound variables are all assigned the same
// symbolic weight 1, so "l >= r" / "l > r" are checked structurally
// rather than by solving for coefficients. A real polynomial search
// (rational coefficients, per-argument monotonicity constraints) is
// deliberately not attempted here.
type LinearWeightEngine struct{}

// weight assigns a natural-number weight to t under the scheme
// described on LinearWeightEngine.
func weight(t term.Term) int {
	switch n := t.(type) {
	case term.Variable:
		return 1
	case term.Constant:
		return 1
	case term.MetaVariable:
		return 1
	case term.Application:
		return weight(n.Fun) + weight(n.Arg)
	case term.Abstraction:
		return 1 + weight(n.Body)
	case term.MetaApplication:
		total := 1
		for _, a := range n.Args {
			total += weight(a)
		}
		return total
	default:
		return 1
	}
}

// Orient implements Engine.
func (LinearWeightEngine) Orient(p Problem) ([]*dep.Pair, bool) {
	for _, req := range p.NonStrict {
		if weight(req.Left) < weight(req.Right) {
			return nil, false
		}
	}
	var oriented []*dep.Pair
	for _, req := range p.Strict {
		lw, rw := weight(req.Left), weight(req.Right)
		if lw < rw {
			return nil, false
		}
		if lw > rw {
			oriented = append(oriented, req.Origin)
		}
	}
	return oriented, true
}
