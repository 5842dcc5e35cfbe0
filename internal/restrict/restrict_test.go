package restrict_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/restrict"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var nat = term.BaseType{Name: "nat"}

func TestUsableRulesRestrictsToReachable(t *testing.T) {
	sTyp := term.ArrowType{Left: nat, Right: nat}
	zero := term.Constant{Name: "zero", Typ: nat}
	sOfZero := term.Application{Fun: term.Constant{Name: "s", Typ: sTyp}, Arg: zero}

	// A rule for an unrelated symbol "other" that should not be usable.
	otherRule := rule.MatchRule{Name: "other-rule", Left: term.Constant{Name: "other", Typ: nat}, Right: zero}
	// zero has no defining rule (it's a constructor); the DP's RHS
	// reaches "s" and "zero" only.
	rs := rule.Set{otherRule}

	p := dep.NewPair(term.Constant{Name: "f#", Typ: nat}, sOfZero, dep.StyleNormal)
	restricted := restrict.UsableRules(dep.Set{p}, rs)
	require.Empty(t, restricted)
}
