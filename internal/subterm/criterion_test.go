package subterm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/sat"
	"github.com/hezzel/wanda-sub001/internal/subterm"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var nat = term.BaseType{Name: "nat"}

// minus#(s(X), s(Y)) ~~> minus#(X, Y): projecting argument 0 on both
// sides gives a strict decrease (X is a proper subterm of s(X)).
func minusPair() *dep.Pair {
	sType := term.ArrowType{Left: nat, Right: nat}
	sOf := func(t term.Term) term.Term { return term.Application{Fun: term.Constant{Name: "s", Typ: sType}, Arg: t} }
	x := term.MetaApplication{Meta: term.MetaVariable{Index: 1, Typ: nat}}
	y := term.MetaApplication{Meta: term.MetaVariable{Index: 2, Typ: nat}}
	minusTyp := term.ArrowType{Left: nat, Right: term.ArrowType{Left: nat, Right: nat}}
	left := term.Application{
		Fun: term.Application{Fun: term.Constant{Name: "minus#", Typ: minusTyp}, Arg: sOf(x)},
		Arg: sOf(y),
	}
	right := term.Application{
		Fun: term.Application{Fun: term.Constant{Name: "minus#", Typ: minusTyp}, Arg: x},
		Arg: y,
	}
	return dep.NewPair(left, right, dep.StyleNormal)
}

func TestApplyOrientsStrictly(t *testing.T) {
	alph := alphabet.New()
	alph.SetArity("minus#", 2)

	result, ok := subterm.Apply(context.Background(), dep.Set{minusPair()}, alph, sat.DPLLSolver{})
	require.True(t, ok)
	require.Len(t, result.Strict, 1)
	require.Empty(t, result.NonStrict)
}
