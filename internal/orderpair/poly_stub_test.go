package orderpair_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/orderpair"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var nat = term.BaseType{Name: "nat"}

func TestLinearWeightEngineOrientsDecreasingPair(t *testing.T) {
	sTyp := term.ArrowType{Left: nat, Right: nat}
	x := term.Variable{Index: 1, Typ: nat}
	sOfX := term.Application{Fun: term.Constant{Name: "s", Typ: sTyp}, Arg: x}

	fTyp := term.ArrowType{Left: nat, Right: nat}
	fSharp := term.Constant{Name: "f#", Typ: fTyp}
	left := term.Application{Fun: fSharp, Arg: sOfX}
	right := term.Application{Fun: fSharp, Arg: x}
	p := dep.NewPair(left, right, dep.StyleNormal)

	problem := orderpair.Problem{
		Strict: []orderpair.Requirement{{Left: left, Right: right, Origin: p}},
	}
	oriented, ok := orderpair.LinearWeightEngine{}.Orient(problem)
	require.True(t, ok)
	require.Len(t, oriented, 1)
}
