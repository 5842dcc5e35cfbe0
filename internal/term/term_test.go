package term_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/hezzel/wanda-sub001/internal/term"
)

var o = BaseType{Name: "o"}

func TestArityAndOutput(t *testing.T) {
	typ := ArrowType{Left: o, Right: ArrowType{Left: o, Right: o}}
	require.Equal(t, 2, Arity(typ))
	require.True(t, Output(typ).Equals(o))
}

func TestSubstituteCaptureAvoidance(t *testing.T) {
	x := Variable{Index: 1, Typ: o}
	y := Variable{Index: 2, Typ: o}
	// \y. x, substitute x := y  should alpha-rename the bound y.
	abs := Abstraction{Bound: y, Body: x}
	result := Substitute(abs, x.Index, y)
	renamed, ok := result.(Abstraction)
	require.True(t, ok)
	require.NotEqual(t, y.Index, renamed.Bound.Index)
	require.True(t, Equals(renamed.Body, y))
}

func TestSpineAndApplyArgs(t *testing.T) {
	f := Constant{Name: "f", Typ: ArrowType{Left: o, Right: ArrowType{Left: o, Right: o}}}
	a := Constant{Name: "a", Typ: o}
	b := Constant{Name: "b", Typ: o}
	term := Application{Fun: Application{Fun: f, Arg: a}, Arg: b}

	head, args := Spine(term)
	require.True(t, Equals(head, f))
	require.Len(t, args, 2)
	require.True(t, Equals(args[0], a))
	require.True(t, Equals(args[1], b))
	require.True(t, Equals(ApplyArgs(head, args), term))
}

func TestBetaStepAtNonRedexIsNoop(t *testing.T) {
	a := Constant{Name: "a", Typ: o}
	result, ok := BetaStepAt(a, Position{})
	require.False(t, ok)
	require.True(t, Equals(result, a))
}

func TestBetaStepAtRedex(t *testing.T) {
	x := Variable{Index: 10, Typ: o}
	a := Constant{Name: "a", Typ: o}
	redex := Application{Fun: Abstraction{Bound: x, Body: x}, Arg: a}
	result, ok := BetaStepAt(redex, Position{})
	require.True(t, ok)
	require.True(t, Equals(result, a))
}

func TestUnifyBaseAndArrow(t *testing.T) {
	list := BaseType{Name: "list"}
	alpha := TypeVar{Name: "a"}
	sub, ok := Unify(ArrowType{Left: alpha, Right: alpha}, ArrowType{Left: o, Right: o})
	require.True(t, ok)
	require.True(t, sub.Apply(alpha).Equals(o))

	_, ok = Unify(o, list)
	require.False(t, ok)
}

func TestFreeVariablesExcludesBound(t *testing.T) {
	x := Variable{Index: 1, Typ: o}
	y := Variable{Index: 2, Typ: o}
	term := Abstraction{Bound: x, Body: Application{Fun: Constant{Name: "f", Typ: ArrowType{Left: o, Right: o}}, Arg: y}}
	fv := FreeVariables(term)
	_, hasX := fv[x.Index]
	_, hasY := fv[y.Index]
	require.False(t, hasX)
	require.True(t, hasY)
}
