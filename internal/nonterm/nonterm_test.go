package nonterm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/nonterm"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var dT = term.BaseType{Name: "D"}

func TestCheckFindsLambdaCalculusEncoding(t *testing.T) {
	dd := term.ArrowType{Left: dT, Right: dT}
	appTyp := term.ArrowType{Left: dT, Right: term.ArrowType{Left: dT, Right: dT}}
	absTyp := term.ArrowType{Left: dd, Right: dT}

	z := term.MetaVariable{Index: 1, Typ: dd}
	y := term.MetaVariable{Index: 2, Typ: dT}
	zTerm := term.MetaApplication{Meta: z}
	yTerm := term.MetaApplication{Meta: y}

	abs := term.Constant{Name: "Abs", Typ: absTyp}
	app := term.Constant{Name: "App", Typ: appTyp}

	left := term.Application{Fun: term.Application{Fun: app, Arg: term.Application{Fun: abs, Arg: zTerm}}, Arg: yTerm}
	right := term.MetaApplication{Meta: z, Args: []term.Term{yTerm}}

	r := rule.MatchRule{Name: "beta", Left: left, Right: right}
	_, ok := nonterm.Check(rule.Set{r})
	require.True(t, ok)
}

func TestCheckFindsObviousLoop(t *testing.T) {
	fTyp := term.ArrowType{Left: dT, Right: dT}
	z := term.MetaApplication{Meta: term.MetaVariable{Index: 1, Typ: dT}}
	f := term.Constant{Name: "f", Typ: fTyp}
	left := term.Application{Fun: f, Arg: z}
	right := term.Application{Fun: f, Arg: left}

	r := rule.MatchRule{Name: "loop", Left: left, Right: right}
	_, ok := nonterm.Check(rule.Set{r})
	require.True(t, ok)
}
