package framework_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/framework"
	"github.com/hezzel/wanda-sub001/internal/orderpair"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/sat"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var natT = term.BaseType{Name: "nat"}

func succRule() rule.MatchRule {
	sTyp := term.ArrowType{Left: natT, Right: natT}
	plusTyp := term.ArrowType{Left: natT, Right: term.ArrowType{Left: natT, Right: natT}}
	x := term.MetaApplication{Meta: term.MetaVariable{Index: 1, Typ: natT}}
	y := term.MetaApplication{Meta: term.MetaVariable{Index: 2, Typ: natT}}
	sOfX := term.Application{Fun: term.Constant{Name: "s", Typ: sTyp}, Arg: x}
	left := term.Application{
		Fun: term.Application{Fun: term.Constant{Name: "plus", Typ: plusTyp}, Arg: sOfX},
		Arg: y,
	}
	inner := term.Application{
		Fun: term.Application{Fun: term.Constant{Name: "plus", Typ: plusTyp}, Arg: x},
		Arg: y,
	}
	right := term.Application{Fun: term.Constant{Name: "s", Typ: sTyp}, Arg: inner}
	return rule.MatchRule{Name: "plus-succ", Left: left, Right: right}
}

func TestDriverProvesSuccessorRecursionTerminating(t *testing.T) {
	rs := rule.Set{succRule()}
	alph := alphabet.New()
	alph.Declare("plus", term.ArrowType{Left: natT, Right: term.ArrowType{Left: natT, Right: natT}})
	alph.Declare("s", term.ArrowType{Left: natT, Right: natT})
	alph.SetArity("plus", 2)
	alph.SetArity("s", 1)

	analysis := rule.Analyse(rs)
	drv := framework.New(alph, rs, analysis, sat.DPLLSolver{}, orderpair.LinearWeightEngine{}, framework.Policy{})
	verdict := drv.Run(context.Background(), nil)
	require.Equal(t, framework.Yes, verdict)
}
