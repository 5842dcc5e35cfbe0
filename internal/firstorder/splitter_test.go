package firstorder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/firstorder"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var natT = term.BaseType{Name: "nat"}

func plusRule() rule.MatchRule {
	plusTyp := term.ArrowType{Left: natT, Right: term.ArrowType{Left: natT, Right: natT}}
	sTyp := term.ArrowType{Left: natT, Right: natT}
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

func plusAlphabet() *alphabet.Alphabet {
	alph := alphabet.New()
	alph.Declare("plus", term.ArrowType{Left: natT, Right: term.ArrowType{Left: natT, Right: natT}})
	alph.Declare("s", term.ArrowType{Left: natT, Right: natT})
	return alph
}

func TestSplitterClassifiesFirstOrderAlphabetAsTFO(t *testing.T) {
	alph := plusAlphabet()
	rs := rule.Set{plusRule()}
	s := firstorder.NewSplitter(alph, rs)

	require.True(t, s.IsTFO("plus"))
	require.True(t, s.IsTFO("s"))
	require.False(t, s.IsPHO("plus"))
	require.True(t, s.FirstOrderRule(rs[0]))
	require.Len(t, s.FirstOrderPart(rs), 1)
}

func TestSplitterClassifiesHigherOrderArgumentAsPHO(t *testing.T) {
	alph := alphabet.New()
	// map : (nat -> nat) -> nat -> nat, taking a function argument.
	funcTyp := term.ArrowType{Left: natT, Right: natT}
	mapTyp := term.ArrowType{Left: funcTyp, Right: term.ArrowType{Left: natT, Right: natT}}
	alph.Declare("map", mapTyp)

	s := firstorder.NewSplitter(alph, nil)
	require.True(t, s.IsPHO("map"))
	require.False(t, s.IsTFO("map"))
}

func TestWriteTRSRendersVarAndRulesBlocks(t *testing.T) {
	rs := rule.Set{plusRule()}
	txt, err := firstorder.WriteTRS(rs, true)
	require.NoError(t, err)
	require.Contains(t, txt, "(VAR")
	require.Contains(t, txt, "(RULES")
	require.Contains(t, txt, "plus(s(")
	require.Contains(t, txt, "(STRATEGY INNERMOST)")
}

func TestSingleSortedAlphabetTrueForOneBaseSort(t *testing.T) {
	require.True(t, firstorder.SingleSortedAlphabet(plusAlphabet()))
}
