package dep_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/dep"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

var o = term.BaseType{Name: "o"}
var natT = term.BaseType{Name: "nat"}

func succRule() rule.MatchRule {
	// plus(s(X), Y) => s(plus(X, Y))
	sOfX := term.Application{Fun: term.Constant{Name: "s", Typ: term.ArrowType{Left: natT, Right: natT}}, Arg: term.MetaApplication{Meta: term.MetaVariable{Index: 1, Typ: natT}}}
	y := term.MetaApplication{Meta: term.MetaVariable{Index: 2, Typ: natT}}
	plusTyp := term.ArrowType{Left: natT, Right: term.ArrowType{Left: natT, Right: natT}}
	left := term.Application{
		Fun: term.Application{Fun: term.Constant{Name: "plus", Typ: plusTyp}, Arg: sOfX},
		Arg: y,
	}
	x := term.MetaApplication{Meta: term.MetaVariable{Index: 1, Typ: natT}}
	inner := term.Application{
		Fun: term.Application{Fun: term.Constant{Name: "plus", Typ: plusTyp}, Arg: x},
		Arg: y,
	}
	right := term.Application{Fun: term.Constant{Name: "s", Typ: term.ArrowType{Left: natT, Right: natT}}, Arg: inner}
	return rule.MatchRule{Name: "plus-succ", Left: left, Right: right}
}

func TestConstructNormalDP(t *testing.T) {
	rs := rule.Set{succRule()}
	alph := alphabet.New()
	alph.Declare("plus", term.ArrowType{Left: natT, Right: term.ArrowType{Left: natT, Right: natT}})
	alph.Declare("s", term.ArrowType{Left: natT, Right: natT})
	analysis := rule.Analyse(rs)

	pairs := dep.Construct(rs, alph, analysis, dep.Dynamic)
	require.Len(t, pairs, 1)
	require.Equal(t, dep.StyleNormal, pairs[0].Style)
}

func TestQueryNoneatingIgnoresPositionBeyondBitZero(t *testing.T) {
	p := dep.NewPair(term.Constant{Name: "f", Typ: o}, term.Constant{Name: "g", Typ: o}, dep.StyleNormal)
	p.SetNoneating(3, 2) // mark position 2 non-eating for meta-var 3: sets bit 2, not bit 0

	// Faithfully-ported bug: only bit 0 is ever consulted, so asking
	// about position 2 (and any other position) reports false here
	// even though position 2 was the one explicitly marked.
	require.False(t, p.QueryNoneating(3, 2))
	require.False(t, p.QueryNoneating(3, 0))

	p.SetNoneating(3, 0)
	require.True(t, p.QueryNoneating(3, 0))
	require.True(t, p.QueryNoneating(3, 2)) // bit 0 set => every position reads true
}
