package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/alphabet"
	"github.com/hezzel/wanda-sub001/internal/rule"
	"github.com/hezzel/wanda-sub001/internal/term"
)

func TestAnswerQueryBooleanDispatch(t *testing.T) {
	a := rule.Analysis{
		LeftLinear:      true,
		Algebraic:       true,
		FullyExtended:   false,
		ArgumentFree:    true,
		EtaLong:         true,
		BaseOutputs:     false,
		Monomorphic:     true,
		FullyFirstOrder: false,
	}
	alph := alphabet.New()

	cases := []struct {
		query string
		want  string
	}{
		{"etalong", "YES"},
		{"baseoutputs", "NO"},
		{"local", "YES"},
		{"leftlinear", "YES"},
		{"algebraic", "YES"},
		{"fullyextended", "NO"},
		{"argumentfree", "YES"},
		{"monomorphic", "YES"},
		{"firstorder", "NO"},
	}
	for _, c := range cases {
		got, ok := answerQuery(c.query, alph, nil, a)
		require.True(t, ok, c.query)
		require.Equal(t, c.want, got, c.query)
	}
}

func TestAnswerQueryUnknownReturnsNotOK(t *testing.T) {
	_, ok := answerQuery("bogus", alphabet.New(), nil, rule.Analysis{})
	require.False(t, ok)
}

func TestAnswerQueryArities(t *testing.T) {
	alph := alphabet.New()
	o := term.BaseType{Name: "o"}
	alph.Declare("f", term.ArrowType{Left: o, Right: term.ArrowType{Left: o, Right: o}})
	alph.Declare("g", o)
	alph.SetArity("f", 2)
	alph.SetArity("g", 0)
	report, ok := answerQuery("arities", alph, nil, rule.Analysis{})
	require.True(t, ok)
	require.Contains(t, report, "f/2")
	require.Contains(t, report, "g/0")
}

func TestAnswerQueryDPCountEmptyRuleSet(t *testing.T) {
	got, ok := answerQuery("dpcount", alphabet.New(), rule.Set{}, rule.Analysis{})
	require.True(t, ok)
	require.Equal(t, "0", got)
}

func TestBoolAnswer(t *testing.T) {
	require.Equal(t, "YES", boolAnswer(true))
	require.Equal(t, "NO", boolAnswer(false))
}
