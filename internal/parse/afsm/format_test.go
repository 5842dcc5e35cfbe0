package afsm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/parse/afsm"
	"github.com/hezzel/wanda-sub001/internal/term"
)

const plusSource = `
plus : nat -> nat -> nat
s : nat -> nat
zero : nat
X : nat
Y : nat

plus(s(X),Y) => s(plus(X,Y))
plus(zero,Y) => Y
`

func TestParseSuccessorAddition(t *testing.T) {
	res, err := afsm.Parse(plusSource)
	require.NoError(t, err)
	require.Len(t, res.Rules, 2)
	require.Equal(t, 2, res.Alphabet.Arity("plus"))
	require.Equal(t, 1, res.Alphabet.Arity("s"))

	first := res.Rules[0]
	head, args := term.Spine(first.Left)
	c, ok := head.(term.Constant)
	require.True(t, ok)
	require.Equal(t, "plus", c.Name)
	require.Len(t, args, 2)

	rhead, _ := term.Spine(first.Right)
	rc, ok := rhead.(term.Constant)
	require.True(t, ok)
	require.Equal(t, "s", rc.Name)
}

func TestParseRejectsUndeclaredIdentifier(t *testing.T) {
	_, err := afsm.Parse(`
s : nat -> nat

s(q) => q
`)
	require.Error(t, err)
}
