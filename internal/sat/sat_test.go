package sat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hezzel/wanda-sub001/internal/sat"
)

func TestExactlyOneSatisfiable(t *testing.T) {
	f := sat.NewFormula()
	a, b, c := f.NewVar(), f.NewVar(), f.NewVar()
	f.ExactlyOne([]sat.Var{a, b, c})

	model, ok, err := sat.DPLLSolver{}.Solve(context.Background(), f)
	require.NoError(t, err)
	require.True(t, ok)

	count := 0
	for _, v := range []sat.Var{a, b, c} {
		if model[v] {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestUnsatisfiable(t *testing.T) {
	f := sat.NewFormula()
	a := f.NewVar()
	f.AddClause(sat.Pos(a))
	f.AddClause(sat.Neg(a))

	_, ok, err := sat.DPLLSolver{}.Solve(context.Background(), f)
	require.NoError(t, err)
	require.False(t, ok)
}
