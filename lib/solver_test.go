package lib

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveUnique(t *testing.T) {
	solution := solve(CanonicalEquation{Coefficient: 2, Constant: 4})
	require.Equal(t, SolutionUnique, solution.Kind)
	require.Equal(t, 0, solution.Value.Cmp(big.NewRat(2, 1)))
	require.Equal(t, 2.0, solution.Float64())
	require.Equal(t, "2", solution.String())
}

func TestSolveUniqueNegativeCoefficient(t *testing.T) {
	solution := solve(CanonicalEquation{Coefficient: -3, Constant: -6})
	require.Equal(t, SolutionUnique, solution.Kind)
	require.Equal(t, 2.0, solution.Float64())
}

func TestSolveUniqueFraction(t *testing.T) {
	solution := solve(CanonicalEquation{Coefficient: 3, Constant: 1})
	require.Equal(t, SolutionUnique, solution.Kind)
	require.Equal(t, "1/3", solution.Value.RatString())
	require.InDelta(t, 1.0/3.0, solution.Float64(), 1e-15)
	require.Equal(t, "1/3 (0.3333333333)", solution.String())
}

func TestSolveInfinite(t *testing.T) {
	solution := solve(CanonicalEquation{})
	require.Equal(t, SolutionInfinite, solution.Kind)
	require.Nil(t, solution.Value)
	require.Equal(t, 0.0, solution.Float64())
	require.Equal(t, "infinitely many solutions", solution.String())
}

func TestSolveNone(t *testing.T) {
	solution := solve(CanonicalEquation{Constant: 1})
	require.Equal(t, SolutionNone, solution.Kind)
	require.Nil(t, solution.Value)
	require.Equal(t, "no solution", solution.String())
}
