package qubo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubo-toolkit/qubosat/qubo"
)

func TestNewFromUpperTriangular_RejectsNonPositiveSize(t *testing.T) {
	_, err := qubo.NewFromUpperTriangular(0, nil)
	assert.ErrorIs(t, err, qubo.ErrInvalidShape)
}

func TestNewFromUpperTriangular_RejectsBelowDiagonal(t *testing.T) {
	_, err := qubo.NewFromUpperTriangular(2, []qubo.Triplet{{Row: 1, Col: 0, Value: 1}})
	assert.ErrorIs(t, err, qubo.ErrInvalidTriplet)
}

func TestEvaluate_ScenarioAllOnesThreeByThree(t *testing.T) {
	// spec.md §8 scenario 1: Q upper-triangular 3x3, all six entries = 1,
	// x = (1,1,1). Expected E = 9.
	m, err := qubo.NewFromUpperTriangular(3, []qubo.Triplet{
		{0, 0, 1}, {0, 1, 1}, {0, 2, 1},
		{1, 1, 1}, {1, 2, 1},
		{2, 2, 1},
	})
	require.NoError(t, err)

	x := qubo.NewSolution([]uint8{1, 1, 1})
	assert.EqualValues(t, 9, m.Evaluate(x))
}

func TestEvaluate_ZeroSolutionIsZero(t *testing.T) {
	m, err := qubo.NewFromUpperTriangular(3, []qubo.Triplet{{0, 0, 5}, {1, 2, 7}})
	require.NoError(t, err)

	assert.EqualValues(t, 0, m.Evaluate(qubo.ZeroSolution(3)))
}

func TestAt_MirrorsOffDiagonalEntries(t *testing.T) {
	m, err := qubo.NewFromUpperTriangular(2, []qubo.Triplet{{0, 1, 3}})
	require.NoError(t, err)

	assert.EqualValues(t, 3, m.At(0, 1))
	assert.EqualValues(t, 3, m.At(1, 0))
	assert.EqualValues(t, 0, m.At(0, 0))
}

func TestNewFromUpperTriangular_AccumulatesDuplicateTriplets(t *testing.T) {
	m, err := qubo.NewFromUpperTriangular(2, []qubo.Triplet{
		{0, 1, 2}, {0, 1, 3},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 5, m.At(0, 1))
}
