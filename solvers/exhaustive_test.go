package solvers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/solvers"
)

// bruteForceMin scans every assignment and returns the minimum energy,
// broken the same way solvers.better does (lower energy, then higher
// popcount), so tests can assert exact agreement with the exhaustive
// solvers under test.
func bruteForceMin(m *qubo.Matrix) (int64, int) {
	n := m.Size()
	bestE := m.Evaluate(qubo.ZeroSolution(n))
	bestPop := 0
	for mask := 0; mask < 1<<uint(n); mask++ {
		bits := make([]uint8, n)
		pop := 0
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				bits[i] = 1
				pop++
			}
		}
		e := m.Evaluate(qubo.NewSolution(bits))
		if e < bestE || (e == bestE && pop > bestPop) {
			bestE, bestPop = e, pop
		}
	}
	return bestE, bestPop
}

func smallMatrix(t *testing.T) *qubo.Matrix {
	t.Helper()
	// 4 variables, a mix of diagonal rewards and off-diagonal penalties.
	m, err := qubo.NewFromUpperTriangular(4, []qubo.Triplet{
		{Row: 0, Col: 0, Value: -2},
		{Row: 1, Col: 1, Value: -3},
		{Row: 2, Col: 2, Value: -1},
		{Row: 3, Col: 3, Value: -4},
		{Row: 0, Col: 1, Value: 5},
		{Row: 1, Col: 2, Value: 2},
		{Row: 2, Col: 3, Value: -1},
	})
	require.NoError(t, err)
	return m
}

func TestExhaustive_MatchesBruteForce(t *testing.T) {
	m := smallMatrix(t)
	wantE, wantPop := bruteForceMin(m)

	res := solvers.NewExhaustive().Solve(m)
	assert.Equal(t, wantE, res.Energy)
	assert.Equal(t, wantPop, res.X.PopCount())
}

func TestExhaustive_AllZeroProblem(t *testing.T) {
	m, err := qubo.NewFromUpperTriangular(3, nil)
	require.NoError(t, err)

	res := solvers.NewExhaustive().Solve(m)
	assert.EqualValues(t, 0, res.Energy)
}

func TestExhaustive_TieBreaksTowardHigherPopcount(t *testing.T) {
	// A single free variable with no terms touching it: 0 and 1 tie at
	// energy 0, and the tie-break must prefer the bit set.
	m, err := qubo.NewFromUpperTriangular(1, nil)
	require.NoError(t, err)

	res := solvers.NewExhaustive().Solve(m)
	assert.EqualValues(t, 0, res.Energy)
	assert.Equal(t, 1, res.X.PopCount())
}
