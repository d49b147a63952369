package reductions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/reductions"
	"github.com/qubo-toolkit/qubosat/sat"
)

func clauseOf(signs ...bool) sat.Clause {
	c := make(sat.Clause, len(signs))
	for i, positive := range signs {
		c[i] = sat.Variable{Positive: positive, Index: uint(i)}
	}
	return c
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// minOverAncilla returns the lowest Matrix.Evaluate over both ancilla
// values for a fixed (x0,x1,x2) assignment.
func minOverAncilla(m *qubo.Matrix, assignment []bool) int64 {
	best := m.Evaluate(qubo.NewSolution([]uint8{b2u(assignment[0]), b2u(assignment[1]), b2u(assignment[2]), 0}))
	if alt := m.Evaluate(qubo.NewSolution([]uint8{b2u(assignment[0]), b2u(assignment[1]), b2u(assignment[2]), 1})); alt < best {
		best = alt
	}
	return best
}

// TestChancellor_AllEightPatterns is spec.md §4.3's resolved Open Question
// check: for every one of the 8 sign-pattern 3-clauses, minimizing over the
// ancilla bit must give every satisfying (var_i,var_j,var_k) assignment the
// same minimal energy, strictly below the minimal-over-ancilla energy of the
// single violating assignment.
func TestChancellor_AllEightPatterns(t *testing.T) {
	patterns := []struct {
		name string
		c    sat.Clause
	}{
		{"TTT", clauseOf(true, true, true)},
		{"TTF", clauseOf(true, true, false)},
		{"TFT", clauseOf(true, false, true)},
		{"FTT", clauseOf(false, true, true)},
		{"TFF", clauseOf(true, false, false)},
		{"FTF", clauseOf(false, true, false)},
		{"FFT", clauseOf(false, false, true)},
		{"FFF", clauseOf(false, false, false)},
	}

	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			problem, err := sat.NewProblem(3, []sat.Clause{p.c})
			require.NoError(t, err)

			m, _, err := reductions.NewChancellor().Reduce(problem)
			require.NoError(t, err)
			require.Equal(t, 4, m.Size())

			var minSat, energyUnsat int64
			sawSat := false

			for bits := 0; bits < 8; bits++ {
				assignment := []bool{bits&1 != 0, bits&2 != 0, bits&4 != 0}
				energy := minOverAncilla(m, assignment)

				if problem.Evaluate(assignment) {
					if sawSat {
						assert.Equal(t, minSat, energy, "satisfying assignment %03b should tie with the others", bits)
					} else {
						minSat, sawSat = energy, true
					}
				} else {
					energyUnsat = energy
				}
			}

			require.True(t, sawSat)
			assert.Less(t, minSat, energyUnsat, "%s: satisfying minimum must be strictly below the violating energy", p.name)
		})
	}
}

func TestChancellor_RejectsEmptyProblem(t *testing.T) {
	p := &sat.Problem{NbVars: 1}
	_, _, err := reductions.NewChancellor().Reduce(p)
	assert.ErrorIs(t, err, reductions.ErrEmptyProblem)
}

func TestChancellor_WidensLongClauses(t *testing.T) {
	c := clauseOf(true, true, true, true, true)
	problem, err := sat.NewProblem(5, []sat.Clause{c})
	require.NoError(t, err)

	m, up, err := reductions.NewChancellor().Reduce(problem)
	require.NoError(t, err)
	assert.Greater(t, m.Size(), 5)
	assert.Equal(t, 5, up.NbVars())
}
