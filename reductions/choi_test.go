package reductions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/reductions"
	"github.com/qubo-toolkit/qubosat/sat"
)

// choiMinimize brute-forces every assignment of the occurrence-graph QUBO
// and returns one minimizer (ties broken by lowest bit pattern).
func choiMinimize(m *qubo.Matrix) qubo.Solution {
	n := m.Size()
	best := qubo.ZeroSolution(n)
	bestE := m.Evaluate(best)
	for mask := 1; mask < 1<<uint(n); mask++ {
		bits := make([]uint8, n)
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				bits[i] = 1
			}
		}
		x := qubo.NewSolution(bits)
		if e := m.Evaluate(x); e < bestE {
			bestE, best = e, x
		}
	}
	return best
}

func TestChoi_SatisfiableTwoClause(t *testing.T) {
	// (x0 v x1) ^ (!x0 v x1): satisfiable only by x1=true.
	p, err := sat.NewProblem(2, []sat.Clause{
		clauseOf(true, true),
		{{Positive: false, Index: 0}, {Positive: true, Index: 1}},
	})
	require.NoError(t, err)

	m, up, err := reductions.NewChoi().Reduce(p)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Size()) // 2 occurrences per clause

	sol := up.Decode(choiMinimize(m))
	require.Equal(t, sat.StatusSat, sol.Status)
	assert.True(t, p.Evaluate(sol.Assignment))
}

// TestChoi_UnitClauseContradictionIsAKnownGap pins a documented limitation
// (see DESIGN.md) of the per-variable UpModel described in spec §4.2: for two
// unit clauses on the same variable with opposite polarity (x0 ^ !x0, no
// satisfying assignment), the edge penalty still keeps the minimizer from
// ever selecting both occurrences at once, so Decode never observes the
// "both T_i and F_i have selections" conflict it checks for. The minimizer
// instead picks exactly one occurrence, and Decode reads a clean, wrong,
// unambiguous Sat from it. Nothing downstream of the minimizer can recover
// the dropped clause with this check alone.
func TestChoi_UnitClauseContradictionIsAKnownGap(t *testing.T) {
	p, err := sat.NewProblem(1, []sat.Clause{
		{{Positive: true, Index: 0}},
		{{Positive: false, Index: 0}},
	})
	require.NoError(t, err)

	m, up, err := reductions.NewChoi().Reduce(p)
	require.NoError(t, err)

	sol := up.Decode(choiMinimize(m))
	require.Equal(t, sat.StatusSat, sol.Status)
	assert.False(t, p.Evaluate(sol.Assignment), "decoded assignment does not actually satisfy p: the known gap")
}

func TestChoi_EdgePenaltyOption(t *testing.T) {
	p, err := sat.NewProblem(2, []sat.Clause{clauseOf(true, true)})
	require.NoError(t, err)

	m, _, err := reductions.NewChoi(reductions.WithEdgePenalty(10)).Reduce(p)
	require.NoError(t, err)
	assert.EqualValues(t, 10, m.At(0, 1))
}

func TestChoi_RejectsEmptyProblem(t *testing.T) {
	p := &sat.Problem{NbVars: 1}
	_, _, err := reductions.NewChoi().Reduce(p)
	assert.ErrorIs(t, err, reductions.ErrEmptyProblem)
}

func TestChoi_AmbiguousGapDowngradesToUnknown(t *testing.T) {
	// A single clause with no constraint forcing a selection: the all-zero
	// QUBO assignment (select nothing) is a valid independent set and ties
	// for minimum, leaving variable 0 with neither polarity selected.
	p, err := sat.NewProblem(1, []sat.Clause{{{Positive: true, Index: 0}}})
	require.NoError(t, err)

	m, up, err := reductions.NewChoi().Reduce(p)
	require.NoError(t, err)

	sol := up.Decode(qubo.ZeroSolution(m.Size()))
	assert.Equal(t, sat.StatusUnknown, sol.Status)
}
