package qubo_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubo-toolkit/qubosat/qubo"
)

// randomUpperTriangular builds an n×n Matrix from random entries in
// [0,128), matching spec.md §8 scenario 2.
func randomUpperTriangular(t *testing.T, rng *rand.Rand, n int) *qubo.Matrix {
	t.Helper()
	var triplets []qubo.Triplet
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := int64(rng.Intn(128))
			if v == 0 {
				continue
			}
			triplets = append(triplets, qubo.Triplet{Row: i, Col: j, Value: v})
		}
	}
	m, err := qubo.NewFromUpperTriangular(n, triplets)
	require.NoError(t, err)
	return m
}

func randomSolution(rng *rand.Rand, n int) qubo.Solution {
	bits := make([]uint8, n)
	for i := range bits {
		bits[i] = uint8(rng.Intn(2))
	}
	return qubo.NewSolution(bits)
}

// TestDeltaEvaluateK_MatchesDirectEvaluation is property 1 from spec.md §8:
// delta_evaluate_k(x,k) = E(flip(x,k)) - E(x), for a random 100x100 matrix
// and random x, for every k.
func TestDeltaEvaluateK_MatchesDirectEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 100
	m := randomUpperTriangular(t, rng, n)
	x := randomSolution(rng, n)

	base := m.Evaluate(x)
	for k := 0; k < n; k++ {
		want := m.Evaluate(x.Flip(k)) - base
		got := m.DeltaEvaluateK(x, k)
		assert.EqualValuesf(t, want, got, "k=%d", k)
	}
}

// TestDeltaEvaluateK_Involution is property 2: flipping twice negates the
// delta.
func TestDeltaEvaluateK_Involution(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const n = 50
	m := randomUpperTriangular(t, rng, n)
	x := randomSolution(rng, n)

	for k := 0; k < n; k++ {
		d1 := m.DeltaEvaluateK(x, k)
		d2 := m.DeltaEvaluateK(x.Flip(k), k)
		assert.EqualValuesf(t, -d1, d2, "k=%d", k)
	}
}

// TestFlipJAndDeltaEvaluateK_MatchesDirectEvaluation is property 3.
func TestFlipJAndDeltaEvaluateK_MatchesDirectEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const n = 40
	m := randomUpperTriangular(t, rng, n)
	x := randomSolution(rng, n)

	for j := 0; j < n; j++ {
		xj := x.Flip(j)
		for k := 0; k < n; k++ {
			deltaK := m.DeltaEvaluateK(x, k)
			got := m.FlipJAndDeltaEvaluateK(x, deltaK, j, k)
			want := m.Evaluate(xj.Flip(k)) - m.Evaluate(xj)
			assert.EqualValuesf(t, want, got, "j=%d k=%d", j, k)
		}
	}
}

// TestEvaluate_ZeroVector is property 4: evaluate(0ⁿ) = 0.
func TestEvaluate_ZeroVector(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	const n = 20
	m := randomUpperTriangular(t, rng, n)
	assert.EqualValues(t, 0, m.Evaluate(qubo.ZeroSolution(n)))
}

func TestInitialDeltas_MatchesPerIndexDelta(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const n = 30
	m := randomUpperTriangular(t, rng, n)
	x := randomSolution(rng, n)

	deltas := m.InitialDeltas(x)
	for k := 0; k < n; k++ {
		assert.EqualValues(t, m.DeltaEvaluateK(x, k), deltas[k])
	}
}
