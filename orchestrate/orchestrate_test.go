package orchestrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubo-toolkit/qubosat"
	"github.com/qubo-toolkit/qubosat/orchestrate"
	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/reductions"
	"github.com/qubo-toolkit/qubosat/sat"
	"github.com/qubo-toolkit/qubosat/solvers"
)

// trivialSatProblem is (x0 v x1) ^ (!x0 v x1), satisfiable only by x1=true —
// the same instance reductions.TestChoi_SatisfiableTwoClause is grounded on.
func trivialSatProblem(t *testing.T) *sat.Problem {
	t.Helper()
	p, err := sat.NewProblem(2, []sat.Clause{
		{{Positive: true, Index: 0}, {Positive: true, Index: 1}},
		{{Positive: false, Index: 0}, {Positive: true, Index: 1}},
	})
	require.NoError(t, err)
	return p
}

func TestOrchestrator_RunProducesSatisfyingAssignment(t *testing.T) {
	p := trivialSatProblem(t)

	o := orchestrate.New(reductions.NewNusslein(), solvers.NewExhaustive())
	sol, err := o.Run(p)

	require.NoError(t, err)
	require.Equal(t, sat.StatusSat, sol.Status)
	assert.True(t, p.Evaluate(sol.Assignment))
}

// failingReducer always reports a clause shape it doesn't support, so Run
// must surface an InvalidReduction-tagged error rather than panicking.
type failingReducer struct{}

func (failingReducer) Reduce(p *sat.Problem) (*qubo.Matrix, reductions.UpModel, error) {
	return nil, nil, reductions.ErrUnsupportedClauseLength
}

func TestOrchestrator_RunWrapsReduceError(t *testing.T) {
	p := trivialSatProblem(t)

	o := orchestrate.New(failingReducer{}, solvers.NewExhaustive())
	_, err := o.Run(p)

	require.Error(t, err)
	kind, ok := qubosat.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, qubosat.InvalidReduction, kind)
}
