// Package solvers implements the four QUBO minimizers this system ships:
// ExhaustiveCore (exact, single-threaded), ParallelExhaustive (exact,
// fork-joined across a worker pool), SimulatedAnnealer (heuristic, Metropolis
// with a bounded acceptance window) and MomentumAnnealer (heuristic, spin
// dynamics driven by the dominant eigenvalue of the coupling matrix).
//
// Every solver reports its result as a Result. SimulatedAnnealer and
// MomentumAnnealer also accept a qubo.Recorder and stream one EnergyRecord
// per iteration to it for the orchestrator's telemetry and CSV log; the two
// exhaustive solvers record nothing.
package solvers

import "github.com/qubo-toolkit/qubosat/qubo"

// Result is a minimizer's answer: the best bit-vector found and its energy.
// Warning carries a non-fatal advisory (e.g. ParallelExhaustive's "still
// exponential" notice) for the caller to surface via logging; empty when
// there is nothing to report.
type Result struct {
	X       qubo.Solution
	Energy  int64
	Warning string
}

// better reports whether candidate should replace current under the
// exhaustive search tie-break (spec §4.5): lower energy wins outright; equal
// energy prefers the higher popcount, which makes the chosen representative
// deterministic and favors a non-trivial solution over the all-zero one.
func better(candidate, current Result) bool {
	if candidate.Energy != current.Energy {
		return candidate.Energy < current.Energy
	}
	return candidate.X.PopCount() > current.X.PopCount()
}

// Solver is the common shape of every minimizer in this package.
type Solver interface {
	Solve(m *qubo.Matrix) Result
}
