// Package orchestrate glues a reductions.Reducer and a solvers.Solver
// together into the full pipeline named in SPEC_FULL.md §4.9:
//
//	sat.Problem -> reductions.Reducer -> qubo.Matrix -> solvers.Solver ->
//	qubo.Solution -> reductions.UpModel -> sat.Solution
//
// and performs the post-solve verification step from spec §7: if the
// decoded solution claims SAT but does not actually satisfy the original
// problem, the result is downgraded to Unknown rather than returned as-is.
//
// Run also owns the telemetry stream SPEC_FULL.md §4.9 names ("emits a
// chan qubo.EnergyRecord telemetry stream consumed by the CSV writer and by
// debug-level log lines"): if the configured Solver supports it, Run
// attaches a recorder for the duration of the solve and fans every record
// out to the optional CSV writer and to a debug log line.
package orchestrate

import (
	"fmt"
	"sync"

	"github.com/qubo-toolkit/qubosat"
	"github.com/qubo-toolkit/qubosat/internal/csvlog"
	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/reductions"
	"github.com/qubo-toolkit/qubosat/sat"
	"github.com/qubo-toolkit/qubosat/solvers"
)

// Solver is the minimal shape orchestrate needs from a solvers.Solver,
// restated here so this package does not otherwise depend on the solvers
// package's constructors — only the interface it consumes.
type Solver interface {
	Solve(m *qubo.Matrix) solvers.Result
}

// recorderSetter is implemented by the solvers (SimulatedAnnealer,
// MomentumAnnealer) that emit per-iteration telemetry. ExhaustiveCore and
// ParallelExhaustive do not implement it — they have no iteration loop to
// instrument — so Run's telemetry wiring is a silent no-op for them.
type recorderSetter interface {
	SetRecorder(qubo.Recorder)
}

// Orchestrator runs one Reducer/Solver pair end to end.
type Orchestrator struct {
	Reducer   reductions.Reducer
	Solver    Solver
	CSVWriter *csvlog.Writer // optional; set via WithCSVWriter
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCSVWriter attaches a CSV sink for the per-iteration telemetry stream
// Run collects from the Solver, per spec §6's CSV log format.
func WithCSVWriter(w *csvlog.Writer) Option {
	return func(o *Orchestrator) { o.CSVWriter = w }
}

// New constructs an Orchestrator from a reducer and a solver.
func New(reducer reductions.Reducer, solver Solver, opts ...Option) *Orchestrator {
	o := &Orchestrator{Reducer: reducer, Solver: solver}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the full pipeline against p and returns the final
// sat.Solution. The returned error is non-nil only for InvalidReduction or
// MatrixShape failures (spec §7's fatal-during-development kinds); a
// Verification failure is recovered locally (downgraded to Unknown,
// logged) rather than returned, matching spec §7's "exit code remains 0"
// contract.
func (o *Orchestrator) Run(p *sat.Problem) (sat.Solution, error) {
	m, up, err := o.Reducer.Reduce(p)
	if err != nil {
		return sat.Solution{}, qubosat.Wrap(qubosat.InvalidReduction, fmt.Errorf("orchestrate: reduce: %w", err))
	}
	if up.NbVars() != int(p.NbVars) {
		return sat.Solution{}, qubosat.Wrap(qubosat.MatrixShape, fmt.Errorf("orchestrate: reducer's UpModel carries %d variables, problem has %d", up.NbVars(), p.NbVars))
	}

	stopTelemetry := o.startTelemetry()
	result := o.Solver.Solve(m)
	stopTelemetry()

	if result.Warning != "" {
		qubosat.Logger.Warn().Str("warning", result.Warning).Msg("solver reported a coverage warning")
	}

	sol := up.Decode(result.X)
	qubosat.Logger.Debug().Int64("energy", result.Energy).Str("status", sol.Status.String()).Msg("decoded candidate solution")

	if sol.Status == sat.StatusSat && !p.Evaluate(sol.Assignment) {
		verifyErr := qubosat.Wrap(qubosat.Verification, fmt.Errorf("orchestrate: decoded assignment does not satisfy the original problem"))
		qubosat.Logger.Error().Err(verifyErr).Msg("verification failed, downgrading to unknown")
		return sat.Unknown(), nil
	}

	return sol, nil
}

// startTelemetry attaches a telemetry recorder to o.Solver if it supports
// one, fanning every record out to o.CSVWriter (if configured) and a debug
// log line. It returns a stop function that must be called once Solve has
// returned, before Run proceeds: stopping closes the stream and blocks
// until the fan-out goroutine has drained it. If the Solver does not
// implement recorderSetter, stop is a no-op.
func (o *Orchestrator) startTelemetry() (stop func()) {
	setter, ok := o.Solver.(recorderSetter)
	if !ok {
		return func() {}
	}

	rec, records, closeFn := NewTelemetryRecorder()
	setter.SetRecorder(rec)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for r := range records {
			if o.CSVWriter != nil {
				o.CSVWriter.Record(r)
			}
			qubosat.Logger.Debug().
				Int64("iteration", r.Iteration).
				Int64("energy", r.Energy).
				Dur("elapsed", r.Elapsed).
				Msg("solver telemetry")
		}
	}()

	return func() {
		closeFn()
		wg.Wait()
	}
}
