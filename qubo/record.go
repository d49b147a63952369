package qubo

import "time"

// EnergyRecord captures one observation of a solver's running energy,
// emitted on demand by solvers that accept a Recorder. Time is wall-clock
// duration since the solver (or, for SimulatedAnnealer, the restart)
// started; Iteration increases monotonically within one run or restart, and
// records of concurrent restarts may arrive interleaved.
type EnergyRecord struct {
	Elapsed   time.Duration
	Iteration int64
	Energy    int64
}

// Recorder receives EnergyRecord observations during a solve. Implementations
// must be safe for concurrent use from multiple goroutines, since
// SimulatedAnnealer's parallel restarts all call the same Recorder.
type Recorder interface {
	Record(EnergyRecord)
}

// RecorderFunc adapts a plain function to the Recorder interface.
type RecorderFunc func(EnergyRecord)

// Record implements Recorder.
func (f RecorderFunc) Record(r EnergyRecord) { f(r) }

// NopRecorder discards every record; the default when a caller passes no
// Recorder to a solver.
var NopRecorder Recorder = RecorderFunc(func(EnergyRecord) {})
