package orchestrate

import (
	"github.com/qubo-toolkit/qubosat/qubo"
)

// NewTelemetryRecorder returns a qubo.Recorder that forwards every record
// onto the returned channel, plus a close function the caller must invoke
// once the solve that holds the recorder has returned (it closes the
// channel; the channel is unbuffered, so no record is left queued by then,
// and closeFn itself drains nothing). Orchestrator.Run
// calls this internally (see startTelemetry in orchestrate.go) to attach a
// recorder to any Solver supporting SetRecorder, fanning records out to the
// configured CSVWriter and to a debug log line — a slow consumer blocks the
// solver, since the channel is unbuffered.
func NewTelemetryRecorder() (rec qubo.Recorder, records <-chan qubo.EnergyRecord, closeFn func()) {
	ch := make(chan qubo.EnergyRecord)
	done := make(chan struct{})

	recorder := qubo.RecorderFunc(func(r qubo.EnergyRecord) {
		select {
		case ch <- r:
		case <-done:
		}
	})

	closeFn = func() {
		close(done)
		close(ch)
	}

	return recorder, ch, closeFn
}
