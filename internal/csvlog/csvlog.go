// Package csvlog writes per-iteration solver telemetry to a CSV file, the
// CSV collaborator named in SPEC_FULL.md §6: header
// "time_stamp,iteration_stamp,energy", one row per qubo.EnergyRecord.
package csvlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/qubo-toolkit/qubosat/qubo"
)

// ErrAlreadyExists indicates the requested path already has a file at it;
// per spec §6, the log must not overwrite a pre-existing file.
var ErrAlreadyExists = errors.New("csvlog: path already exists")

var header = []string{"time_stamp", "iteration_stamp", "energy"}

// Writer implements qubo.Recorder, appending one CSV row per Record call.
// Not safe for concurrent use without external synchronization; callers
// that fan Record out across goroutines (SimulatedAnnealer restarts) must
// serialize their own writes, e.g. by wrapping a Writer in a mutex-guarded
// Recorder.
type Writer struct {
	f *os.File
	w *csv.Writer
}

// Create opens a fresh CSV log at path, refusing to overwrite an existing
// file (os.O_EXCL), and writes the header row.
func Create(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("csvlog: %s: %w", path, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("csvlog: creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("csvlog: writing header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("csvlog: flushing header: %w", err)
	}

	return &Writer{f: f, w: w}, nil
}

// Record implements qubo.Recorder.
func (cw *Writer) Record(r qubo.EnergyRecord) {
	row := []string{
		strconv.FormatInt(r.Elapsed.Nanoseconds(), 10),
		strconv.FormatInt(r.Iteration, 10),
		strconv.FormatInt(r.Energy, 10),
	}
	if err := cw.w.Write(row); err != nil {
		return
	}
	cw.w.Flush()
}

// Close flushes any buffered rows and closes the underlying file.
func (cw *Writer) Close() error {
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		cw.f.Close()
		return fmt.Errorf("csvlog: flushing: %w", err)
	}
	return cw.f.Close()
}

var _ qubo.Recorder = (*Writer)(nil)
