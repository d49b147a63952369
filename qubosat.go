// Package qubosat reduces k-SAT DIMACS CNF instances to QUBO and minimizes
// the QUBO with a family of classical solvers, producing a SAT/UNSAT/UNKNOWN
// verdict.
//
// Subpackages:
//
//	sat/         — KSatProblem, Clause, Solution, DIMACS parsing
//	qubo/        — QuboMatrix, delta-evaluation calculus, the Ising builder
//	reductions/  — the four SAT→QUBO reducers (Choi, Chancellor, Nüsslein,
//	               Nüsslein-2023) and their UpModel inverses
//	solvers/     — ExhaustiveCore, ParallelExhaustive, SimulatedAnnealer,
//	               MomentumAnnealer
//	orchestrate/ — wires a Reducer and a Solver together and verifies output
//	internal/csvlog/ — the per-iteration EnergyRecord CSV writer
//	cmd/qubosat/ — the CLI entrypoint
package qubosat

import (
	"errors"
	"fmt"
)

// Kind tags an Error with the stage of the pipeline that produced it
// (SPEC_FULL.md §7).
type Kind int

const (
	// InputIo indicates a failure reading the CNF file or stdin.
	InputIo Kind = iota
	// InputParse indicates malformed DIMACS input.
	InputParse
	// InvalidReduction indicates a reducer received a clause shape it does
	// not implement.
	InvalidReduction
	// MatrixShape indicates a non-square matrix was submitted to a solver.
	MatrixShape
	// Conflict indicates an UpModel saw contradictory QUBO bits for the
	// same original variable.
	Conflict
	// Verification indicates the orchestrator's post-solve check found the
	// candidate assignment did not actually satisfy the original problem.
	Verification
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case InputIo:
		return "InputIo"
	case InputParse:
		return "InputParse"
	case InvalidReduction:
		return "InvalidReduction"
	case MatrixShape:
		return "MatrixShape"
	case Conflict:
		return "Conflict"
	case Verification:
		return "Verification"
	default:
		return "Unknown"
	}
}

// Error pairs a Kind with the underlying cause, so callers can branch on
// errors.As(err, &qubosat.Error{}) while the wrapped cause stays inspectable
// via errors.Is/errors.Unwrap.
type Error struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("qubosat: %s: %v", e.Kind, e.Err)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Wrap tags err with kind, returning nil if err is nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the Kind of err if it (or something it wraps) is a
// *qubosat.Error, and ok=false otherwise.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
