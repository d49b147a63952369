// Package reductions implements the four published SAT→QUBO encodings this
// system supports — Choi (MIS-based), Chancellor (gadget-based, one ancilla
// per 3-clause), Nüsslein (penalty-table, logarithmic widening for k>3), and
// Nüsslein-2023 (explicit 3-SAT case tables) — plus the UpModel reverse
// mapping each produces from a QUBO bit-vector back to a SAT assignment.
//
// The orchestrator (package orchestrate) dispatches on a Reducer once, at
// startup, and never again: reducer choice is not a hot path.
package reductions
