package reductions

import "errors"

// Sentinel errors returned by the Reduce implementations in this package.
var (
	// ErrUnsupportedClauseLength indicates a reducer was handed a clause
	// shape it does not implement (spec: "InvalidReduction" kind). The
	// Nüsslein and Chancellor reducers never return this for k >= 1 (both
	// widen k > 3 via Nüsslein's logarithmic encoding); Nüsslein-2023
	// returns it for every clause whose length is not 3.
	ErrUnsupportedClauseLength = errors.New("reductions: clause length not supported by this reducer")

	// ErrDuplicateLiteral mirrors sat.ErrDuplicateLiteral for reducers
	// (Nüsslein-2023) whose positional case table is undefined when a
	// 3-clause references the same variable twice (spec §9 Open Question).
	ErrDuplicateLiteral = errors.New("reductions: duplicate-literal clause rejected")

	// ErrEmptyProblem indicates a problem with zero clauses, which carries
	// no penalty terms to build a QUBO around.
	ErrEmptyProblem = errors.New("reductions: problem has no clauses")
)
