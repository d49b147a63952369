package sat

import "errors"

// Sentinel errors for SAT problem construction and DIMACS parsing.
var (
	// ErrVariableOutOfRange indicates a clause referenced a variable index
	// that is not < the problem's NbVars.
	ErrVariableOutOfRange = errors.New("sat: variable index out of range")

	// ErrEmptyClause indicates a clause with zero literals, which is
	// semantically impossible (spec: "length >= 1").
	ErrEmptyClause = errors.New("sat: empty clause")

	// ErrDuplicateLiteral indicates a 3-clause referenced the same variable
	// index twice. Nüsslein-2023's ordering is underspecified for this case
	// (spec.md §9 Open Questions), so such clauses are rejected during
	// reduction rather than guessed at.
	ErrDuplicateLiteral = errors.New("sat: duplicate literal in clause")

	// ErrBadHeader indicates a malformed or missing "p cnf <n> <m>" header.
	ErrBadHeader = errors.New("sat: malformed DIMACS header")

	// ErrBadToken indicates a non-integer token in a clause line.
	ErrBadToken = errors.New("sat: non-integer token")

	// ErrMissingTerminator indicates the input ended inside a clause, before
	// its terminating literal "0" (a clause may span several lines).
	ErrMissingTerminator = errors.New("sat: clause missing terminating 0")

	// ErrClauseCountMismatch indicates the file did not contain exactly
	// nb_clauses clauses.
	ErrClauseCountMismatch = errors.New("sat: clause count does not match header")
)
