package qubo

import "errors"

// Sentinel errors returned by Matrix constructors and the Ising Builder.
var (
	// ErrInvalidShape indicates a non-positive or non-square matrix dimension.
	ErrInvalidShape = errors.New("qubo: matrix dimension must be > 0")

	// ErrInvalidTriplet indicates a triplet referenced an out-of-range index,
	// or violated the upper-triangular contract (row > col).
	ErrInvalidTriplet = errors.New("qubo: invalid triplet")

	// ErrSolutionLength indicates a Solution's length does not match the
	// owning Matrix's dimension.
	ErrSolutionLength = errors.New("qubo: solution length mismatch")
)
