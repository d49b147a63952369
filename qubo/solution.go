package qubo

import "strings"

// Solution is a binary assignment vector x ∈ {0,1}ⁿ, cheaply cloned and
// flipped. The zero value is not usable; construct with NewSolution or
// ZeroSolution.
type Solution struct {
	bits []uint8
}

// ZeroSolution returns the all-zero solution of length n.
// Complexity: O(n).
func ZeroSolution(n int) Solution {
	return Solution{bits: make([]uint8, n)}
}

// NewSolution copies bits (each entry treated as zero/non-zero) into a new
// Solution of the same length.
// Complexity: O(n).
func NewSolution(bits []uint8) Solution {
	out := make([]uint8, len(bits))
	for i, b := range bits {
		if b != 0 {
			out[i] = 1
		}
	}
	return Solution{bits: out}
}

// Len returns the number of bits in the solution.
func (s Solution) Len() int { return len(s.bits) }

// Bit returns the value (0 or 1) of bit i.
func (s Solution) Bit(i int) int { return int(s.bits[i]) }

// Spin returns the Ising spin (±1) corresponding to bit i: σ = 2x-1.
func (s Solution) Spin(i int) int64 { return int64(2*s.bits[i]) - 1 }

// Clone returns an independent copy.
// Complexity: O(n).
func (s Solution) Clone() Solution {
	out := make([]uint8, len(s.bits))
	copy(out, s.bits)
	return Solution{bits: out}
}

// Flip returns a copy of s with bit i toggled, leaving s unmodified.
// Complexity: O(n).
func (s Solution) Flip(i int) Solution {
	out := s.Clone()
	out.bits[i] ^= 1
	return out
}

// FlipInPlace toggles bit i of s and returns s, for callers that already own
// an exclusive copy (e.g. a solver's working state) and want to avoid the
// allocation in Flip.
func (s Solution) FlipInPlace(i int) Solution {
	s.bits[i] ^= 1
	return s
}

// PopCount returns the number of set bits (the Hamming weight), used as the
// exhaustive-search tie-break (spec: "tie-break by higher bit-count").
func (s Solution) PopCount() int {
	n := 0
	for _, b := range s.bits {
		n += int(b)
	}
	return n
}

// Bits returns the underlying bit slice; callers must not mutate it.
func (s Solution) Bits() []uint8 { return s.bits }

// String renders the solution as a compact "0101..." string, matching the
// Debug format of the QUBO solutions logged by the reference solvers.
func (s Solution) String() string {
	var sb strings.Builder
	sb.Grow(len(s.bits))
	for _, b := range s.bits {
		if b != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
