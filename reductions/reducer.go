package reductions

import (
	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/sat"
)

// Reducer is the common shape of the four SAT→QUBO encodings: it consumes a
// read-only Problem and returns a freshly built Matrix paired with the
// UpModel needed to invert any QUBO solution of that matrix back to a SAT
// assignment. The orchestrator dispatches on a Reducer once, at startup,
// never again (spec §9).
type Reducer interface {
	Reduce(p *sat.Problem) (*qubo.Matrix, UpModel, error)
}

// UpModel inverts a QUBO bit-vector produced against a particular Reducer's
// Matrix back into a SAT Solution, including conflict detection that may
// downgrade the result to Unsat or Unknown.
type UpModel interface {
	// NbVars returns the original problem's variable count.
	NbVars() int
	// Decode inverts one QUBO solution. x.Len() must equal the dimension of
	// the Matrix this UpModel was paired with by Reduce.
	Decode(x qubo.Solution) sat.Solution
}

// directUpModel is the UpModel shared by Nüsslein, Nüsslein-2023 and
// Chancellor: every one of these encodings places the original variables in
// QUBO indices 0..nbVars-1 verbatim (ancillas occupy the remaining indices),
// so inversion is a straight bit read with no conflict state to track
// (spec §4.4: "the first nb_vars QUBO bits are the original variable
// assignments").
type directUpModel struct {
	nbVars int
}

func newDirectUpModel(nbVars int) directUpModel {
	return directUpModel{nbVars: nbVars}
}

func (m directUpModel) NbVars() int { return m.nbVars }

func (m directUpModel) Decode(x qubo.Solution) sat.Solution {
	assignment := make([]bool, m.nbVars)
	for i := 0; i < m.nbVars; i++ {
		assignment[i] = x.Bit(i) == 1
	}
	return sat.Sat(assignment)
}

// doublePenaltyDiagonal rescales a penalty polynomial's linear coefficients
// by 2, leaving every quadratic (off-diagonal) coefficient untouched.
//
// The penalty tables in this package (Nüsslein and Nüsslein-2023) are
// transcribed as a literal polynomial P(x) = Σdᵢxᵢ + Σcᵢⱼxᵢxⱼ, the
// coefficients a clause's satisfying bit patterns must tie at a shared
// minimum over. qubo.Matrix's symmetric storage (S = U + Uᵀ - diag(U))
// carries each off-diagonal coefficient into both S[i,j] and S[j,i], so
// Matrix.Evaluate counts it twice but counts a diagonal coefficient once —
// an asymmetry the upstream triplet values don't account for. Doubling every
// diagonal entry here scales the whole accumulated polynomial by a uniform
// 2 (Evaluate(x) == 2·P(x)), which preserves every tie and every gap P(x)
// was built to have.
func doublePenaltyDiagonal(triplets []qubo.Triplet) []qubo.Triplet {
	for i := range triplets {
		if triplets[i].Row == triplets[i].Col {
			triplets[i].Value *= 2
		}
	}
	return triplets
}
