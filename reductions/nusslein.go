package reductions

import (
	"math/bits"

	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/sat"
)

// Nusslein implements the penalty-table reducer (spec §4.4): a dedicated
// diagonal term for 1-SAT, one of four Glover 2×2 patches for 2-SAT, one of
// eight explicit patches (one ancilla per clause) for 3-SAT, and a
// logarithmic "formula 6" widening — ⌈log₂(k+1)⌉ ancilla spins recursively
// folded back through the same table — for any k > 3.
//
// The original clause-count accumulator used internally by the reference
// encoding (a running sum of negative-literal occurrences, threaded through
// the recursive widening step) never feeds back into the triplet list or
// the energy offset once a clause's reduction finishes — it is recomputed
// from scratch per clause and its final value discarded by the caller. This
// port drops it rather than carry inert state.
type Nusslein struct{}

// NewNusslein returns a Nüsslein reducer. It accepts clauses of any length.
func NewNusslein() *Nusslein {
	return &Nusslein{}
}

// Reduce implements Reducer.
func (r *Nusslein) Reduce(p *sat.Problem) (*qubo.Matrix, UpModel, error) {
	if len(p.Clauses) == 0 {
		return nil, nil, ErrEmptyProblem
	}

	problemSize := int(p.NbVars)
	var triplets []qubo.Triplet
	for _, clause := range p.Clauses {
		var err error
		problemSize, triplets, err = nussleinImplementClause(problemSize, triplets, clause)
		if err != nil {
			return nil, nil, err
		}
	}

	m, err := qubo.NewFromUpperTriangular(problemSize, doublePenaltyDiagonal(triplets))
	if err != nil {
		return nil, nil, err
	}
	return m, newDirectUpModel(int(p.NbVars)), nil
}

func upperPair(a, b int, v int64) qubo.Triplet {
	if a < b {
		return qubo.Triplet{Row: a, Col: b, Value: v}
	}
	return qubo.Triplet{Row: b, Col: a, Value: v}
}

func diag(i int, v int64) qubo.Triplet {
	return qubo.Triplet{Row: i, Col: i, Value: v}
}

func nussleinImplementClause(problemSize int, triplets []qubo.Triplet, clause sat.Clause) (int, []qubo.Triplet, error) {
	switch len(clause) {
	case 1:
		v := clause[0]
		sign := int64(1)
		if v.Positive {
			sign = -1
		}
		triplets = append(triplets, diag(int(v.Index), sign))
		return problemSize, triplets, nil

	case 2:
		a, b := clause[0], clause[1]
		i, j := int(a.Index), int(b.Index)
		switch {
		case a.Positive && b.Positive:
			// 1 - x_i - x_j + x_i*x_j
			triplets = append(triplets, diag(i, -1), diag(j, -1), upperPair(i, j, 1))
		case a.Positive && !b.Positive:
			// x_j - x_i*x_j
			triplets = append(triplets, diag(j, 1), upperPair(i, j, -1))
		case !a.Positive && b.Positive:
			// x_i - x_i*x_j
			triplets = append(triplets, diag(i, 1), upperPair(i, j, -1))
		default:
			// x_i*x_j
			triplets = append(triplets, upperPair(i, j, 1))
		}
		return problemSize, triplets, nil

	case 3:
		anc := problemSize
		triplets = append(triplets, threeSATBitPattern(clause, anc)...)
		return anc + 1, triplets, nil

	default:
		return nussleinWiden(problemSize, triplets, clause)
	}
}

// threeSATBitPattern implements the eight sign-pattern patches of the
// reference table as a stand-alone QUBO-bit penalty over the clause's three
// literal variables and one ancilla. The four "families" (TTT,
// two-true/one-false, one-true/two-false, FFF) are distinguished by counting
// positive literals; within a family the roles bound to var_i/var_j/var_k
// follow the same encounter order the reference's pattern-match arms use for
// each concrete sign arrangement. Shared by Nusslein (used directly as QUBO
// triplets) and Chancellor (converted to an equivalent Ising Hamiltonian).
func threeSATBitPattern(clause sat.Clause, anc int) []qubo.Triplet {
	nPos := 0
	for _, v := range clause {
		if v.Positive {
			nPos++
		}
	}

	switch nPos {
	case 3: // TTT — positions are fixed: i=lit0, j=lit1, k=lit2.
		i, j, k := int(clause[0].Index), int(clause[1].Index), int(clause[2].Index)
		return []qubo.Triplet{
			upperPair(i, j, 2),
			upperPair(i, anc, -2),
			upperPair(j, anc, -2),
			diag(k, -1),
			upperPair(k, anc, 1),
			diag(anc, 1),
		}

	case 2: // two true, one false — i,j are the positives in order, k the negative.
		i, j, k := twoPositivesOneNegative(clause)
		return []qubo.Triplet{
			upperPair(i, j, 2),
			upperPair(i, anc, -2),
			upperPair(j, anc, -2),
			diag(k, 1),
			upperPair(k, anc, -1),
			diag(anc, 2),
		}

	case 1: // one true, two false — i the positive, j,k the negatives in order.
		i, j, k := onePositiveTwoNegatives(clause)
		return []qubo.Triplet{
			diag(i, 2),
			upperPair(i, j, -2),
			upperPair(i, anc, -2),
			upperPair(j, anc, 2),
			diag(k, 1),
			upperPair(k, anc, -1),
		}

	default: // FFF — positions are fixed: j=lit0, i=lit1, k=lit2.
		j, i, k := int(clause[0].Index), int(clause[1].Index), int(clause[2].Index)
		return []qubo.Triplet{
			diag(i, -1),
			upperPair(i, j, 1),
			upperPair(i, k, 1),
			upperPair(i, anc, 1),
			diag(j, -1),
			upperPair(j, k, 1),
			upperPair(j, anc, 1),
			diag(k, -1),
			upperPair(k, anc, 1),
			diag(anc, -1),
		}
	}
}

func twoPositivesOneNegative(clause sat.Clause) (i, j, k int) {
	positives := make([]int, 0, 2)
	for _, v := range clause {
		if v.Positive {
			positives = append(positives, int(v.Index))
		} else {
			k = int(v.Index)
		}
	}
	return positives[0], positives[1], k
}

func onePositiveTwoNegatives(clause sat.Clause) (i, j, k int) {
	negatives := make([]int, 0, 2)
	for _, v := range clause {
		if v.Positive {
			i = int(v.Index)
		} else {
			negatives = append(negatives, int(v.Index))
		}
	}
	return i, negatives[0], negatives[1]
}

// nussleinWiden implements "formula 6": the squared penalty
// (Σℓᵢ - Σ2ʲhⱼ)², with ℓ = x for a positive literal and 1-x for a negative
// one (its constant term dropped), ties ⌈log₂(k+1)⌉ ancilla bits hⱼ to the
// binary count of satisfied literals, and the clause over the new ancillas
// (all positive) recurses back through nussleinImplementClause.
func nussleinWiden(problemSize int, triplets []qubo.Triplet, clause sat.Clause) (int, []qubo.Triplet, error) {
	h := bits.Len(uint(len(clause)))
	newClause := make(sat.Clause, 0, h)

	idx, coef, c := []int{}, []int64{}, int64(0)
	for _, v := range clause {
		sign := int64(-1)
		if v.Positive {
			sign = 1
		} else {
			c++
		}
		idx, coef = append(idx, int(v.Index)), append(coef, sign)
	}
	for j := 0; j < h; j++ {
		hj := problemSize + j
		idx, coef = append(idx, hj), append(coef, -(int64(1)<<uint(j)))
		newClause = append(newClause, sat.Variable{Positive: true, Index: uint(hj)})
	}
	for a := range idx {
		triplets = append(triplets, diag(idx[a], coef[a]*coef[a]+2*c*coef[a]))
		for b := a + 1; b < len(idx); b++ {
			triplets = append(triplets, upperPair(idx[a], idx[b], 2*coef[a]*coef[b]))
		}
	}

	return nussleinImplementClause(problemSize+h, triplets, newClause)
}
