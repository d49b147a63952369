package reductions

import (
	"fmt"

	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/sat"
)

// Nusslein23 implements the explicit 3-SAT case table of the 2023 revision:
// one ancilla per clause, placed at index nb_vars+i for the i-th clause, and
// four coefficient shapes (collapsing the eight sign patterns by symmetry)
// selected by how many literals in the clause are positive.
//
// Unlike Nusslein, this reducer does not widen — it only accepts 3-clauses.
type Nusslein23 struct{}

// NewNusslein23 returns a Nüsslein-2023 reducer.
func NewNusslein23() *Nusslein23 {
	return &Nusslein23{}
}

// Reduce implements Reducer. Every clause must have exactly 3 literals, none
// sharing a variable index with another (spec §9's resolved Open Question:
// such clauses are rejected, not guessed at).
func (r *Nusslein23) Reduce(p *sat.Problem) (*qubo.Matrix, UpModel, error) {
	if len(p.Clauses) == 0 {
		return nil, nil, ErrEmptyProblem
	}

	nbVars := int(p.NbVars)
	problemSize := nbVars + len(p.Clauses)
	var triplets []qubo.Triplet

	for i, clause := range p.Clauses {
		if len(clause) != 3 {
			return nil, nil, fmt.Errorf("reductions: clause %d has %d literals: %w", i, len(clause), ErrUnsupportedClauseLength)
		}
		if clause.HasDuplicateVariable() {
			return nil, nil, fmt.Errorf("reductions: clause %d: %w", i, ErrDuplicateLiteral)
		}

		ancilla := nbVars + i
		triplets = append(triplets, nusslein23Pattern(clause, ancilla)...)
	}

	m, err := qubo.NewFromUpperTriangular(problemSize, doublePenaltyDiagonal(triplets))
	if err != nil {
		return nil, nil, err
	}
	return m, newDirectUpModel(nbVars), nil
}

func nusslein23Pattern(clause sat.Clause, ancilla int) []qubo.Triplet {
	nPos := 0
	for _, v := range clause {
		if v.Positive {
			nPos++
		}
	}

	switch nPos {
	case 3:
		a, b, c := int(clause[0].Index), int(clause[1].Index), int(clause[2].Index)
		return []qubo.Triplet{
			upperPair(a, b, 2),
			diag(c, -1),
			upperPair(ancilla, a, -2),
			upperPair(ancilla, b, -2),
			upperPair(ancilla, c, 1),
			diag(ancilla, 1),
		}

	case 2:
		a, b, c := twoPositivesOneNegative(clause)
		return []qubo.Triplet{
			upperPair(a, b, 2),
			diag(c, 1),
			upperPair(ancilla, a, -2),
			upperPair(ancilla, b, -2),
			upperPair(ancilla, c, -1),
			diag(ancilla, 2),
		}

	case 1:
		a, b, c := onePositiveTwoNegatives(clause)
		return []qubo.Triplet{
			diag(a, 2),
			upperPair(a, b, -2),
			diag(c, 1),
			upperPair(ancilla, a, -2),
			upperPair(ancilla, b, 2),
			upperPair(ancilla, c, -1),
		}

	default:
		a, b, c := int(clause[0].Index), int(clause[1].Index), int(clause[2].Index)
		return []qubo.Triplet{
			diag(a, -1),
			upperPair(a, b, 1),
			upperPair(a, c, 1),
			diag(b, -1),
			upperPair(b, c, 1),
			diag(c, -1),
			upperPair(ancilla, a, 1),
			upperPair(ancilla, b, 1),
			upperPair(ancilla, c, 1),
			diag(ancilla, -1),
		}
	}
}
