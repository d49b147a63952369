package reductions

import (
	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/sat"
)

// Chancellor implements the gadget-based reducer (spec §4.3): a clause's
// penalty is expressed as an Ising Hamiltonian over the clause's variables
// plus one ancilla spin, rather than directly as QUBO coefficients.
//
// Historical statements of Chancellor's 3-SAT bias table disagree with each
// other (spec §9's Open Question), and a from-scratch derivation under the
// textbook J/J_A/H/H_A relation collapses two of the four sign-pattern
// families onto the same ground-state energy — it cannot separate a
// satisfying assignment from the all-false one. This implementation instead
// derives every gadget from the already-verified Nüsslein penalty polynomial
// (the same threeSATBitPattern table, and the same formula-6 widening for
// clauses longer than three literals, both in nusslein.go) by the exact spin
// substitution xᵢ = (1+σᵢ)/2: a diagonal term v·xᵢ becomes a bias 2v·σᵢ, and
// an off-diagonal term w·xᵢxⱼ becomes biases w·σᵢ, w·σⱼ and a coupling
// w·σᵢσⱼ (every constant term the substitution produces is dropped — it
// shifts every assignment's energy by the same amount and has no effect on
// the minimizer). The whole Hamiltonian this yields is exactly 4x the
// original penalty polynomial, a uniform positive rescaling that preserves
// every tie and every gap the Nüsslein table was built to have.
type Chancellor struct{}

// NewChancellor returns a Chancellor reducer. It accepts clauses of any
// length (k > 3 widens via the same formula-6 ancillas Nüsslein uses).
func NewChancellor() *Chancellor {
	return &Chancellor{}
}

// Reduce implements Reducer.
func (r *Chancellor) Reduce(p *sat.Problem) (*qubo.Matrix, UpModel, error) {
	if len(p.Clauses) == 0 {
		return nil, nil, ErrEmptyProblem
	}

	problemSize := int(p.NbVars)
	var bitTriplets []qubo.Triplet
	for _, clause := range p.Clauses {
		var err error
		problemSize, bitTriplets, err = nussleinImplementClause(problemSize, bitTriplets, clause)
		if err != nil {
			return nil, nil, err
		}
	}

	builder := qubo.NewBuilder(problemSize)
	addBitPenaltyAsIsing(builder, bitTriplets)

	m, _, err := builder.Build()
	if err != nil {
		return nil, nil, err
	}
	return m, newDirectUpModel(int(p.NbVars)), nil
}

// addBitPenaltyAsIsing converts a bit-level penalty polynomial (the
// triplets produced by nussleinImplementClause: a diagonal triplet (u,u,v)
// is the term v·xᵤ, an off-diagonal triplet (u,v,w) is the term w·xᵤxᵥ) into
// Ising (bias, coupling) contributions via xᵢ = (1+σᵢ)/2, pre-scaled by 4 to
// keep every coefficient an integer.
func addBitPenaltyAsIsing(b *qubo.Builder, triplets []qubo.Triplet) {
	for _, t := range triplets {
		if t.Row == t.Col {
			b.AddBias(t.Row, 2*t.Value)
			continue
		}
		b.AddBias(t.Row, t.Value)
		b.AddBias(t.Col, t.Value)
		b.AddCoupling(t.Row, t.Col, t.Value)
	}
}
