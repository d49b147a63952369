package reductions

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/qubo-toolkit/qubosat/qubo"
	"github.com/qubo-toolkit/qubosat/sat"
)

// defaultEdgePenalty is the Choi reducer's default conflict-edge weight
// (spec §9: "use a value >= 2 and parameterize" — 4 = 2*1+2 comfortably
// clears that floor against the -1 node weight below).
const defaultEdgePenalty int64 = 4

// Choi reduces k-SAT to Maximum Independent Set and then to QUBO: one node
// per literal occurrence, an edge (with a configurable penalty weight)
// between any two occurrences in the same clause and between any two
// occurrences in different clauses that reference the same variable with
// opposite polarity (spec §4.2).
type Choi struct {
	edgePenalty int64
}

// ChoiOption configures a Choi reducer.
type ChoiOption func(*Choi)

// WithEdgePenalty overrides the default conflict-edge weight. Per spec §9
// the value must be >= 2 to guarantee adjacent occurrences are never both
// selected in an optimal independent set.
func WithEdgePenalty(penalty int64) ChoiOption {
	return func(c *Choi) { c.edgePenalty = penalty }
}

// NewChoi returns a Choi reducer with the default edge penalty unless
// overridden by opts.
func NewChoi(opts ...ChoiOption) *Choi {
	c := &Choi{edgePenalty: defaultEdgePenalty}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type literalOccurrence struct {
	clauseIdx int
	varIndex  int
	positive  bool
}

// Reduce implements Reducer.
func (r *Choi) Reduce(p *sat.Problem) (*qubo.Matrix, UpModel, error) {
	if len(p.Clauses) == 0 {
		return nil, nil, ErrEmptyProblem
	}

	occurrences := flattenOccurrences(p)
	n := len(occurrences)

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(int64(i)))
	}
	addConflictEdge := func(u, v int) {
		if u == v || g.HasEdgeBetween(int64(u), int64(v)) {
			return
		}
		g.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(int64(u)),
			T: simple.Node(int64(v)),
			W: float64(r.edgePenalty),
		})
	}

	// Intra-clause: every pair of occurrences within the same clause conflicts
	// (an independent set may select at most one literal per clause).
	start := 0
	for _, c := range p.Clauses {
		k := len(c)
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				addConflictEdge(start+i, start+j)
			}
		}
		start += k
	}

	// Inter-clause: occurrences of the same variable with opposite polarity,
	// drawn from different clauses, also conflict.
	byVarPositive := make(map[int][]int)
	byVarNegative := make(map[int][]int)
	for idx, occ := range occurrences {
		if occ.positive {
			byVarPositive[occ.varIndex] = append(byVarPositive[occ.varIndex], idx)
		} else {
			byVarNegative[occ.varIndex] = append(byVarNegative[occ.varIndex], idx)
		}
	}
	for varIdx, posList := range byVarPositive {
		for _, u := range posList {
			for _, v := range byVarNegative[varIdx] {
				if occurrences[u].clauseIdx == occurrences[v].clauseIdx {
					continue
				}
				addConflictEdge(u, v)
			}
		}
	}

	triplets := make([]qubo.Triplet, 0, n+g.Edges().Len())
	for i := 0; i < n; i++ {
		triplets = append(triplets, diag(i, -1))
	}
	edges := g.Edges()
	for edges.Next() {
		e := edges.Edge()
		u, v := int(e.From().ID()), int(e.To().ID())
		w, _ := g.Weight(e.From().ID(), e.To().ID())
		triplets = append(triplets, upperPair(u, v, int64(w)))
	}

	m, err := qubo.NewFromUpperTriangular(n, triplets)
	if err != nil {
		return nil, nil, err
	}

	nbVars := int(p.NbVars)
	positive := make([][]int, nbVars)
	negative := make([][]int, nbVars)
	for idx, occ := range occurrences {
		if occ.positive {
			positive[occ.varIndex] = append(positive[occ.varIndex], idx)
		} else {
			negative[occ.varIndex] = append(negative[occ.varIndex], idx)
		}
	}

	return m, &ChoiUpModel{nbVars: nbVars, positive: positive, negative: negative}, nil
}

func flattenOccurrences(p *sat.Problem) []literalOccurrence {
	total := 0
	for _, c := range p.Clauses {
		total += len(c)
	}
	occurrences := make([]literalOccurrence, 0, total)
	for ci, c := range p.Clauses {
		for _, v := range c {
			occurrences = append(occurrences, literalOccurrence{
				clauseIdx: ci,
				varIndex:  int(v.Index),
				positive:  v.Positive,
			})
		}
	}
	return occurrences
}

// ChoiUpModel inverts a Choi QUBO solution per spec §4.2: for each original
// variable i, T_i (positive) and F_i (negative) are the occurrence indices
// asserting each polarity. A selected (bit=1) entry in only one list fixes
// that variable's value; selections in both lists is a firm conflict
// (downgrades the whole solution to Unsat); no selection in either list is
// an ambiguous gap (downgrades to Unknown).
type ChoiUpModel struct {
	nbVars   int
	positive [][]int
	negative [][]int
}

// NbVars implements UpModel.
func (m *ChoiUpModel) NbVars() int { return m.nbVars }

// Decode implements UpModel.
func (m *ChoiUpModel) Decode(x qubo.Solution) sat.Solution {
	assignment := make([]bool, m.nbVars)
	firmConflict := false
	ambiguous := false

	for i := 0; i < m.nbVars; i++ {
		selT := anySelected(x, m.positive[i])
		selF := anySelected(x, m.negative[i])
		switch {
		case selT && selF:
			firmConflict = true
		case selT:
			assignment[i] = true
		case selF:
			assignment[i] = false
		default:
			ambiguous = true
		}
	}

	if firmConflict {
		return sat.Unsat()
	}
	if ambiguous {
		return sat.Unknown()
	}
	return sat.Sat(assignment)
}

func anySelected(x qubo.Solution, indices []int) bool {
	for _, i := range indices {
		if x.Bit(i) == 1 {
			return true
		}
	}
	return false
}
