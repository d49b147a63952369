package qubo

// Builder assembles a Matrix from Ising-form (bias, coupling) triples,
// H(σ) = Σ hᵢσᵢ + Σ Jᵢⱼσᵢσⱼ with spins σ ∈ {-1,+1} mapped to bits by
// σ = 2x-1, tracking the additive energy offset needed to recover the
// original Ising energy from a QUBO evaluation.
//
// Zero-valued couplings are skipped entirely (they would contribute the
// zero matrix anyway); AddBias with h=0 is likewise a no-op.
type Builder struct {
	n         int
	biases    map[int]int64
	couplings map[[2]int]int64 // key (i,j) with i<j
}

// NewBuilder returns an empty Builder for an n-spin Ising system.
func NewBuilder(n int) *Builder {
	return &Builder{
		n:         n,
		biases:    make(map[int]int64),
		couplings: make(map[[2]int]int64),
	}
}

// AddBias adds hᵢ to the bias of spin i. Repeated calls for the same i
// accumulate.
func (b *Builder) AddBias(i int, h int64) {
	if h == 0 {
		return
	}
	b.biases[i] += h
}

// AddCoupling adds Jᵢⱼ to the coupling between spins i and j (i != j).
// Zero-valued couplings are skipped. Repeated calls for the same pair
// accumulate; order of i,j does not matter.
func (b *Builder) AddCoupling(i, j int, jCoupling int64) {
	if jCoupling == 0 || i == j {
		return
	}
	if i > j {
		i, j = j, i
	}
	b.couplings[[2]int{i, j}] += jCoupling
}

// Build converts the accumulated Ising triples into a Matrix and the
// additive energy offset such that, for every bit vector x (σ = 2x-1):
//
//	H(σ) == Matrix.Evaluate(x) + offset
//
// Matrix.Evaluate sums a stored off-diagonal coefficient from both its (i,j)
// and (j,i) entries (the matrix is symmetric), so each pairwise Jᵢⱼ need
// only be written in once per unit to reach the 4Jᵢⱼxᵢxⱼ term the σᵢσⱼ
// expansion produces. Per spin substitution:
//
//	Q[i,i] += 2·hᵢ - 2·Σⱼ Jᵢⱼ   (summed over couplings touching i)
//	Q[i,j] += 2·Jᵢⱼ
//	offset  = (Σ Jᵢⱼ) - (Σ hᵢ)
//
// Complexity: O(len(biases) + len(couplings)).
func (b *Builder) Build() (*Matrix, int64, error) {
	if b.n <= 0 {
		return nil, 0, ErrInvalidShape
	}

	acc := newBuilderAcc(b.n)
	var offset int64

	rowCouplingSum := make(map[int]int64, b.n)
	for ij, jCoupling := range b.couplings {
		i, j := ij[0], ij[1]
		if err := acc.add(i, j, 2*jCoupling); err != nil {
			return nil, 0, err
		}
		if err := acc.add(j, i, 2*jCoupling); err != nil {
			return nil, 0, err
		}
		rowCouplingSum[i] += jCoupling
		rowCouplingSum[j] += jCoupling
		offset += jCoupling
	}

	for i := 0; i < b.n; i++ {
		h := b.biases[i]
		diag := 2*h - 2*rowCouplingSum[i]
		if diag != 0 {
			if err := acc.add(i, i, diag); err != nil {
				return nil, 0, err
			}
		}
		offset -= h
	}

	return acc.symmetricDirect(), offset, nil
}

// GetIsing is the algebraic inverse of Build: given a Matrix produced (even
// indirectly) from Ising triples, it recovers biases h and couplings J such
// that re-building from (h,J) via Build reproduces the same Matrix and
// offset. Off-diagonal entries are divided by 2 (the scaling Build
// introduces); callers decomposing an arbitrary (non-Ising-derived) Matrix
// should expect this division to be exact only when every off-diagonal
// coefficient is a multiple of 2.
//
// Complexity: O(nnz).
func GetIsing(m *Matrix) (biases map[int]int64, couplings map[[2]int]int64) {
	biases = make(map[int]int64)
	couplings = make(map[[2]int]int64)
	rowCouplingSum := make(map[int]int64, m.n)

	for i := 0; i < m.n; i++ {
		for _, e := range m.rows[i] {
			if e.col <= i {
				continue
			}
			j := e.col
			jCoupling := e.value / 2
			couplings[[2]int{i, j}] = jCoupling
			rowCouplingSum[i] += jCoupling
			rowCouplingSum[j] += jCoupling
		}
	}

	for i := 0; i < m.n; i++ {
		diag := m.At(i, i)
		h := (diag + 2*rowCouplingSum[i]) / 2
		if h != 0 {
			biases[i] = h
		}
	}

	return biases, couplings
}
