package qubo

// Evaluate computes E(x) = xᵀ·S·x exactly as an integer, by a single sparse
// row iteration: E = Σᵢ xᵢ·(Σⱼ S[i,j]·xⱼ).
// Complexity: O(nnz).
func (m *Matrix) Evaluate(x Solution) int64 {
	if x.Len() != m.n {
		panic(ErrSolutionLength)
	}
	var total int64
	for i := 0; i < m.n; i++ {
		if x.Bit(i) == 0 {
			continue
		}
		total += m.rowDot(i, x)
	}
	return total
}

// rowDot computes Σⱼ S[i,j]·xⱼ over row i's stored entries.
// Complexity: O(rowNNZ(i)).
func (m *Matrix) rowDot(i int, x Solution) int64 {
	var sum int64
	for _, e := range m.rows[i] {
		if x.Bit(e.col) != 0 {
			sum += e.value
		}
	}
	return sum
}

// DeltaEvaluateK returns Δₖ = E(flip(x,k)) - E(x), the change in energy
// caused by flipping bit k of x, computed in O(rowNNZ(k)) without
// materializing the flipped solution:
//
//	Δₖ = -2·σₖ·Σⱼ S[k,j]·xⱼ + S[k,k],  σₖ = 2·xₖ - 1
//
// Complexity: O(rowNNZ(k)).
func (m *Matrix) DeltaEvaluateK(x Solution, k int) int64 {
	sigmaK := x.Spin(k)
	rowDotK := m.rowDot(k, x)
	return -2*sigmaK*rowDotK + m.At(k, k)
}

// FlipJAndDeltaEvaluateK returns the delta for flipping bit k *after* bit j
// has already been flipped, given deltaK (the delta for flipping k before j
// was flipped):
//
//	E(flip(flip(x,j),k)) - E(flip(x,j))
//
// using the identity:
//
//	j == k:  -deltaK
//	j != k:  deltaK + 2·S[j,k]·σⱼ·σₖ
//
// x must be the solution *before* either flip (its bits j,k are read only to
// compute σⱼ,σₖ). This is the algebraic backbone that lets the exhaustive
// searchers maintain an O(n)-sized delta vector across a tree descent.
// Complexity: O(1).
func (m *Matrix) FlipJAndDeltaEvaluateK(x Solution, deltaK int64, j, k int) int64 {
	if j == k {
		return -deltaK
	}
	sigmaJ := x.Spin(j)
	sigmaK := x.Spin(k)
	return deltaK + 2*m.At(j, k)*sigmaJ*sigmaK
}

// InitialDeltas returns the length-n delta vector D where D[k] =
// DeltaEvaluateK(x,k) for every k, the precomputation exhaustive and
// parallel-exhaustive search start from.
// Complexity: O(nnz).
func (m *Matrix) InitialDeltas(x Solution) []int64 {
	d := make([]int64, m.n)
	for k := 0; k < m.n; k++ {
		d[k] = m.DeltaEvaluateK(x, k)
	}
	return d
}
