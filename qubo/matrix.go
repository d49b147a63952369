package qubo

import (
	"fmt"
	"sort"
)

// Triplet is a single (row, col, value) coefficient used to build a Matrix.
type Triplet struct {
	Row, Col int
	Value    int64
}

// entry is one non-zero coefficient stored within a compressed row.
type entry struct {
	col   int
	value int64
}

// Matrix is a square, sparse, integer QUBO coefficient matrix stored in
// symmetric form: for i != j, rows[i] and rows[j] carry matching entries for
// the (i,j)/(j,i) pair, so a row-only iteration already sees both halves of
// the quadratic form. Built once by a Reducer or an IsingBuilder and never
// mutated afterwards.
type Matrix struct {
	n    int
	rows [][]entry // rows[i] sorted ascending by col, one entry per distinct col
}

// Size returns the dimension n of the n×n matrix.
// Complexity: O(1).
func (m *Matrix) Size() int {
	return m.n
}

// At returns the stored coefficient S[row,col]. Complexity: O(log rowNNZ)
// via binary search, since each row is kept sorted by column.
func (m *Matrix) At(row, col int) int64 {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return 0
	}
	r := m.rows[row]
	i := sort.Search(len(r), func(i int) bool { return r[i].col >= col })
	if i < len(r) && r[i].col == col {
		return r[i].value
	}
	return 0
}

// RowNNZ returns the number of stored (non-default) entries in row i.
// Complexity: O(1).
func (m *Matrix) RowNNZ(i int) int {
	return len(m.rows[i])
}

// row gives read-only access to the compressed entries of row i, used by
// Evaluate and the delta-evaluation helpers in delta.go.
func (m *Matrix) row(i int) []entry {
	return m.rows[i]
}

// builderAcc accumulates (row,col) -> value, summing repeated contributions
// to the same coordinate the way a COO matrix would on conversion.
type builderAcc struct {
	n    int
	acc  map[[2]int]int64
}

func newBuilderAcc(n int) *builderAcc {
	return &builderAcc{n: n, acc: make(map[[2]int]int64)}
}

func (b *builderAcc) add(row, col int, value int64) error {
	if row < 0 || row >= b.n || col < 0 || col >= b.n {
		return fmt.Errorf("qubo: triplet (%d,%d) out of bounds for size %d: %w", row, col, b.n, ErrInvalidTriplet)
	}
	b.acc[[2]int{row, col}] += value
	return nil
}

// symmetricFromUpper folds an accumulated upper-triangular map (row<=col)
// into the symmetric compressed-row form S = U + Uᵀ - diag(U).
func (b *builderAcc) symmetricFromUpper() (*Matrix, error) {
	rowMap := make(map[int]map[int]int64, b.n)
	touch := func(r, c int, v int64) {
		if rowMap[r] == nil {
			rowMap[r] = make(map[int]int64)
		}
		rowMap[r][c] += v
	}

	for rc, v := range b.acc {
		row, col := rc[0], rc[1]
		if row > col {
			return nil, fmt.Errorf("qubo: triplet (%d,%d) is below the diagonal (matrix must be upper-triangular): %w", row, col, ErrInvalidTriplet)
		}
		if row == col {
			touch(row, col, v)
		} else {
			touch(row, col, v)
			touch(col, row, v)
		}
	}

	return rowsFromMap(b.n, rowMap), nil
}

// symmetricDirect folds an accumulated map of already-symmetric contributions
// (used by the Ising Builder, which writes both (i,j) and (j,i) explicitly)
// into compressed rows without the upper-triangular fold-back.
func (b *builderAcc) symmetricDirect() *Matrix {
	rowMap := make(map[int]map[int]int64, b.n)
	for rc, v := range b.acc {
		row, col := rc[0], rc[1]
		if rowMap[row] == nil {
			rowMap[row] = make(map[int]int64)
		}
		rowMap[row][col] += v
	}
	return rowsFromMap(b.n, rowMap)
}

func rowsFromMap(n int, rowMap map[int]map[int]int64) *Matrix {
	rows := make([][]entry, n)
	for i := 0; i < n; i++ {
		cols := rowMap[i]
		if len(cols) == 0 {
			continue
		}
		row := make([]entry, 0, len(cols))
		for c, v := range cols {
			if v == 0 {
				continue
			}
			row = append(row, entry{col: c, value: v})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
		rows[i] = row
	}
	return &Matrix{n: n, rows: rows}
}

// NewFromUpperTriangular builds a Matrix from an upper-triangular set of
// triplets (row <= col for every triplet): the stored matrix is
// S = U + Uᵀ - diag(U), so evaluating xᵀSx sees both halves of the
// quadratic form from a single row-only pass. Duplicate (row,col) triplets
// accumulate (sum), matching COO-matrix conversion semantics.
//
// Complexity: O(len(triplets)) time and space.
func NewFromUpperTriangular(n int, triplets []Triplet) (*Matrix, error) {
	if n <= 0 {
		return nil, ErrInvalidShape
	}
	acc := newBuilderAcc(n)
	for _, t := range triplets {
		if err := acc.add(t.Row, t.Col, t.Value); err != nil {
			return nil, err
		}
	}
	return acc.symmetricFromUpper()
}
