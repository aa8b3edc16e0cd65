package cmat

import (
	"fmt"
)

// Solve computes x for A*x = rhs using the factorization produced by
// Factor. The factorization is not modified and rhs is left intact.
func (m *Matrix) Solve(rhs []complex128) ([]complex128, error) {
	if !m.Factored {
		return nil, fmt.Errorf("matrix is not factored")
	}
	if len(rhs) < m.Rows {
		return nil, fmt.Errorf("rhs size(%d) is smaller than matrix size(%d)",
			len(rhs), m.Rows)
	}

	n := m.Rows
	intermediate := make([]complex128, n)

	// Reorder rhs from original to factored row ordering
	for i := 0; i < n; i++ {
		intermediate[i] = rhs[m.rowMap[i]]
	}

	// Forward elimination - solves Lc = b (unit lower triangle)
	for i := 1; i < n; i++ {
		temp := intermediate[i]
		for j := 0; j < i; j++ {
			temp -= m.At(i, j) * intermediate[j]
		}
		intermediate[i] = temp
	}

	// Backward substitution - solves Ux = c, diagonal holds reciprocals
	for i := n - 1; i >= 0; i-- {
		temp := intermediate[i]
		for j := i + 1; j < n; j++ {
			temp -= m.At(i, j) * intermediate[j]
		}
		intermediate[i] = temp * m.At(i, i)
	}

	return intermediate, nil
}

// Inverse returns the inverse of m, solving for one identity column at a
// time over a factored copy. m itself is left untouched.
func (m *Matrix) Inverse() (*Matrix, error) {
	if !m.IsSquare() {
		return nil, fmt.Errorf("cannot invert %dx%d matrix: not square", m.Rows, m.Cols)
	}

	lu := m.Clone()
	if !lu.Factored {
		if err := lu.Factor(); err != nil {
			m.SingularRow = lu.SingularRow
			m.SingularCol = lu.SingularCol
			return nil, fmt.Errorf("inverse: %v", err)
		}
	}

	n := m.Rows
	inv, _ := New(n, n)
	e := make([]complex128, n)
	for col := 0; col < n; col++ {
		e[col] = 1
		x, err := lu.Solve(e)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			inv.Set(i, col, x[i])
		}
		e[col] = 0
	}

	return inv, nil
}
