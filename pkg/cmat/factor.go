package cmat

import (
	"fmt"
)

// Factor performs an in-place LU factorization with partial pivoting.
// Multipliers are stored below the diagonal, the upper triangle holds U,
// and the diagonal holds the reciprocal of each pivot. On a zero pivot the
// singular step is recorded in SingularRow/SingularCol.
func (m *Matrix) Factor() error {
	if !m.IsSquare() {
		return fmt.Errorf("cannot factor %dx%d matrix: not square", m.Rows, m.Cols)
	}
	if m.Factored {
		return nil
	}

	n := m.Rows
	m.rowMap = make([]int, n)
	for i := range m.rowMap {
		m.rowMap[i] = i
	}

	for step := 0; step < n; step++ {
		// Partial pivoting on the 1-norm magnitude
		maxRow := step
		maxMag := mag1(m.At(step, step))
		for i := step + 1; i < n; i++ {
			if v := mag1(m.At(i, step)); v > maxMag {
				maxMag = v
				maxRow = i
			}
		}

		if maxMag == 0.0 {
			m.SingularRow = m.rowMap[step]
			m.SingularCol = step
			return fmt.Errorf("zero pivot at step %d", step)
		}

		if maxRow != step {
			m.swapRows(step, maxRow)
			m.rowMap[step], m.rowMap[maxRow] = m.rowMap[maxRow], m.rowMap[step]
		}

		rec := 1.0 / m.At(step, step)
		m.Set(step, step, rec)

		for i := step + 1; i < n; i++ {
			mult := m.At(i, step) * rec
			if mult == 0 {
				continue
			}
			m.Set(i, step, mult)
			for j := step + 1; j < n; j++ {
				m.Add(i, j, -mult*m.At(step, j))
			}
		}
	}

	m.Factored = true
	return nil
}

func (m *Matrix) swapRows(a, b int) {
	ra := m.data[a*m.Cols : (a+1)*m.Cols]
	rb := m.data[b*m.Cols : (b+1)*m.Cols]
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}
