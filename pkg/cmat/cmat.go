// Package cmat is a dense complex matrix kernel for scattering-parameter
// work: creation, products, block placement, LU factorization and solves.
package cmat

import (
	"fmt"
	"math"
)

type Matrix struct {
	Rows int
	Cols int

	data []complex128 // row-major

	// Factoring status
	Factored    bool
	SingularRow int // Singular row number, -1 when not singular
	SingularCol int // Singular column number, -1 when not singular

	rowMap []int // factored row -> original row
}

func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid size: %dx%d", rows, cols)
	}

	return &Matrix{
		Rows:        rows,
		Cols:        cols,
		data:        make([]complex128, rows*cols),
		SingularRow: -1,
		SingularCol: -1,
	}, nil
}

// Eye returns the n by n identity matrix.
func Eye(n int) *Matrix {
	m, _ := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

func (m *Matrix) At(row, col int) complex128 {
	return m.data[row*m.Cols+col]
}

func (m *Matrix) Set(row, col int, value complex128) {
	m.data[row*m.Cols+col] = value
}

func (m *Matrix) Add(row, col int, value complex128) {
	m.data[row*m.Cols+col] += value
}

func (m *Matrix) IsSquare() bool {
	return m.Rows == m.Cols
}

func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		Rows:        m.Rows,
		Cols:        m.Cols,
		data:        make([]complex128, len(m.data)),
		Factored:    m.Factored,
		SingularRow: m.SingularRow,
		SingularCol: m.SingularCol,
	}
	copy(c.data, m.data)
	if m.rowMap != nil {
		c.rowMap = make([]int, len(m.rowMap))
		copy(c.rowMap, m.rowMap)
	}
	return c
}

func (m *Matrix) Clear() {
	for i := range m.data {
		m.data[i] = 0
	}
	m.Factored = false
	m.SingularRow = -1
	m.SingularCol = -1
	m.rowMap = nil
}

// SetBlock copies b into m with its upper-left corner at (row, col).
func (m *Matrix) SetBlock(row, col int, b *Matrix) error {
	if row < 0 || col < 0 || row+b.Rows > m.Rows || col+b.Cols > m.Cols {
		return fmt.Errorf("block %dx%d at (%d,%d) does not fit in %dx%d",
			b.Rows, b.Cols, row, col, m.Rows, m.Cols)
	}
	for i := 0; i < b.Rows; i++ {
		copy(m.data[(row+i)*m.Cols+col:(row+i)*m.Cols+col+b.Cols],
			b.data[i*b.Cols:(i+1)*b.Cols])
	}
	return nil
}

// Mul returns the matrix product a*b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("dimension mismatch: %dx%d times %dx%d",
			a.Rows, a.Cols, b.Rows, b.Cols)
	}

	out, _ := New(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		for k := 0; k < a.Cols; k++ {
			aik := a.data[i*a.Cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.Cols; j++ {
				out.data[i*out.Cols+j] += aik * b.data[k*b.Cols+j]
			}
		}
	}
	return out, nil
}

// Sub returns a - b.
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return nil, fmt.Errorf("dimension mismatch: %dx%d minus %dx%d",
			a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out, _ := New(a.Rows, a.Cols)
	for i := range out.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// MulVec returns the product m*x.
func (m *Matrix) MulVec(x []complex128) ([]complex128, error) {
	if len(x) != m.Cols {
		return nil, fmt.Errorf("vector size %d does not match matrix columns %d",
			len(x), m.Cols)
	}
	out := make([]complex128, m.Rows)
	for i := 0; i < m.Rows; i++ {
		var sum complex128
		row := m.data[i*m.Cols : (i+1)*m.Cols]
		for j, v := range row {
			sum += v * x[j]
		}
		out[i] = sum
	}
	return out, nil
}

// mag1 is the 1-norm magnitude |re| + |im| used for pivot selection.
func mag1(v complex128) float64 {
	return math.Abs(real(v)) + math.Abs(imag(v))
}
