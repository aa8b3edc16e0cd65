package cmat

import (
	"fmt"
	"strings"
)

// String formats the matrix as a grid of complex values.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			v := m.At(i, j)
			fmt.Fprintf(&sb, "%9.4f%+9.4fj  ", real(v), imag(v))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Print writes the matrix to stdout with row and column headers.
func (m *Matrix) Print() {
	fmt.Printf("%4s", "")
	for j := 0; j < m.Cols; j++ {
		fmt.Printf("%20d ", j)
	}
	fmt.Println()

	for i := 0; i < m.Rows; i++ {
		fmt.Printf("%4d", i)
		for j := 0; j < m.Cols; j++ {
			v := m.At(i, j)
			fmt.Printf("%9.4f%+9.4fj  ", real(v), imag(v))
		}
		fmt.Println()
	}
}
