package cmat

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func assertCmplx(t *testing.T, want, got complex128) {
	t.Helper()
	assert.InDelta(t, 0, cmplx.Abs(want-got), tol, "want %v got %v", want, got)
}

func TestFactorSolve(t *testing.T) {
	// A known complex system with a solution picked up front.
	m, _ := New(3, 3)
	rows := [][]complex128{
		{2 + 1i, 1, 0},
		{1, 3, 1i},
		{0, -1i, 4},
	}
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	x := []complex128{1 - 1i, 2, 3i}

	rhs := make([]complex128, 3)
	for i, row := range rows {
		for j, v := range row {
			rhs[i] += v * x[j]
		}
	}

	require.NoError(t, m.Factor())
	assert.True(t, m.Factored)

	got, err := m.Solve(rhs)
	require.NoError(t, err)
	for i := range x {
		assertCmplx(t, x[i], got[i])
	}
}

func TestFactorPivots(t *testing.T) {
	// Zero on the leading diagonal forces a row exchange.
	m, _ := New(2, 2)
	m.Set(0, 1, 1)
	m.Set(1, 0, 1)

	require.NoError(t, m.Factor())
	got, err := m.Solve([]complex128{3, 5})
	require.NoError(t, err)
	assertCmplx(t, 5, got[0])
	assertCmplx(t, 3, got[1])
}

func TestFactorSingular(t *testing.T) {
	m, _ := New(2, 2)
	m.Set(0, 0, 1)
	m.Set(0, 1, -1)
	m.Set(1, 0, -1)
	m.Set(1, 1, 1)

	err := m.Factor()
	require.Error(t, err)
	assert.False(t, m.Factored)
	assert.NotEqual(t, -1, m.SingularRow)
	assert.NotEqual(t, -1, m.SingularCol)
}

func TestSolveRequiresFactor(t *testing.T) {
	m, _ := New(2, 2)
	_, err := m.Solve([]complex128{1, 2})
	assert.Error(t, err)
}

func TestInverse(t *testing.T) {
	m, _ := New(2, 2)
	m.Set(0, 0, 1+1i)
	m.Set(0, 1, 2)
	m.Set(1, 0, 0)
	m.Set(1, 1, 1-1i)

	inv, err := m.Inverse()
	require.NoError(t, err)
	assert.False(t, m.Factored, "Inverse must leave the receiver untouched")

	prod, err := Mul(m, inv)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			assertCmplx(t, want, prod.At(i, j))
		}
	}
}

func TestInverseSingular(t *testing.T) {
	m, _ := New(2, 2)
	m.Set(0, 0, 1)
	m.Set(0, 1, 2)
	m.Set(1, 0, 2)
	m.Set(1, 1, 4)

	_, err := m.Inverse()
	assert.Error(t, err)
}
