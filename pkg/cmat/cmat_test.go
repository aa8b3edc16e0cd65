package cmat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadSize(t *testing.T) {
	_, err := New(0, 3)
	assert.Error(t, err)
	_, err = New(3, -1)
	assert.Error(t, err)
}

func TestEye(t *testing.T) {
	m := Eye(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			assert.Equal(t, want, m.At(i, j))
		}
	}
}

func TestSetBlock(t *testing.T) {
	m, err := New(4, 4)
	require.NoError(t, err)

	b, _ := New(2, 2)
	b.Set(0, 0, 1)
	b.Set(0, 1, 2)
	b.Set(1, 0, 3)
	b.Set(1, 1, 4)

	require.NoError(t, m.SetBlock(1, 2, b))
	assert.Equal(t, complex128(1), m.At(1, 2))
	assert.Equal(t, complex128(2), m.At(1, 3))
	assert.Equal(t, complex128(3), m.At(2, 2))
	assert.Equal(t, complex128(4), m.At(2, 3))
	assert.Equal(t, complex128(0), m.At(0, 0))

	assert.Error(t, m.SetBlock(3, 3, b))
	assert.Error(t, m.SetBlock(-1, 0, b))
}

func TestMul(t *testing.T) {
	a, _ := New(2, 3)
	b, _ := New(3, 2)
	// a = [1 2 3; 4 5 6], b = [7 8; 9 10; 11 12]
	vals := []complex128{1, 2, 3, 4, 5, 6}
	for i, v := range vals {
		a.Set(i/3, i%3, v)
	}
	vals = []complex128{7, 8, 9, 10, 11, 12}
	for i, v := range vals {
		b.Set(i/2, i%2, v)
	}

	p, err := Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, complex128(58), p.At(0, 0))
	assert.Equal(t, complex128(64), p.At(0, 1))
	assert.Equal(t, complex128(139), p.At(1, 0))
	assert.Equal(t, complex128(154), p.At(1, 1))

	_, err = Mul(a, a)
	assert.Error(t, err)
}

func TestSub(t *testing.T) {
	a := Eye(2)
	b, _ := New(2, 2)
	b.Set(0, 1, 2i)

	d, err := Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, complex128(1), d.At(0, 0))
	assert.Equal(t, complex128(-2i), d.At(0, 1))

	c, _ := New(3, 2)
	_, err = Sub(a, c)
	assert.Error(t, err)
}

func TestMulVec(t *testing.T) {
	m, _ := New(2, 2)
	m.Set(0, 0, 1)
	m.Set(0, 1, 1i)
	m.Set(1, 0, -1i)
	m.Set(1, 1, 2)

	x, err := m.MulVec([]complex128{3, 4})
	require.NoError(t, err)
	assert.Equal(t, complex128(3+4i), x[0])
	assert.Equal(t, complex128(8-3i), x[1])

	_, err = m.MulVec([]complex128{1})
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	m, _ := New(2, 2)
	m.Set(0, 0, 5)

	c := m.Clone()
	c.Set(0, 0, 7)
	assert.Equal(t, complex128(5), m.At(0, 0))
	assert.Equal(t, complex128(7), c.At(0, 0))
}
