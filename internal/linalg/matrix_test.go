package linalg

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKronBlockLayout(t *testing.T) {
	a := MustFromRows([][]complex128{{1, 2}, {3, 4}})
	b := MustFromRows([][]complex128{{0, 5}, {6, 7}})

	k := Kron(a, b)
	require.Equal(t, 4, k.Rows())
	require.Equal(t, 4, k.Cols())

	want := MustFromRows([][]complex128{
		{0, 5, 0, 10},
		{6, 7, 12, 14},
		{0, 15, 0, 20},
		{18, 21, 24, 28},
	})
	assert.True(t, EqualApprox(k, want, 0), "got\n%s", k)
}

func TestKronWithIdentityKeepsHighOrderFactor(t *testing.T) {
	x := MustFromRows([][]complex128{{0, 1}, {1, 0}})

	// X⊗I swaps the first and second halves: |0b⟩ <-> |1b⟩.
	k := Kron(x, Identity(2))
	v, err := MulVec(k, []complex128{1, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []complex128{0, 0, 1, 0}, v)

	// I⊗X flips the low-order bit.
	k = Kron(Identity(2), x)
	v, err = MulVec(k, []complex128{1, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []complex128{0, 1, 0, 0}, v)
}

func TestAddAndShapeErrors(t *testing.T) {
	a := Identity(2)
	b := Identity(4)

	_, err := Add(a, b)
	assert.True(t, errors.Is(err, ErrShape))

	_, err = Mul(a, b)
	assert.True(t, errors.Is(err, ErrShape))

	_, err = MulVec(a, []complex128{1, 0, 0})
	assert.True(t, errors.Is(err, ErrShape))

	_, err = FromRows([][]complex128{{1, 0}, {0}})
	assert.True(t, errors.Is(err, ErrShape))

	sum, err := Add(a, a)
	require.NoError(t, err)
	assert.True(t, EqualApprox(sum, Scale(2, a), 0))
}

func TestIsUnitary(t *testing.T) {
	h := Scale(complex(1/math.Sqrt2, 0), MustFromRows([][]complex128{{1, 1}, {1, -1}}))
	y := MustFromRows([][]complex128{{0, -1i}, {1i, 0}})
	p0 := MustFromRows([][]complex128{{1, 0}, {0, 0}})

	assert.True(t, IsUnitary(h, 1e-12))
	assert.True(t, IsUnitary(y, 1e-12))
	assert.True(t, IsUnitary(Kron(h, y), 1e-12))
	assert.False(t, IsUnitary(p0, 1e-12))
	assert.False(t, IsUnitary(New(2, 3), 1e-12))
}

func TestAdjoint(t *testing.T) {
	m := MustFromRows([][]complex128{{1 + 1i, 2}, {3i, 4}})
	want := MustFromRows([][]complex128{{1 - 1i, -3i}, {2, 4}})
	assert.True(t, EqualApprox(m.Adjoint(), want, 0))
}
