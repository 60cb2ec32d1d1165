// Package linalg provides the dense complex matrix used to build gate operators.
package linalg

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/pkg/errors"
)

// ErrShape is returned when two operands have incompatible dimensions.
var ErrShape = errors.New("incompatible matrix shape")

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// New returns a zeroed rows×cols matrix.
func New(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// FromRows builds a matrix from nested rows. All rows must have equal length.
func FromRows(rows [][]complex128) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrShape, "no rows")
	}
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, errors.Wrapf(ErrShape, "row %d has %d columns, want %d", i, len(row), m.cols)
		}
		copy(m.data[i*m.cols:], row)
	}
	return m, nil
}

// MustFromRows is FromRows for package-level constants.
func MustFromRows(rows [][]complex128) *Matrix {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Identity returns the n×n identity.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// IsSquare reports whether rows == cols.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns element (i, j).
func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.cols+j] }

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.cols+j] = v }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := New(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Kron returns the Kronecker product a⊗b. Block (i,j) of the result is
// a[i,j]·b, so row index i*b.rows+k maps to basis states with a's index in
// the high-order position.
func Kron(a, b *Matrix) *Matrix {
	out := New(a.rows*b.rows, a.cols*b.cols)
	for i := range a.rows {
		for j := range a.cols {
			s := a.data[i*a.cols+j]
			if s == 0 {
				continue
			}
			for k := range b.rows {
				row := (i*b.rows + k) * out.cols
				for l := range b.cols {
					out.data[row+j*b.cols+l] = s * b.data[k*b.cols+l]
				}
			}
		}
	}
	return out
}

// Add returns a+b.
func Add(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, errors.Wrapf(ErrShape, "add %dx%d and %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// Sub returns a-b.
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, errors.Wrapf(ErrShape, "subtract %dx%d and %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// Mul returns the matrix product a·b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, errors.Wrapf(ErrShape, "multiply %dx%d by %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, b.cols)
	for i := range a.rows {
		for k := range a.cols {
			s := a.data[i*a.cols+k]
			if s == 0 {
				continue
			}
			for j := range b.cols {
				out.data[i*out.cols+j] += s * b.data[k*b.cols+j]
			}
		}
	}
	return out, nil
}

// MulVec returns m·v.
func MulVec(m *Matrix, v []complex128) ([]complex128, error) {
	if m.cols != len(v) {
		return nil, errors.Wrapf(ErrShape, "multiply %dx%d by vector of length %d", m.rows, m.cols, len(v))
	}
	out := make([]complex128, m.rows)
	for i := range m.rows {
		var sum complex128
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Scale returns s·m.
func Scale(s complex128, m *Matrix) *Matrix {
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= s
	}
	return out
}

// Adjoint returns the conjugate transpose of m.
func (m *Matrix) Adjoint() *Matrix {
	out := New(m.cols, m.rows)
	for i := range m.rows {
		for j := range m.cols {
			out.data[j*m.rows+i] = cmplx.Conj(m.data[i*m.cols+j])
		}
	}
	return out
}

// EqualApprox reports whether a and b have the same shape and every element
// differs by at most tol.
func EqualApprox(a, b *Matrix, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if cmplx.Abs(a.data[i]-b.data[i]) > tol {
			return false
		}
	}
	return true
}

// IsUnitary reports whether m†m equals the identity within tol.
func IsUnitary(m *Matrix, tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	p, err := Mul(m.Adjoint(), m)
	if err != nil {
		return false
	}
	return EqualApprox(p, Identity(m.rows), tol)
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := range m.rows {
		sb.WriteString("[")
		for j := range m.cols {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%.4g", m.At(i, j))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
