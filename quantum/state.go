package quantum

import (
	"math/cmplx"

	"github.com/pkg/errors"

	"qsim/internal/linalg"
)

// normTolerance bounds how far the squared norm may drift from 1.
const normTolerance = 1e-9

// StateVector holds the 2^n amplitudes of an n-qubit pure state. Index i
// corresponds to the n-bit binary expansion of i with qubit 0 as the most
// significant bit.
type StateVector struct {
	numQubits  int
	amplitudes []complex128
}

// NewStateVector returns |0…0⟩ over n qubits.
func NewStateVector(n int) *StateVector {
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &StateVector{numQubits: n, amplitudes: amps}
}

// ProductState returns the tensor product of the given single-qubit vectors,
// qubit 0 first. Each vector must have exactly two components.
func ProductState(vectors [][]complex128) (*StateVector, error) {
	if len(vectors) == 0 {
		return nil, errors.Wrap(ErrInvalidVectorSpec, "no qubit vectors")
	}
	amps := []complex128{1}
	for q, v := range vectors {
		if len(v) != 2 {
			return nil, errors.Wrapf(ErrInvalidVectorSpec, "qubit %d vector has %d components", q, len(v))
		}
		next := make([]complex128, 0, len(amps)*2)
		for _, a := range amps {
			next = append(next, a*v[0], a*v[1])
		}
		amps = next
	}
	return &StateVector{numQubits: len(vectors), amplitudes: amps}, nil
}

// NumQubits returns n.
func (s *StateVector) NumQubits() int { return s.numQubits }

// Len returns 2^n.
func (s *StateVector) Len() int { return len(s.amplitudes) }

// Amplitude returns the amplitude of basis index i.
func (s *StateVector) Amplitude(i int) complex128 { return s.amplitudes[i] }

// Amplitudes returns a copy of the amplitude buffer.
func (s *StateVector) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amplitudes))
	copy(out, s.amplitudes)
	return out
}

// Clone returns a deep copy.
func (s *StateVector) Clone() *StateVector {
	return &StateVector{numQubits: s.numQubits, amplitudes: s.Amplitudes()}
}

// Apply replaces the amplitudes with op·amplitudes. No renormalization is
// done; a unitary op preserves the norm.
func (s *StateVector) Apply(op *linalg.Matrix) error {
	if !op.IsSquare() || op.Rows() != len(s.amplitudes) {
		return errors.Wrapf(ErrDimensionMismatch, "operator %dx%d, state length %d",
			op.Rows(), op.Cols(), len(s.amplitudes))
	}
	amps, err := linalg.MulVec(op, s.amplitudes)
	if err != nil {
		return errors.Wrap(ErrDimensionMismatch, err.Error())
	}
	s.amplitudes = amps
	return nil
}

// NormSquared returns the sum of |a|² over all amplitudes.
func (s *StateVector) NormSquared() float64 {
	var sum float64
	for _, a := range s.amplitudes {
		sum += real(a * cmplx.Conj(a))
	}
	return sum
}

// Probabilities returns |a_i|² for every basis index. Values that come out
// marginally negative from rounding are clamped to zero.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		p := real(a * cmplx.Conj(a))
		if p < 0 {
			p = 0
		}
		probs[i] = p
	}
	return probs
}

// QubitProbability holds the marginal outcome probabilities of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal distribution of each qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.numQubits)
	for i, p := range s.Probabilities() {
		for q := range s.numQubits {
			if i&s.bit(q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// bit returns the index mask of qubit q.
func (s *StateVector) bit(q int) int {
	return 1 << (s.numQubits - 1 - q)
}

// Label returns the n-bit label of basis index i, qubit 0 first.
func Label(i, n int) string {
	b := make([]byte, n)
	for q := range n {
		if i&(1<<(n-1-q)) != 0 {
			b[q] = '1'
		} else {
			b[q] = '0'
		}
	}
	return string(b)
}
