package quantum

import (
	"slices"

	"github.com/pkg/errors"
)

// Qubits is an ordered set of qubit indices. A single index is written Q(i).
type Qubits []int

// Q builds a Qubits set from the given indices.
func Q(indices ...int) Qubits {
	return Qubits(indices)
}

// Contains reports whether q is in the set.
func (qs Qubits) Contains(q int) bool {
	return slices.Contains(qs, q)
}

// validate checks that every index lies in [0,n) and none repeats.
func (qs Qubits) validate(n int) error {
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if q < 0 || q >= n {
			return errors.Wrapf(ErrInvalidQubitIndex, "qubit %d outside [0,%d)", q, n)
		}
		if seen[q] {
			return errors.Wrapf(ErrInvalidQubitSpec, "qubit %d listed twice", q)
		}
		seen[q] = true
	}
	return nil
}

// disjoint returns an error naming the first index shared by a and b.
func disjoint(a, b Qubits) error {
	for _, q := range a {
		if b.Contains(q) {
			return errors.Wrapf(ErrInvalidQubitSpec, "qubit %d is both control and target", q)
		}
	}
	return nil
}
