package quantum

import (
	"github.com/pkg/errors"

	"qsim/internal/linalg"
)

// LiftGate builds the 2^n × 2^n operator I⊗…⊗G⊗…⊗I with g at position t.
// Qubit 0 is the leftmost, most significant factor.
func LiftGate(n, t int, g *linalg.Matrix) (*linalg.Matrix, error) {
	if t < 0 || t >= n {
		return nil, errors.Wrapf(ErrInvalidQubitIndex, "qubit %d outside [0,%d)", t, n)
	}
	if err := checkBase(g); err != nil {
		return nil, err
	}

	op := ident2
	if t == 0 {
		op = g
	}
	if n == 1 {
		return op.Clone(), nil
	}
	for i := 1; i < n; i++ {
		if i == t {
			op = linalg.Kron(op, g)
		} else {
			op = linalg.Kron(op, ident2)
		}
	}
	return op, nil
}

// LiftControlled builds the operator that applies g to every target iff all
// controls are |1⟩, and identity otherwise. It is the sum of two Kronecker
// chains: op1 carries P1 on the controls and g on the targets; op0 is the
// complement I - (P1 on the controls, I elsewhere). With a single control op0
// is exactly the P0-on-control chain.
func LiftControlled(n int, controls, targets Qubits, g *linalg.Matrix) (*linalg.Matrix, error) {
	if err := validateControlled(n, controls, targets); err != nil {
		return nil, err
	}
	if err := checkBase(g); err != nil {
		return nil, err
	}

	factors := func(i int) (ones, f1 *linalg.Matrix) {
		switch {
		case controls.Contains(i):
			return projOne, projOne
		case targets.Contains(i):
			return ident2, g
		default:
			return ident2, ident2
		}
	}

	ones, op1 := factors(0)
	for i := 1; i < n; i++ {
		f, f1 := factors(i)
		ones = linalg.Kron(ones, f)
		op1 = linalg.Kron(op1, f1)
	}

	op0, err := linalg.Sub(linalg.Identity(1<<n), ones)
	if err != nil {
		return nil, errors.Wrap(ErrDimensionMismatch, err.Error())
	}
	op, err := linalg.Add(op0, op1)
	if err != nil {
		return nil, errors.Wrap(ErrDimensionMismatch, err.Error())
	}
	return op, nil
}

func validateControlled(n int, controls, targets Qubits) error {
	if len(controls) == 0 {
		return errors.Wrap(ErrInvalidQubitSpec, "no control qubits")
	}
	if len(targets) == 0 {
		return errors.Wrap(ErrInvalidQubitSpec, "no target qubits")
	}
	if err := controls.validate(n); err != nil {
		return errors.Wrap(err, "controls")
	}
	if err := targets.validate(n); err != nil {
		return errors.Wrap(err, "targets")
	}
	return disjoint(controls, targets)
}

func checkBase(g *linalg.Matrix) error {
	if g == nil || g.Rows() != 2 || g.Cols() != 2 {
		return errors.Wrap(ErrDimensionMismatch, "base gate must be 2x2")
	}
	return nil
}
