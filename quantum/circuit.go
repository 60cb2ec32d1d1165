// Package quantum is a dense state-vector simulator for small circuits. Every
// gate is applied by building its full 2^n × 2^n operator from Kronecker
// products and multiplying it into the amplitude vector.
package quantum

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"qsim/internal/linalg"
)

// MaxQubits bounds the register size. A dense operator at this size holds
// 2^20 complex128 values (16 MiB).
const MaxQubits = 10

// Option configures a Circuit.
type Option func(*Circuit)

// WithLogger sets the logger used for gate and measurement events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Circuit) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRand sets the random source used by Measure.
func WithRand(rng *rand.Rand) Option {
	return func(c *Circuit) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithSeed seeds a deterministic PCG source for Measure.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Circuit owns one state vector and applies gates to it. A Circuit is not
// safe for concurrent use.
type Circuit struct {
	n        int
	state    *StateVector
	register [][]complex128 // last initialized vector per qubit
	rng      *rand.Rand
	logger   *zap.Logger
	sampler  *Sampler
}

// New returns an n-qubit circuit in |0…0⟩.
func New(n int, opts ...Option) (*Circuit, error) {
	if n < 1 || n > MaxQubits {
		return nil, errors.Wrapf(ErrInvalidQubitCount, "%d not in [1,%d]", n, MaxQubits)
	}
	c := &Circuit{
		n:      n,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sampler = NewSampler(c.rng, c.logger)
	c.Reset()
	return c, nil
}

// NumQubits returns n.
func (c *Circuit) NumQubits() int { return c.n }

// State returns a copy of the current state vector.
func (c *Circuit) State() *StateVector { return c.state.Clone() }

// Reset returns the circuit to |0…0⟩ and forgets initialized vectors.
func (c *Circuit) Reset() {
	c.state = NewStateVector(c.n)
	c.register = make([][]complex128, c.n)
	for q := range c.register {
		c.register[q] = []complex128{1, 0}
	}
}

// Initialize sets the listed qubits to the given single-qubit unit vectors
// and rebuilds the whole state as the product of every qubit's stored vector.
// Qubits not listed keep the vector they were last initialized with (|0⟩ by
// default); any gates applied since are discarded.
func (c *Circuit) Initialize(qubits Qubits, vectors [][]complex128) error {
	if len(qubits) != len(vectors) {
		return errors.Wrapf(ErrInvalidVectorSpec, "%d qubits but %d vectors", len(qubits), len(vectors))
	}
	if err := qubits.validate(c.n); err != nil {
		return err
	}
	for i, v := range vectors {
		if len(v) != 2 {
			return errors.Wrapf(ErrInvalidVectorSpec, "qubit %d vector has %d components", qubits[i], len(v))
		}
		norm := real(v[0]*cmplx.Conj(v[0])) + real(v[1]*cmplx.Conj(v[1]))
		if math.Abs(norm-1) > normTolerance {
			return errors.Wrapf(ErrInvalidVectorSpec, "qubit %d vector has squared norm %g", qubits[i], norm)
		}
	}

	register := make([][]complex128, c.n)
	copy(register, c.register)
	for i, q := range qubits {
		register[q] = []complex128{vectors[i][0], vectors[i][1]}
	}
	state, err := ProductState(register)
	if err != nil {
		return err
	}

	c.register = register
	c.state = state
	c.logger.Debug("initialized state", zap.Ints("qubits", qubits))
	return nil
}

// ApplyGate applies the named single-qubit gate (X, Y, Z or H). Exactly one
// qubit must be given.
func (c *Circuit) ApplyGate(name string, qubits Qubits) error {
	g, err := GateByName(name)
	if err != nil {
		return err
	}
	if len(qubits) != 1 {
		return errors.Wrapf(ErrInvalidQubitSpec, "%s takes one qubit, got %d", g.Name, len(qubits))
	}
	op, err := LiftGate(c.n, qubits[0], g.Matrix)
	if err != nil {
		return errors.Wrap(err, g.Name)
	}
	if err := c.state.Apply(op); err != nil {
		return err
	}
	c.logger.Debug("applied gate", zap.String("gate", g.Name), zap.Int("target", qubits[0]))
	return nil
}

// ApplyControlledGate applies the named base gate (X or Z) to every target
// when all controls are |1⟩.
func (c *Circuit) ApplyControlledGate(name string, controls, targets Qubits) error {
	g, err := ControlledBase(name)
	if err != nil {
		return err
	}
	return c.applyControlled(g, controls, targets)
}

func (c *Circuit) applyControlled(g Gate, controls, targets Qubits) error {
	op, err := LiftControlled(c.n, controls, targets, g.Matrix)
	if err != nil {
		return errors.Wrapf(err, "C%s", g.Name)
	}
	if err := c.state.Apply(op); err != nil {
		return err
	}
	c.logger.Debug("applied controlled gate",
		zap.String("gate", g.Name),
		zap.Ints("controls", controls),
		zap.Ints("targets", targets),
	)
	return nil
}

// Apply lifts an arbitrary 2×2 matrix onto qubit q. The matrix is assumed
// unitary.
func (c *Circuit) Apply(g *linalg.Matrix, q int) error {
	op, err := LiftGate(c.n, q, g)
	if err != nil {
		return err
	}
	return c.state.Apply(op)
}

// X applies Pauli-X to qubit q.
func (c *Circuit) X(q int) error { return c.ApplyGate("X", Q(q)) }

// Y applies Pauli-Y to qubit q.
func (c *Circuit) Y(q int) error { return c.ApplyGate("Y", Q(q)) }

// Z applies Pauli-Z to qubit q.
func (c *Circuit) Z(q int) error { return c.ApplyGate("Z", Q(q)) }

// H applies Hadamard to qubit q.
func (c *Circuit) H(q int) error { return c.ApplyGate("H", Q(q)) }

// CX flips every target when all controls are |1⟩.
func (c *Circuit) CX(controls, targets Qubits) error {
	return c.applyControlled(GateX, controls, targets)
}

// CZ applies Z to every target when all controls are |1⟩.
func (c *Circuit) CZ(controls, targets Qubits) error {
	return c.applyControlled(GateZ, controls, targets)
}

// Measure samples the current state shots times. The state is left untouched.
func (c *Circuit) Measure(shots int) (Counts, error) {
	return c.sampler.Sample(c.state, shots)
}

// Probabilities returns |a_i|² for every basis index.
func (c *Circuit) Probabilities() []float64 {
	return c.state.Probabilities()
}
