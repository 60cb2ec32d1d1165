package quantum

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const amplitudeTol = 1e-12

func newCircuit(t *testing.T, n int) *Circuit {
	t.Helper()
	c, err := New(n, WithSeed(42), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return c
}

func assertState(t *testing.T, c *Circuit, want []complex128) {
	t.Helper()
	got := c.State().Amplitudes()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, 0, cmplx.Abs(got[i]-want[i]), amplitudeTol, "amplitude %d: got %v want %v", i, got[i], want[i])
	}
}

func TestNewCircuit(t *testing.T) {
	for n := 1; n <= 5; n++ {
		c := newCircuit(t, n)
		assert.Equal(t, n, c.NumQubits())

		probs := c.Probabilities()
		assert.Len(t, probs, 1<<n)
		assert.Equal(t, 1.0, probs[0])
	}

	_, err := New(0)
	assert.True(t, errors.Is(err, ErrInvalidQubitCount))

	_, err = New(MaxQubits + 1)
	assert.True(t, errors.Is(err, ErrInvalidQubitCount))
}

func TestFreshCircuitMeasuresAllZero(t *testing.T) {
	for n := 1; n <= 4; n++ {
		c := newCircuit(t, n)
		counts, err := c.Measure(500)
		require.NoError(t, err)

		zero := Label(0, n)
		assert.Equal(t, 500, counts[zero])
		assert.Len(t, counts, 1<<n, "every label is reported")
		assert.Equal(t, 500, counts.Total())
	}
}

func TestHadamardSplitsEvenly(t *testing.T) {
	c := newCircuit(t, 1)
	require.NoError(t, c.H(0))

	counts, err := c.Measure(10000)
	require.NoError(t, err)

	// Binomial(10000, 0.5) has σ = 50; 5σ keeps the seeded run well clear.
	assert.InDelta(t, 5000, counts["0"], 250)
	assert.InDelta(t, 5000, counts["1"], 250)
	assert.Equal(t, 10000, counts["0"]+counts["1"])
}

func TestPauliGates(t *testing.T) {
	s := 1 / math.Sqrt2
	tests := []struct {
		name  string
		apply func(c *Circuit) error
		want  []complex128
	}{
		{"x", func(c *Circuit) error { return c.X(0) }, []complex128{0, 1}},
		{"y", func(c *Circuit) error { return c.Y(0) }, []complex128{0, 1i}},
		{"z on zero", func(c *Circuit) error { return c.Z(0) }, []complex128{1, 0}},
		{"z on one", func(c *Circuit) error {
			if err := c.X(0); err != nil {
				return err
			}
			return c.Z(0)
		}, []complex128{0, -1}},
		{"h", func(c *Circuit) error { return c.H(0) }, []complex128{complex(s, 0), complex(s, 0)}},
		{"hzh is x", func(c *Circuit) error {
			for _, f := range []func(int) error{c.H, c.Z, c.H} {
				if err := f(0); err != nil {
					return err
				}
			}
			return nil
		}, []complex128{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCircuit(t, 1)
			require.NoError(t, tt.apply(c))
			assertState(t, c, tt.want)
		})
	}
}

func TestXMeasuresOne(t *testing.T) {
	c := newCircuit(t, 1)
	require.NoError(t, c.X(0))

	counts, err := c.Measure(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, counts["1"])
	assert.Equal(t, 0, counts["0"])
}

func TestDoubleXIsIdentity(t *testing.T) {
	c := newCircuit(t, 3)
	require.NoError(t, c.H(0))
	require.NoError(t, c.CX(Q(0), Q(2)))
	before := c.State().Amplitudes()

	require.NoError(t, c.X(1))
	require.NoError(t, c.X(1))
	assertState(t, c, before)
}

func TestQubitZeroIsMostSignificant(t *testing.T) {
	c := newCircuit(t, 3)
	require.NoError(t, c.X(0))

	counts, err := c.Measure(10)
	require.NoError(t, err)
	assert.Equal(t, 10, counts["100"])

	assert.Equal(t, 1.0, c.Probabilities()[0b100])
}

func TestCNOT(t *testing.T) {
	t.Run("control set flips target", func(t *testing.T) {
		c := newCircuit(t, 2)
		require.NoError(t, c.Initialize(Q(0, 1), [][]complex128{{0, 1}, {1, 0}}))
		require.NoError(t, c.ApplyControlledGate("X", Q(0), Q(1)))

		counts, err := c.Measure(200)
		require.NoError(t, err)
		assert.Equal(t, 200, counts["11"])
	})

	t.Run("control clear leaves state", func(t *testing.T) {
		c := newCircuit(t, 2)
		require.NoError(t, c.ApplyControlledGate("X", Q(0), Q(1)))

		counts, err := c.Measure(200)
		require.NoError(t, err)
		assert.Equal(t, 200, counts["00"])
		assertState(t, c, []complex128{1, 0, 0, 0})
	})

	t.Run("bell pair", func(t *testing.T) {
		c := newCircuit(t, 2)
		require.NoError(t, c.H(0))
		require.NoError(t, c.CX(Q(0), Q(1)))

		s := complex(1/math.Sqrt2, 0)
		assertState(t, c, []complex128{s, 0, 0, s})

		counts, err := c.Measure(2000)
		require.NoError(t, err)
		assert.Zero(t, counts["01"])
		assert.Zero(t, counts["10"])
		assert.Equal(t, 2000, counts["00"]+counts["11"])
	})
}

func TestCZPhase(t *testing.T) {
	c := newCircuit(t, 2)
	require.NoError(t, c.H(0))
	require.NoError(t, c.H(1))
	require.NoError(t, c.CZ(Q(0), Q(1)))

	assertState(t, c, []complex128{0.5, 0.5, 0.5, -0.5})
}

func TestToffoliAndFanOut(t *testing.T) {
	c := newCircuit(t, 4)
	require.NoError(t, c.X(0))
	require.NoError(t, c.X(1))
	require.NoError(t, c.CX(Q(0, 1), Q(2, 3)))
	assert.Equal(t, 1.0, c.Probabilities()[0b1111])

	// One control clear: nothing happens, and nothing is lost.
	c = newCircuit(t, 3)
	require.NoError(t, c.X(0))
	require.NoError(t, c.CX(Q(0, 1), Q(2)))
	assert.Equal(t, 1.0, c.Probabilities()[0b100])
}

func TestNormPreservedUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	single := []string{"X", "Y", "Z", "H"}

	for trial := range 20 {
		n := 1 + rng.IntN(5)
		c := newCircuit(t, n)
		for range 40 {
			if n > 1 && rng.IntN(3) == 0 {
				ctrl := rng.IntN(n)
				tgt := (ctrl + 1 + rng.IntN(n-1)) % n
				name := []string{"X", "Z"}[rng.IntN(2)]
				require.NoError(t, c.ApplyControlledGate(name, Q(ctrl), Q(tgt)))
				continue
			}
			require.NoError(t, c.ApplyGate(single[rng.IntN(len(single))], Q(rng.IntN(n))))
		}
		assert.InDelta(t, 1.0, c.State().NormSquared(), 1e-9, "trial %d", trial)
	}
}

func TestMeasureIsRepeatableAndCountsSum(t *testing.T) {
	c := newCircuit(t, 3)
	require.NoError(t, c.H(0))
	require.NoError(t, c.H(2))
	before := c.State().Amplitudes()

	for _, shots := range []int{1, 7, 100, 4096} {
		counts, err := c.Measure(shots)
		require.NoError(t, err)
		assert.Equal(t, shots, counts.Total())
		for _, l := range counts.Labels() {
			if counts[l] > 0 {
				assert.Contains(t, []string{"000", "001", "100", "101"}, l)
			}
		}
	}
	assertState(t, c, before)
}

func TestMeasureRejectsBadShots(t *testing.T) {
	c := newCircuit(t, 1)
	for _, shots := range []int{0, -3} {
		_, err := c.Measure(shots)
		assert.True(t, errors.Is(err, ErrInvalidShotCount))
	}
}

func TestInitialize(t *testing.T) {
	s := complex(1/math.Sqrt2, 0)

	t.Run("product state", func(t *testing.T) {
		c := newCircuit(t, 2)
		require.NoError(t, c.Initialize(Q(0, 1), [][]complex128{{s, s}, {0, 1}}))
		assertState(t, c, []complex128{0, s, 0, s})
	})

	t.Run("partial keeps stored vectors", func(t *testing.T) {
		c := newCircuit(t, 2)
		require.NoError(t, c.Initialize(Q(1), [][]complex128{{0, 1}}))
		require.NoError(t, c.Initialize(Q(0), [][]complex128{{0, 1}}))
		assertState(t, c, []complex128{0, 0, 0, 1})
	})

	t.Run("complex components", func(t *testing.T) {
		c := newCircuit(t, 1)
		require.NoError(t, c.Initialize(Q(0), [][]complex128{{0.6, 0.8i}}))
		probs := c.Probabilities()
		assert.InDelta(t, 0.36, probs[0], 1e-12)
		assert.InDelta(t, 0.64, probs[1], 1e-12)
	})

	t.Run("reset clears register", func(t *testing.T) {
		c := newCircuit(t, 2)
		require.NoError(t, c.Initialize(Q(0), [][]complex128{{0, 1}}))
		c.Reset()
		assertState(t, c, []complex128{1, 0, 0, 0})
	})
}

func TestInitializeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		qubits  Qubits
		vectors [][]complex128
		want    error
	}{
		{"length mismatch", Q(0, 1), [][]complex128{{1, 0}}, ErrInvalidVectorSpec},
		{"not normalized", Q(0), [][]complex128{{1, 1}}, ErrInvalidVectorSpec},
		{"three components", Q(0), [][]complex128{{1, 0, 0}}, ErrInvalidVectorSpec},
		{"out of range", Q(5), [][]complex128{{1, 0}}, ErrInvalidQubitIndex},
		{"duplicate", Q(1, 1), [][]complex128{{1, 0}, {0, 1}}, ErrInvalidQubitSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCircuit(t, 2)
			require.NoError(t, c.X(1))
			before := c.State().Amplitudes()

			err := c.Initialize(tt.qubits, tt.vectors)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assertState(t, c, before)
		})
	}
}

func TestGateErrorsLeaveStateUntouched(t *testing.T) {
	c := newCircuit(t, 2)
	require.NoError(t, c.H(0))
	before := c.State().Amplitudes()

	err := c.ApplyGate("X", Q(2))
	assert.True(t, errors.Is(err, ErrInvalidQubitIndex))

	err = c.ApplyGate("X", Q(0, 1))
	assert.True(t, errors.Is(err, ErrInvalidQubitSpec))

	err = c.ApplyGate("S", Q(0))
	assert.True(t, errors.Is(err, ErrUnknownGate))

	err = c.ApplyControlledGate("H", Q(0), Q(1))
	assert.True(t, errors.Is(err, ErrUnknownGate))

	err = c.ApplyControlledGate("X", Q(1), Q(1))
	assert.True(t, errors.Is(err, ErrInvalidQubitSpec))

	assertState(t, c, before)
}

func TestQubitProbabilities(t *testing.T) {
	c := newCircuit(t, 2)
	require.NoError(t, c.H(1))
	require.NoError(t, c.X(0))

	probs := c.State().QubitProbabilities()
	require.Len(t, probs, 2)
	assert.InDelta(t, 0, probs[0].Prob0, 1e-12)
	assert.InDelta(t, 1, probs[0].Prob1, 1e-12)
	assert.InDelta(t, 0.5, probs[1].Prob0, 1e-12)
	assert.InDelta(t, 0.5, probs[1].Prob1, 1e-12)
}
