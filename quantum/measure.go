package quantum

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Counts maps an n-bit outcome label (qubit 0 first) to how often it was drawn.
type Counts map[string]int

// Labels returns the keys in ascending basis order.
func (c Counts) Labels() []string {
	labels := make([]string, 0, len(c))
	for l := range c {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Sampler draws measurement outcomes from a state vector. It never modifies
// the state: each Sample call is an independent trial against the same
// amplitudes, not a collapse.
type Sampler struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// NewSampler returns a sampler drawing from rng.
func NewSampler(rng *rand.Rand, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{rng: rng, logger: logger}
}

// Sample performs shots independent weighted draws over the basis labels.
// Every label is present in the result, including those drawn zero times.
func (sm *Sampler) Sample(s *StateVector, shots int) (Counts, error) {
	if shots <= 0 {
		return nil, errors.Wrapf(ErrInvalidShotCount, "got %d", shots)
	}

	probs := s.Probabilities()
	total := floats.Sum(probs)
	if math.Abs(total-1) > normTolerance*float64(len(probs)) {
		return nil, errors.Wrapf(ErrNormDrift, "probabilities sum to %.12f", total)
	}

	cdf := floats.CumSum(make([]float64, len(probs)), probs)
	last := lastNonZero(probs)

	counts := make(Counts, len(probs))
	hits := make([]int, len(probs))
	for range shots {
		r := sm.rng.Float64() * cdf[len(cdf)-1]
		// First bucket whose upper edge lies above r; zero-width buckets
		// never satisfy this.
		i := sort.Search(len(cdf), func(j int) bool { return cdf[j] > r })
		if i > last {
			i = last
		}
		hits[i]++
	}
	for i, n := range hits {
		counts[Label(i, s.NumQubits())] = n
	}

	sm.logger.Debug("sampled state",
		zap.Int("qubits", s.NumQubits()),
		zap.Int("shots", shots),
		zap.Float64("norm", total),
	)
	return counts, nil
}

func lastNonZero(probs []float64) int {
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return len(probs) - 1
}
