package main

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmplitudeExpr(t *testing.T) {
	s := 1 / math.Sqrt2
	tests := []struct {
		input string
		want  complex128
		ok    bool
	}{
		{"0", 0, true},
		{"1", 1, true},
		{"-0.5", -0.5, true},
		{"0.8i", 0.8i, true},
		{"i", 1i, true},
		{"-i", -1i, true},
		{"0.6+0.8i", complex(0.6, 0.8), true},
		{"(0.6-0.8i)", complex(0.6, -0.8), true},
		{"1/sqrt2", complex(s, 0), true},
		{" -1/sqrt2 ", complex(-s, 0), true},
		{"i/sqrt2", complex(0, s), true},
		{"-i/sqrt(2)", complex(0, -s), true},
		{"2/sqrt5", complex(2/math.Sqrt(5), 0), true},
		{"1/SQRT2", complex(s, 0), true},

		{"", 0, false},
		{"banana", 0, false},
		{"1/sqrt0", 0, false},
		{"1/sqrt", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseAmplitudeExpr(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, 0, cmplx.Abs(got-tt.want), 1e-12, "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestFormatAmplitude(t *testing.T) {
	s := 1 / math.Sqrt2
	tests := []struct {
		in   complex128
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{1i, "i"},
		{-1i, "-i"},
		{complex(s, 0), "1/sqrt2"},
		{complex(-s, 0), "-1/sqrt2"},
		{complex(0, -s), "-i/sqrt2"},
		{0.6, "0.6"},
		{0.8i, "0.8i"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmplitude(tt.in))
	}
}

func TestInitVectorRoundTrip(t *testing.T) {
	for _, p := range initPresets {
		t.Run(p.ket, func(t *testing.T) {
			text := formatInitVector(p.vector)
			got, err := parseInitVector(text)
			require.NoError(t, err, text)
			assert.Equal(t, presetIndex(p.vector), presetIndex(got))
			assert.Equal(t, p.ket, ketLabel(got))
		})
	}

	v, err := parseInitVector("0.6, 0.8i")
	require.NoError(t, err)
	assert.Equal(t, "|ψ⟩", ketLabel(v))
	assert.Equal(t, -1, presetIndex(v))
}

func TestParseInitVectorErrors(t *testing.T) {
	for _, input := range []string{"1", "1, 0, 0", "1, x", ""} {
		_, err := parseInitVector(input)
		assert.Error(t, err, input)
	}
}
