package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// sqrtExprRegex matches amplitudes of the form [sign][coeff][i]/sqrt[(]d[)]:
// 1/sqrt2, -1/sqrt2, i/sqrt2, -i/sqrt(2), 2/sqrt5, 0.5i/sqrt(3)
var sqrtExprRegex = regexp.MustCompile(`^([+-]?)(\d*\.?\d*)(i?)\s*/\s*sqrt\s*\(?\s*(\d+\.?\d*)\s*\)?$`)

// parseAmplitudeExpr parses a single complex amplitude.
//
// Supported formats:
//   - Real or imaginary literals: "0.6", "-1", "0.8i", "i", "-i"
//   - Complex literals: "1+2i", "(0.6-0.8i)"
//   - Square-root fractions: "1/sqrt2", "-i/sqrt2", "2/sqrt(5)"
func parseAmplitudeExpr(s string) (complex128, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	switch s {
	case "i", "+i":
		return 1i, true
	case "-i":
		return -1i, true
	}

	if v, err := strconv.ParseComplex(s, 128); err == nil {
		return v, true
	}

	matches := sqrtExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, false
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		coeff, err = strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return 0, false
		}
	}
	denom, err := strconv.ParseFloat(matches[4], 64)
	if err != nil || denom <= 0 {
		return 0, false
	}

	val := coeff / math.Sqrt(denom)
	if matches[1] == "-" {
		val = -val
	}
	if matches[3] == "i" {
		return complex(0, val), true
	}
	return complex(val, 0), true
}

// formatAmplitude formats an amplitude, using sqrt notation for the common
// 1/√2 values.
func formatAmplitude(v complex128) string {
	const tol = 1e-10
	re, im := real(v), imag(v)

	switch {
	case math.Abs(im) < tol:
		return formatReal(re, "")
	case math.Abs(re) < tol:
		return formatReal(im, "i")
	}
	return strings.Trim(strconv.FormatComplex(v, 'g', -1, 128), "()")
}

func formatReal(x float64, unit string) string {
	const tol = 1e-10
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	switch {
	case math.Abs(x) < tol:
		return "0"
	case math.Abs(x-1) < tol:
		if unit == "" {
			return sign + "1"
		}
		return sign + unit
	case math.Abs(x-1/math.Sqrt2) < tol:
		if unit == "" {
			unit = "1"
		}
		return sign + unit + "/sqrt2"
	}
	return sign + strconv.FormatFloat(x, 'g', -1, 64) + unit
}

// parseInitVector parses "a, b" into a single-qubit vector.
func parseInitVector(input string) ([2]complex128, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return [2]complex128{}, errors.Errorf("want two amplitudes, got %d", len(parts))
	}
	var v [2]complex128
	for i, part := range parts {
		a, ok := parseAmplitudeExpr(part)
		if !ok {
			return [2]complex128{}, errors.Errorf("bad amplitude %q", strings.TrimSpace(part))
		}
		v[i] = a
	}
	return v, nil
}

// formatInitVector is the inverse of parseInitVector.
func formatInitVector(v [2]complex128) string {
	return fmt.Sprintf("%s, %s", formatAmplitude(v[0]), formatAmplitude(v[1]))
}

// initPreset is a named single-qubit starting state offered by the editor.
type initPreset struct {
	ket    string
	vector [2]complex128
}

var initPresets = func() []initPreset {
	s := complex(1/math.Sqrt2, 0)
	return []initPreset{
		{"|0⟩", [2]complex128{1, 0}},
		{"|1⟩", [2]complex128{0, 1}},
		{"|+⟩", [2]complex128{s, s}},
		{"|−⟩", [2]complex128{s, -s}},
		{"|+i⟩", [2]complex128{s, s * 1i}},
		{"|−i⟩", [2]complex128{s, -s * 1i}},
	}
}()

// presetIndex returns the index of the preset matching v, or -1.
func presetIndex(v [2]complex128) int {
	for i, p := range initPresets {
		if cmplx.Abs(p.vector[0]-v[0]) < 1e-9 && cmplx.Abs(p.vector[1]-v[1]) < 1e-9 {
			return i
		}
	}
	return -1
}

// ketLabel returns a short label for v: a preset ket or |ψ⟩.
func ketLabel(v [2]complex128) string {
	if i := presetIndex(v); i >= 0 {
		return initPresets[i].ket
	}
	return "|ψ⟩"
}
