package quantum

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"qsim/internal/linalg"
)

// Gate is a named 2×2 unitary.
type Gate struct {
	Name   string
	Matrix *linalg.Matrix
}

// Built-in single-qubit gates.
var (
	GateX = Gate{Name: "X", Matrix: linalg.MustFromRows([][]complex128{{0, 1}, {1, 0}})}
	GateY = Gate{Name: "Y", Matrix: linalg.MustFromRows([][]complex128{{0, -1i}, {1i, 0}})}
	GateZ = Gate{Name: "Z", Matrix: linalg.MustFromRows([][]complex128{{1, 0}, {0, -1}})}
	GateH = Gate{Name: "H", Matrix: linalg.Scale(
		complex(1/math.Sqrt2, 0),
		linalg.MustFromRows([][]complex128{{1, 1}, {1, -1}}),
	)}
)

// Projectors onto |0⟩ and |1⟩ used by the controlled lift.
var (
	projZero = linalg.MustFromRows([][]complex128{{1, 0}, {0, 0}})
	projOne  = linalg.MustFromRows([][]complex128{{0, 0}, {0, 1}})
	ident2   = linalg.Identity(2)
)

var singleGates = map[string]Gate{
	"X": GateX,
	"Y": GateY,
	"Z": GateZ,
	"H": GateH,
}

// Only X and Z have controlled forms on the public surface.
var controlledGates = map[string]Gate{
	"X": GateX,
	"Z": GateZ,
}

// GateByName looks up a built-in single-qubit gate, case-insensitively.
func GateByName(name string) (Gate, error) {
	g, ok := singleGates[strings.ToUpper(name)]
	if !ok {
		return Gate{}, errors.Wrapf(ErrUnknownGate, "%q", name)
	}
	return g, nil
}

// ControlledBase looks up the base gate for a controlled operation.
func ControlledBase(name string) (Gate, error) {
	g, ok := controlledGates[strings.ToUpper(name)]
	if !ok {
		return Gate{}, errors.Wrapf(ErrUnknownGate, "controlled %q", name)
	}
	return g, nil
}
