package main

import (
	"strings"

	"github.com/pkg/errors"

	"qsim/quantum"
)

// SimulateCircuit replays the circuit on a fresh register. Gates after
// upToStep are skipped; a negative upToStep runs everything. Measurements and
// barriers are layout only: the returned register is sampled as a whole.
func SimulateCircuit(circuit *Circuit, upToStep int, opts ...quantum.Option) (*quantum.Circuit, error) {
	sim, err := quantum.New(max(circuit.NumQubits, 1), opts...)
	if err != nil {
		return nil, err
	}

	if len(circuit.Inits) > 0 {
		qubits := make(quantum.Qubits, 0, len(circuit.Inits))
		vectors := make([][]complex128, 0, len(circuit.Inits))
		for q, v := range circuit.Inits {
			qubits = append(qubits, q)
			vectors = append(vectors, []complex128{v[0], v[1]})
		}
		if err := sim.Initialize(qubits, vectors); err != nil {
			return nil, errors.Wrap(err, "initialize")
		}
	}

	for _, gate := range circuit.sortedGates() {
		if upToStep >= 0 && gate.Step > upToStep {
			break
		}
		if err := applyGate(sim, gate); err != nil {
			return nil, errors.Wrapf(err, "step %d", gate.Step)
		}
	}

	return sim, nil
}

func applyGate(sim *quantum.Circuit, gate Gate) error {
	switch gate.Type {
	case "BARRIER", "MEASURE":
		return nil
	case "H", "X", "Y", "Z":
		return sim.ApplyGate(gate.Type, quantum.Q(gate.Target))
	case "CX", "CZ", "CCX", "CCZ":
		base := strings.TrimLeft(gate.Type, "C")
		return sim.ApplyControlledGate(base, quantum.Qubits(gate.Controls), quantum.Q(gate.Target))
	}
	return errors.Wrapf(quantum.ErrUnknownGate, "%s", gate.Type)
}
