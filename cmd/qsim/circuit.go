package main

import (
	"slices"
)

// Gate represents a gate placed on the circuit grid.
type Gate struct {
	Type     string // H, X, Y, Z, CX, CZ, CCX, CCZ, MEASURE or BARRIER
	Target   int    // -1 for barriers
	Controls []int  // control qubits for controlled gates
	Step     int    // column in the circuit timeline
}

// Circuit is the editable circuit layout shared by the grid, the QASM panel
// and the simulator.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
	Inits     map[int][2]complex128 // initial single-qubit vectors; absent means |0⟩
}

// NewCircuit returns an empty circuit over n qubits.
func NewCircuit(n int) *Circuit {
	return &Circuit{NumQubits: n, Inits: make(map[int][2]complex128)}
}

// Clone returns a deep copy.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{
		NumQubits: c.NumQubits,
		Gates:     make([]Gate, len(c.Gates)),
		MaxSteps:  c.MaxSteps,
		Inits:     make(map[int][2]complex128, len(c.Inits)),
	}
	for i, g := range c.Gates {
		g.Controls = slices.Clone(g.Controls)
		out.Gates[i] = g
	}
	for q, v := range c.Inits {
		out.Inits[q] = v
	}
	return out
}

// AddGate appends a gate at the given step. Controlled gates list their
// controls after the step.
func (c *Circuit) AddGate(gateType string, target, step int, controls ...int) {
	c.Gates = append(c.Gates, Gate{
		Type:     gateType,
		Target:   target,
		Controls: slices.Clone(controls),
		Step:     step,
	})
	c.grow(step, append([]int{target}, controls...))
}

// AddBarrier appends a barrier spanning all qubits at the given step.
func (c *Circuit) AddBarrier(step int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Step == step && g.Type == "BARRIER"
	})
	c.Gates = append(c.Gates, Gate{Type: "BARRIER", Target: -1, Step: step})
	c.grow(step, nil)
}

// SetInit records the initial vector of qubit q. The |0⟩ vector clears it.
func (c *Circuit) SetInit(q int, v [2]complex128) {
	if c.Inits == nil {
		c.Inits = make(map[int][2]complex128)
	}
	if v == [2]complex128{1, 0} {
		delete(c.Inits, q)
		return
	}
	c.Inits[q] = v
	c.grow(-1, []int{q})
}

func (c *Circuit) grow(step int, qubits []int) {
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
	for _, q := range qubits {
		if q+1 > c.NumQubits {
			c.NumQubits = q + 1
		}
	}
}

// Qubits returns every qubit the gate touches.
func (g Gate) Qubits() []int {
	if g.Target < 0 {
		return nil
	}
	return append(slices.Clone(g.Controls), g.Target)
}

// gateReferences reports whether the gate references the given qubit.
func (g Gate) gateReferences(qubit int) bool {
	return g.Target == qubit || slices.Contains(g.Controls, qubit)
}

// RemoveGateAt removes any gate at the given step and qubit.
// Also removes barriers at that step since they span all qubits.
func (c *Circuit) RemoveGateAt(step, qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		if g.Step == step && g.Type == "BARRIER" {
			return true
		}
		return g.Step == step && g.gateReferences(qubit)
	})
}

// RemoveGatesOnQubit removes all gates and init vectors on the given qubit.
func (c *Circuit) RemoveGatesOnQubit(qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.gateReferences(qubit)
	})
	delete(c.Inits, qubit)
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.gateReferences(qubit) {
			return g
		}
	}
	return nil
}

// CanPlaceGateAt checks if a gate can be placed at the given step using the specified qubits.
// Returns false if any qubit is already used by a controlled gate or barrier at that step.
func (c *Circuit) CanPlaceGateAt(step int, qubits []int) bool {
	for _, qubit := range qubits {
		g := c.GetGateAt(step, qubit)
		if g == nil {
			continue
		}
		if g.Type == "BARRIER" || len(g.Controls) > 0 {
			return false
		}
	}
	for _, g := range c.Gates {
		if g.Step == step && g.Type == "BARRIER" {
			return false
		}
	}
	return true
}

// NumCbits returns the number of classical bits needed (derived from measurements).
// Returns 0 when no measurements exist.
func (c *Circuit) NumCbits() int {
	maxMeasureQubit := -1
	for _, gate := range c.Gates {
		if gate.Type == "MEASURE" {
			maxMeasureQubit = max(maxMeasureQubit, gate.Target)
		}
	}
	return maxMeasureQubit + 1
}

// GetMeasureAtStep returns the qubit index being measured at the given step, or -1 if none.
func (c *Circuit) GetMeasureAtStep(step int) int {
	for _, g := range c.Gates {
		if g.Step == step && g.Type == "MEASURE" {
			return g.Target
		}
	}
	return -1
}

// sortedGates returns the gates ordered by step, keeping insertion order
// within a step.
func (c *Circuit) sortedGates() []Gate {
	gates := slices.Clone(c.Gates)
	slices.SortStableFunc(gates, func(a, b Gate) int { return a.Step - b.Step })
	return gates
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate         *Gate
	isControl    bool
	isTarget     bool
	vertAbove    bool
	vertBelow    bool
	passThrough  bool
	measureBelow bool
	isBarrier    bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	if gate := c.GetGateAt(step, qubit); gate != nil {
		info.gate = gate
		info.isControl = slices.Contains(gate.Controls, qubit)
		info.isTarget = gate.Target == qubit && len(gate.Controls) > 0
	}

	for i := range c.Gates {
		if c.Gates[i].Step == step && c.Gates[i].Type == "BARRIER" {
			info.isBarrier = true
			if info.gate == nil {
				info.gate = &c.Gates[i]
			}
			break
		}
	}

	// Vertical connections for controlled gates
	for _, g := range c.Gates {
		if g.Step != step || len(g.Controls) == 0 {
			continue
		}
		minQ, maxQ := g.Target, g.Target
		for _, ctrl := range g.Controls {
			minQ = min(minQ, ctrl)
			maxQ = max(maxQ, ctrl)
		}
		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.vertAbove = true
			}
			if qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	// Measurement wires run down to the classical register
	if measured := c.GetMeasureAtStep(step); measured >= 0 && qubit > measured {
		info.measureBelow = true
	}

	return info
}
