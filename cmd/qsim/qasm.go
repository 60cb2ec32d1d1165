package main

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	twoQubitRegex   = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex    = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*\w+\[(\d+)\];?$`)
	qregRegex       = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
	cregRegex       = regexp.MustCompile(`^creg\s+(\w+)\[(\d+)\];?$`)
	initRegex       = regexp.MustCompile(`^//\s*init\s+q\[(\d+)\]\s*=\s*(.+?);?$`)
	barrierRegex    = regexp.MustCompile(`^barrier\b`)
)

// ErrUnsupportedStatement is returned for QASM the simulator cannot run.
var ErrUnsupportedStatement = errors.New("unsupported statement")

// ToQASM generates QASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	numQubits := max(c.NumQubits, 1)
	numCbits := max(c.NumCbits(), 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	if len(c.Inits) > 0 {
		qubits := make([]int, 0, len(c.Inits))
		for q := range c.Inits {
			qubits = append(qubits, q)
		}
		slices.Sort(qubits)
		for _, q := range qubits {
			fmt.Fprintf(&sb, "// init q[%d] = %s\n", q, formatInitVector(c.Inits[q]))
		}
		sb.WriteString("\n")
	}

	for _, gate := range c.sortedGates() {
		switch gate.Type {
		case "BARRIER":
			qubits := make([]string, numQubits)
			for q := range numQubits {
				qubits[q] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(qubits, ", "))
		case "MEASURE":
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", gate.Target, gate.Target)
		default:
			fmt.Fprintf(&sb, "%s ", strings.ToLower(gate.Type))
			for _, ctrl := range gate.Controls {
				fmt.Fprintf(&sb, "q[%d], ", ctrl)
			}
			fmt.Fprintf(&sb, "q[%d];\n", gate.Target)
		}
	}

	return sb.String()
}

// controlledArity is the number of controls each controlled gate takes.
var controlledArity = map[string]int{
	"CX": 1, "CNOT": 1, "CZ": 1,
	"CCX": 2, "TOFFOLI": 2, "CCZ": 2,
}

// canonicalGate maps QASM aliases onto the grid's gate names.
func canonicalGate(name string) string {
	switch name {
	case "CNOT":
		return "CX"
	case "TOFFOLI":
		return "CCX"
	}
	return name
}

// ParseQASM parses QASM text and rebuilds the circuit from it. Gates that
// touch disjoint qubits share a step; a gate reusing a qubit already placed
// in the current step opens the next one.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	c.Inits = make(map[int][2]complex128)

	currentStep := 0
	currentStepQubits := make(map[int]bool)
	place := func(qubits []int) int {
		for _, q := range qubits {
			if currentStepQubits[q] {
				currentStep++
				currentStepQubits = make(map[int]bool)
				break
			}
		}
		for _, q := range qubits {
			currentStepQubits[q] = true
		}
		return currentStep
	}

	for i, raw := range strings.Split(qasm, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "//") {
			if matches := initRegex.FindStringSubmatch(line); matches != nil {
				q, _ := strconv.Atoi(matches[1])
				v, err := parseInitVector(matches[2])
				if err != nil {
					return errors.Wrapf(err, "line %d: init q[%d]", lineNo, q)
				}
				c.SetInit(q, v)
			}
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			n, _ := strconv.Atoi(matches[2])
			c.NumQubits = n
			continue
		}
		if cregRegex.MatchString(line) {
			continue
		}

		if barrierRegex.MatchString(line) {
			// A barrier closes the current step and occupies one of its own.
			if len(currentStepQubits) > 0 {
				currentStep++
			}
			c.AddBarrier(currentStep)
			currentStep++
			currentStepQubits = make(map[int]bool)
			continue
		}

		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			q, _ := strconv.Atoi(matches[1])
			c.AddGate("MEASURE", q, place([]int{q}))
			continue
		}

		var name string
		var qubits []int
		switch {
		case threeQubitRegex.MatchString(line):
			matches := threeQubitRegex.FindStringSubmatch(line)
			name = strings.ToUpper(matches[1])
			qubits = atoiAll(matches[2:5])
		case twoQubitRegex.MatchString(line):
			matches := twoQubitRegex.FindStringSubmatch(line)
			name = strings.ToUpper(matches[1])
			qubits = atoiAll(matches[2:4])
		case singleGateRegex.MatchString(line):
			matches := singleGateRegex.FindStringSubmatch(line)
			name = strings.ToUpper(matches[1])
			qubits = atoiAll(matches[2:3])
		default:
			return errors.Wrapf(ErrUnsupportedStatement, "line %d: %q", lineNo, line)
		}

		if err := c.addParsedGate(name, qubits, place); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}

	return nil
}

func (c *Circuit) addParsedGate(name string, qubits []int, place func([]int) int) error {
	for i, q := range qubits {
		if slices.Contains(qubits[i+1:], q) {
			return errors.Wrapf(ErrUnsupportedStatement, "%s repeats q[%d]", strings.ToLower(name), q)
		}
	}

	if len(qubits) == 1 {
		switch name {
		case "H", "X", "Y", "Z":
			c.AddGate(name, qubits[0], place(qubits))
			return nil
		}
		return errors.Wrapf(ErrUnsupportedStatement, "gate %s", strings.ToLower(name))
	}

	arity, ok := controlledArity[name]
	if !ok || arity != len(qubits)-1 {
		return errors.Wrapf(ErrUnsupportedStatement, "gate %s on %d qubits", strings.ToLower(name), len(qubits))
	}
	target := qubits[len(qubits)-1]
	c.AddGate(canonicalGate(name), target, place(qubits), qubits[:len(qubits)-1]...)
	return nil
}

func atoiAll(ss []string) []int {
	out := make([]int, len(ss))
	for i, s := range ss {
		out[i], _ = strconv.Atoi(s)
	}
	return out
}
