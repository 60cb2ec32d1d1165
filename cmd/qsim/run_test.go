package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qsim/quantum"
)

const ghzQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

h q[0];
cx q[0], q[1];
cx q[1], q[2];
measure q[0] -> c[0];
measure q[1] -> c[1];
measure q[2] -> c[2];
`

func writeQASM(t *testing.T, qasm string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit.qasm")
	require.NoError(t, os.WriteFile(path, []byte(qasm), 0644))
	return path
}

func TestRenderHistogram(t *testing.T) {
	counts := quantum.Counts{"00": 3, "01": 0, "10": 0, "11": 1}
	out := renderHistogram(counts, 8)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[0], "|00⟩")
	assert.Contains(t, lines[0], "75.00%")
	assert.Contains(t, lines[1], "|01⟩")
	assert.Contains(t, lines[1], "0.00%")
	assert.Contains(t, lines[3], "25.00%")
	assert.Contains(t, lines[4], "4 shots")
}

func TestBarWidth(t *testing.T) {
	for _, frac := range []float64{0, 0.25, 0.5, 1, 1.5, -1} {
		assert.Equal(t, 10, visibleLen(bar(frac, 10)), "frac %v", frac)
	}
}

func TestRunCircuit(t *testing.T) {
	c := NewCircuit(0)
	require.NoError(t, c.ParseQASM(ghzQASM))

	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.Shots = 500

	out, err := runCircuit(cfg, zap.NewNop(), c, true)
	require.NoError(t, err)
	assert.Contains(t, out, "q[2]")
	assert.Contains(t, out, "|000⟩")
	assert.Contains(t, out, "|111⟩")
	assert.Contains(t, out, "500 shots")

	// Same seed, same histogram
	again, err := runCircuit(cfg, zap.NewNop(), c, true)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRunCommand(t *testing.T) {
	path := writeQASM(t, ghzQASM)

	root := newRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"run", path, "--shots", "64", "--seed", "11"})
	require.NoError(t, root.Execute())

	assert.Contains(t, stdout.String(), "|000⟩")
	assert.Contains(t, stdout.String(), "64 shots")
}

func TestRunCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"run", filepath.Join(t.TempDir(), "nope.qasm")}},
		{"bad qasm", []string{"run", writeQASM(t, "qreg q[1];\nrx(0.5) q[0];")}},
		{"bad shots", []string{"run", writeQASM(t, ghzQASM), "--shots", "0"}},
		{"too many qubits", []string{"run", writeQASM(t, "qreg q[11];\nh q[0];")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(tt.args)
			assert.Error(t, root.Execute())
		})
	}
}
