package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsim/quantum"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero qubits", func(c *Config) { c.Qubits = 0 }},
		{"too many qubits", func(c *Config) { c.Qubits = quantum.MaxQubits + 1 }},
		{"zero shots", func(c *Config) { c.Shots = 0 }},
		{"negative shots", func(c *Config) { c.Shots = -5 }},
		{"no save path", func(c *Config) { c.SavePath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigFlags(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.PersistentFlags().Parse([]string{"-n", "3", "--shots", "10", "--seed", "99", "-v"}))

	for name, want := range map[string]string{
		"qubits":  "3",
		"shots":   "10",
		"seed":    "99",
		"verbose": "true",
		"save":    "circuit.qasm",
	} {
		flag := root.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, want, flag.Value.String(), name)
	}
}

func TestConfigSeedIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1234
	a, b := cfg.newRand(), cfg.newRand()
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}
