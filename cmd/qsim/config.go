package main

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qsim/quantum"
)

// Config holds the settings shared by the editor and the run command.
type Config struct {
	Qubits   int    // register size of a new circuit
	Shots    int    // samples per histogram
	Seed     uint64 // 0 picks a random seed
	Verbose  bool   // debug-level logging
	LogFile  string // editor log destination; empty disables editor logging
	SavePath string // ctrl+s target
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() *Config {
	return &Config{
		Qubits:   4,
		Shots:    1024,
		SavePath: "circuit.qasm",
	}
}

// Validate checks the ranges the simulator accepts.
func (c *Config) Validate() error {
	if c.Qubits < 1 || c.Qubits > quantum.MaxQubits {
		return errors.Errorf("qubits must be in [1,%d], got %d", quantum.MaxQubits, c.Qubits)
	}
	if c.Shots <= 0 {
		return errors.Errorf("shots must be positive, got %d", c.Shots)
	}
	if c.SavePath == "" {
		return errors.New("save path must not be empty")
	}
	return nil
}

func (c *Config) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.IntVarP(&c.Qubits, "qubits", "n", c.Qubits, "number of qubits in a new circuit")
	flags.IntVarP(&c.Shots, "shots", "s", c.Shots, "measurement shots per histogram")
	flags.Uint64Var(&c.Seed, "seed", c.Seed, "sampling seed (0 for random)")
	flags.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "enable debug logging")
	flags.StringVar(&c.LogFile, "log-file", c.LogFile, "write editor logs to this file")
	flags.StringVar(&c.SavePath, "save", c.SavePath, "file written by ctrl+s in the editor")
}

// newRand returns the sampling source for this run.
func (c *Config) newRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// simOptions returns the simulator options for one replay.
func simOptions(rng *rand.Rand, logger *zap.Logger) []quantum.Option {
	return []quantum.Option{
		quantum.WithRand(rng),
		quantum.WithLogger(logger),
	}
}
