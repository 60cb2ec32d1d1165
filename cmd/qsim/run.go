package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(cfg *Config) *cobra.Command {
	var probs bool

	cmd := &cobra.Command{
		Use:   "run <file.qasm>",
		Short: "Simulate a QASM file and print the measurement histogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cfg, false)
			if err != nil {
				return errors.Wrap(err, "create logger")
			}
			defer logger.Sync() //nolint:errcheck

			circuit, err := loadCircuit(args[0])
			if err != nil {
				return err
			}
			logger.Debug("circuit loaded",
				zap.String("path", args[0]),
				zap.Int("qubits", circuit.NumQubits),
				zap.Int("gates", len(circuit.Gates)))

			out, err := runCircuit(cfg, logger, circuit, probs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&probs, "probs", "p", false, "also print per-qubit probabilities")
	return cmd
}

// runCircuit simulates the circuit and renders its histogram.
func runCircuit(cfg *Config, logger *zap.Logger, circuit *Circuit, probs bool) (string, error) {
	sim, err := SimulateCircuit(circuit, -1, simOptions(cfg.newRand(), logger)...)
	if err != nil {
		return "", errors.Wrap(err, "simulate")
	}
	counts, err := sim.Measure(cfg.Shots)
	if err != nil {
		return "", errors.Wrap(err, "measure")
	}

	out := renderHistogram(counts, barW)
	if probs {
		out = renderQubitProbs(sim.State().QubitProbabilities(), barW) + "\n\n" + out
	}
	return out, nil
}
