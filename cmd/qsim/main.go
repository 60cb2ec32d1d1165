// Command qsim is a terminal editor and batch runner for small quantum
// circuits simulated on a dense state vector.
package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := DefaultConfig()

	root := &cobra.Command{
		Use:   "qsim [file.qasm]",
		Short: "Edit and simulate quantum circuits in the terminal",
		Long: `qsim opens an interactive circuit editor. Gates are placed on a grid,
the QASM view stays in sync with the grid and every change is replayed on a
state-vector simulator whose measurement histogram is shown alongside.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cfg, args)
		},
	}
	cfg.bindFlags(root)
	root.AddCommand(newRunCmd(cfg))
	return root
}

func runEditor(cfg *Config, args []string) error {
	logger, err := newLogger(cfg, true)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer logger.Sync() //nolint:errcheck

	var circuit *Circuit
	if len(args) == 1 {
		if circuit, err = loadCircuit(args[0]); err != nil {
			return err
		}
		logger.Info("circuit loaded", zap.String("path", args[0]), zap.Int("gates", len(circuit.Gates)))
	}

	p := tea.NewProgram(initialModel(cfg, logger, circuit), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run editor")
	}
	return nil
}

// loadCircuit reads and parses a QASM file.
func loadCircuit(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	circuit := NewCircuit(0)
	if err := circuit.ParseQASM(string(data)); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return circuit, nil
}
