package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/baijijs/fsm"
	"github.com/baijijs/fsm/internal/logging"
	"github.com/spf13/cobra"
)

type app struct {
	logger *slog.Logger
}

func newRootCmd(cfg envConfig) *cobra.Command {
	a := &app{logger: logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)}

	root := &cobra.Command{
		Use:          "fsmctl",
		Short:        "fsmctl inspects and drives declarative state machines",
		Long:         `fsmctl loads a YAML machine description, checks it, renders it as a Mermaid diagram, or fires events against it.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		a.newValidateCmd(),
		a.newGraphCmd(),
		a.newRunCmd(),
	)
	return root
}

// load reads the machine description at path and builds it
func (a *app) load(path string, opts ...fsm.MachineOption) (*fsm.Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := fsm.LoadConfig(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine %s: %w", path, err)
	}

	opts = append([]fsm.MachineOption{fsm.WithLogger(a.logger)}, opts...)
	m, err := fsm.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build machine %s: %w", path, err)
	}
	a.logger.Debug("machine loaded", "path", path, "states", len(m.States()), "events", len(m.Events()))
	return m, nil
}
