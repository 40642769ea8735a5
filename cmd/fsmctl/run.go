package main

import (
	"errors"
	"fmt"

	"github.com/baijijs/fsm"
	"github.com/spf13/cobra"
)

var errMissedEvent = errors.New("event matched no transition")

func (a *app) newRunCmd() *cobra.Command {
	var (
		strict   bool
		wildcard string
	)

	cmd := &cobra.Command{
		Use:   "run FILE EVENT...",
		Short: "Fire events in order and report each transition",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []fsm.MachineOption
			if cmd.Flags().Changed("wildcard") {
				mode, err := fsm.ParseWildcardMode(wildcard)
				if err != nil {
					return err
				}
				opts = append(opts, fsm.WithWildcardMode(mode))
			}

			m, err := a.load(args[0], opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ev := range args[1:] {
				res := m.Fire(fsm.EventID(ev))
				if !res.Ok() {
					fmt.Fprintf(out, "%s: no transition from %s\n", res.Event, res.From)
					if strict {
						return fmt.Errorf("%w: %s from %s", errMissedEvent, res.Event, res.From)
					}
					continue
				}
				fmt.Fprintf(out, "%s: %s -> %s\n", res.Event, res.From, res.To)
			}
			fmt.Fprintf(out, "current: %s\n", m.Current())
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first event that matches no transition")
	cmd.Flags().StringVar(&wildcard, "wildcard", "", "Override the wildcard mode (literal or any)")
	return cmd
}
