package main

import (
	"fmt"

	"github.com/baijijs/fsm/internal/graph"
	"github.com/spf13/cobra"
)

func (a *app) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph FILE",
		Short: "Print the machine as a Mermaid state diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.Mermaid(m))
			return nil
		},
	}
}
