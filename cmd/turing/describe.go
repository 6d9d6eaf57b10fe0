package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file|name>",
	Short: "Show a machine's key states and transition table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		m, err := cli.ResolveMachine(cmd.Context(), store, args[0], app.cfg.Engine.BlankAlias)
		if err != nil {
			return err
		}

		if !richOutput() {
			fmt.Print(tui.MachineMarkdown(m))
			return nil
		}
		out, err := tui.DescribeMachine(m)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
