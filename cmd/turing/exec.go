package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
)

var execCmd = &cobra.Command{
	Use:   "exec <file|name>",
	Short: "Run a machine once without prompts",
	Long: `Runs a machine definition file (or a machine from the store) on the
given input, one --input per track, and prints the verdict and the tape.
The exit status is 2 when the machine rejects.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringArray("input")
		trace, _ := cmd.Flags().GetBool("trace")
		withGraph, _ := cmd.Flags().GetBool("graph")

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		m, err := cli.ResolveMachine(cmd.Context(), store, args[0], app.cfg.Engine.BlankAlias)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			inputs = make([]string, m.Tracks)
		}

		opts := cli.ExecOptions{
			Tracks:   inputs,
			MaxSteps: app.cfg.Engine.MaxSteps,
			Trace:    trace,
			Graph:    withGraph,
			Logger:   app.logger,
		}
		if richOutput() {
			opts.Renderer = tui.RenderSnapshot
			opts.Verdict = tui.Verdict
		}

		res, err := cli.Exec(cmd.Context(), os.Stdout, m, opts)
		if err != nil {
			return err
		}
		if !res.Accepted {
			return errRejected
		}
		return nil
	},
}

var errRejected = errors.New("input rejected")

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().StringArrayP("input", "i", nil, "Input string for one track (repeat once per track)")
	execCmd.Flags().Bool("trace", false, "Print every configuration")
	execCmd.Flags().Bool("graph", false, "Print a Mermaid diagram highlighting the visited states")
}
