package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file|name>",
	Short: "Export the state diagram of a machine",
	Long: `Outputs a Mermaid diagram (stateDiagram-v2) of the transition table.
With --input, the states visited by that run are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		m, err := cli.ResolveMachine(cmd.Context(), store, args[0], app.cfg.Engine.BlankAlias)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if inputs, _ := cmd.Flags().GetStringArray("input"); len(inputs) > 0 {
			eng, err := turing.New(m, turing.WithLogger(app.logger), turing.WithMaxSteps(app.cfg.Engine.MaxSteps))
			if err != nil {
				return err
			}
			_, trace, err := eng.Trace(cmd.Context(), inputs...)
			if err != nil && !errors.Is(err, domain.ErrStepLimit) {
				return err
			}
			overlay = graph.OverlayFromTrace(trace)
		}

		fmt.Print(graph.GenerateMermaid(m, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringArrayP("input", "i", nil, "Input string for one track (repeat once per track)")
}
