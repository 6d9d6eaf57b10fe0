package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/demos"
)

var demoCmd = &cobra.Command{
	Use:   "demo [index]",
	Short: "Run one of the bundled demo machines",
	Long: `Without an index, lists the bundled demos. With an index, starts an
interactive session on that demo machine.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cli.ListDemos(os.Stdout)
		}

		index, err := strconv.Atoi(args[0])
		if err != nil || index < 0 || index >= demos.Count() {
			return fmt.Errorf("demo index must be between 0 and %d, got %q", demos.Count()-1, args[0])
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		r := cli.NewRunner(app.cfg, app.logger, os.Stdin, os.Stdout, richOutput())
		if err := cli.RunDemo(ctx, r, index); err != nil && !cli.IsInterrupted(err) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
