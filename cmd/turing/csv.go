package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var csvCmd = &cobra.Command{
	Use:   "csv <path>",
	Short: "Load transitions from a CSV file and run them interactively",
	Long: `Loads a transition table whose header is exactly
lhs_state,input,rhs_state,replacement,direction. The first invalid row aborts
the load. Track count and key states not given as flags are prompted for.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tracks, _ := cmd.Flags().GetInt("tracks")
		initial, _ := cmd.Flags().GetString("initial")
		final, _ := cmd.Flags().GetStringSlice("final")
		alias, _ := cmd.Flags().GetString("blank-alias")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		r := cli.NewRunner(app.cfg, app.logger, os.Stdin, os.Stdout, richOutput())
		err := cli.RunCSV(ctx, r, args[0], cli.CSVOptions{
			Tracks:  tracks,
			Initial: initial,
			Final:   final,
			Alias:   alias,
		})
		if err != nil && !cli.IsInterrupted(err) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(csvCmd)
	csvCmd.Flags().Int("tracks", 0, "Number of tracks (prompted when omitted)")
	csvCmd.Flags().String("initial", "", "Initial state (prompted when omitted)")
	csvCmd.Flags().StringSlice("final", nil, "Final states")
	csvCmd.Flags().String("blank-alias", "", "Word read as □ in the input and replacement columns (off by default)")
}
