package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/adapters/csv"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/schema"
)

var errInvalid = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a machine definition or CSV transition file",
	Long: `Reports every problem of a YAML/JSON definition file. CSV transition files
are checked against --tracks and stop at the first invalid row.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		alias := app.cfg.Engine.BlankAlias

		if strings.EqualFold(filepath.Ext(path), ".csv") {
			tracks, _ := cmd.Flags().GetInt("tracks")
			var opts []csv.LoaderOption
			if csvAlias, _ := cmd.Flags().GetString("blank-alias"); csvAlias != "" {
				opts = append(opts, csv.WithBlankAlias(csvAlias))
			}
			table, err := csv.LoadFile(path, tracks, opts...)
			if err != nil {
				fmt.Printf("✗ %v\n", err)
				return errInvalid
			}
			fmt.Printf("Transitions are valid! ✅ (%d rows)\n", len(table))
			return nil
		}

		m, err := definition.LoadFile(path, definition.WithBlankAlias(alias))
		if err != nil {
			problems := schema.ValidationErrors(err)
			if len(problems) == 0 {
				problems = []error{err}
			}
			for _, p := range problems {
				fmt.Printf("✗ %v\n", p)
			}
			return errInvalid
		}
		fmt.Printf("Machine %q is valid! ✅ (%d tracks, %d transitions)\n", m.Name, m.Tracks, len(m.Table))
		for _, f := range validator.Lint(m) {
			fmt.Printf("  %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Int("tracks", 1, "Number of tracks (CSV files only)")
	validateCmd.Flags().String("blank-alias", "", "Word read as □ in CSV symbols (CSV files only)")
}
