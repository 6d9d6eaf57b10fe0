package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/ports"
)

// app holds what every command shares once the root pre-run has resolved it.
var app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   ports.MachineStore
	cleanup []func() error
}

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "turing is a multi-track Turing machine simulator",
	Long: `turing builds Turing machines with one or more tracks from transition functions
such as δ(q0,a)=(q1,b,R) and runs them step by step on your input.

Without a subcommand it starts the interactive session.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		rich := richOutput()
		if rich && term.IsTerminal(int(os.Stdin.Fd())) {
			tui.PrintBanner(os.Stdout)
		}

		r := cli.NewRunner(app.cfg, app.logger, os.Stdin, os.Stdout, rich)
		if err := r.Interactive(ctx); err != nil && !cli.IsInterrupted(err) {
			return err
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		_ = teardown()
		if errors.Is(err, errRejected) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default $HOME/.config/turing/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors and tables")
	rootCmd.PersistentFlags().Int("max-steps", 0, "Step limit per run (overrides engine.max_steps)")
	rootCmd.PersistentFlags().String("store", "", "Machine store backend: memory, file, redis or bolt")
}

func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("max-steps") {
		cfg.Engine.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
	}
	if backend, _ := cmd.Flags().GetString("store"); backend != "" {
		cfg.Store.Backend = backend
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.UI.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.UI.Color {
		tui.DisableColor()
	}

	debug, _ := cmd.Flags().GetBool("debug")
	logger, closeLog, err := cli.NewLogger(cfg.Log, debug)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.logger = logger
	app.cleanup = append(app.cleanup, closeLog)
	return nil
}

// openStore resolves the machine library for commands that need one.
func openStore(cmd *cobra.Command) (ports.MachineStore, error) {
	if app.store != nil {
		return app.store, nil
	}
	store, closeStore, err := cli.OpenStore(cmd.Context(), app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.store = store
	app.cleanup = append(app.cleanup, closeStore)
	return store, nil
}

func teardown() error {
	var first error
	for i := len(app.cleanup) - 1; i >= 0; i-- {
		if err := app.cleanup[i](); err != nil && first == nil {
			first = err
		}
	}
	app.cleanup = nil
	return first
}

// richOutput reports whether tables and colors should be drawn.
func richOutput() bool {
	return app.cfg.UI.Color && term.IsTerminal(int(os.Stdout.Fd()))
}
