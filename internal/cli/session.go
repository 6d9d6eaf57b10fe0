package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/adapters/csv"
	"github.com/aretw0/turing/pkg/demos"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// NewRunner prepares an interactive runner following the configuration.
// Plain rendering is used when color is off or output is not a terminal.
func NewRunner(cfg config.Config, logger *slog.Logger, in io.Reader, out io.Writer, rich bool) *runner.Runner {
	opts := []runner.Option{
		runner.WithIO(in, out),
		runner.WithLogger(logger),
		runner.WithMaxSteps(cfg.Engine.MaxSteps),
		runner.WithBlankAlias(cfg.Engine.BlankAlias),
	}
	if rich {
		opts = append(opts, runner.WithRenderer(tui.RenderSnapshot), runner.WithVerdict(tui.Verdict))
	}
	return runner.NewRunner(opts...)
}

// CSVOptions are the key states and track count given on the command line.
// Whatever is missing is asked for interactively.
type CSVOptions struct {
	Tracks  int
	Initial string
	Final   []string
	Alias   string
}

// RunCSV loads a transition table from a CSV file and starts a session on it.
func RunCSV(ctx context.Context, r *runner.Runner, path string, opts CSVOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open transition file: %w", err)
	}
	defer f.Close()

	var loaderOpts []csv.LoaderOption
	if opts.Alias != "" {
		loaderOpts = append(loaderOpts, csv.WithBlankAlias(opts.Alias))
	}
	loader := csv.NewLoader(f, loaderOpts...)
	if err := loader.CheckHeader(); err != nil {
		return err
	}

	tracks := opts.Tracks
	if tracks <= 0 {
		if tracks, err = r.PromptTracks(); err != nil {
			return err
		}
	}

	table, err := loader.Table(tracks)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	PrintSystemMessage(r.Output, "Loaded %d transitions from %s", len(table), filepath.Base(path))

	var states domain.KeyStates
	if opts.Initial == "" {
		if states, err = r.PromptKeyStates(table); err != nil {
			return err
		}
	} else {
		if !table.HasState(opts.Initial) {
			return fmt.Errorf("initial state %q: %w", opts.Initial, domain.ErrInvalidState)
		}
		valid, rejected := domain.FilterStates(opts.Final, table)
		if len(rejected) > 0 {
			PrintSystemMessage(r.Output, "Ignoring final states not used by any transition: %s", strings.Join(rejected, ", "))
		}
		states = domain.KeyStates{Initial: opts.Initial, Final: valid}
	}

	m := &domain.Machine{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Tracks: tracks,
		Table:  table,
		States: states,
	}
	return r.Session(ctx, m)
}

// RunDemo starts a session on a bundled demo.
func RunDemo(ctx context.Context, r *runner.Runner, index int) error {
	d, err := demos.Get(index)
	if err != nil {
		return err
	}
	PrintSystemMessage(r.Output, "Demo %d: %s (%s)", d.Index, d.Machine.Name, d.Summary)
	PrintSystemMessage(r.Output, "Try: %s", strings.Join(d.Example, " / "))
	return r.Session(ctx, d.Machine)
}

// ListDemos writes one line per bundled demo.
func ListDemos(w io.Writer) error {
	all, err := demos.All()
	if err != nil {
		return err
	}
	for _, d := range all {
		fmt.Fprintf(w, "%d: %-15s %s (e.g. %s)\n", d.Index, d.Machine.Name, d.Summary, strings.Join(d.Example, " / "))
	}
	return nil
}
