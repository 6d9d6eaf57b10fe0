package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// ExecOptions configures a non-interactive run.
type ExecOptions struct {
	Tracks   []string
	MaxSteps int
	Trace    bool
	// Graph prints a Mermaid diagram of the states the run went through.
	Graph    bool
	Renderer runner.SnapshotRenderer
	Verdict  runner.VerdictRenderer
	Logger   *slog.Logger
	Hooks    domain.LifecycleHooks
}

// Exec runs m once on the given tracks and writes the outcome to w.
// A partial result is still reported when the run is cut short.
func Exec(ctx context.Context, w io.Writer, m *domain.Machine, opts ExecOptions) (*domain.Result, error) {
	if opts.Renderer == nil {
		opts.Renderer = runner.PlainRenderer
	}
	if opts.Verdict == nil {
		opts.Verdict = runner.PlainVerdict
	}

	engineOpts := []turing.Option{
		turing.WithMaxSteps(opts.MaxSteps),
		turing.WithLifecycleHooks(opts.Hooks),
	}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, turing.WithLogger(opts.Logger))
	}
	eng, err := turing.New(m, engineOpts...)
	if err != nil {
		return nil, err
	}

	var (
		res   *domain.Result
		trace []domain.Snapshot
	)
	if opts.Trace || opts.Graph {
		res, trace, err = eng.Trace(ctx, opts.Tracks...)
	} else {
		res, err = eng.Execute(ctx, opts.Tracks...)
	}
	if res == nil {
		return nil, err
	}

	if opts.Trace {
		for _, snap := range trace {
			fmt.Fprintln(w, opts.Renderer(snap, m.Tracks))
		}
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}

	fmt.Fprintln(w, opts.Verdict(res.Accepted))
	fmt.Fprintf(w, "Final state: %s\n", res.FinalState)
	fmt.Fprintf(w, "Steps: %d\n", res.Steps)
	for i, track := range res.Output(m.Tracks) {
		fmt.Fprintf(w, "Track %d: %s\n", i+1, track)
	}

	if opts.Graph {
		fmt.Fprintln(w)
		fmt.Fprint(w, graph.GenerateMermaid(m, graph.OverlayFromTrace(trace)))
	}
	return res, err
}
