package turing

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
)

// Version is the release of the module. It is overridden at build time via -ldflags.
var Version = "0.3.0-dev"

// Engine is the high-level entry point for the Turing library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime  *runtime.Engine
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxSteps int
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps bounds Execute. Zero or a negative value means unbounded.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// New validates the machine and initializes an engine for it.
func New(machine *domain.Machine, opts ...Option) (*Engine, error) {
	if machine == nil {
		return nil, fmt.Errorf("machine cannot be nil")
	}
	if err := machine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine %q: %w", machine.Name, err)
	}

	eng := &Engine{Name: machine.Name}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("machine", eng.Name)
	}

	eng.runtime = runtime.NewEngine(
		machine,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng, nil
}

// Machine returns the machine definition driven by the engine.
func (e *Engine) Machine() *domain.Machine {
	return e.runtime.Machine()
}

// Compose turns one string per track into the tape input of the machine.
func (e *Engine) Compose(tracks ...string) ([]domain.Symbol, error) {
	m := e.runtime.Machine()
	if len(tracks) != m.Tracks {
		return nil, fmt.Errorf("got %d, want %d: %w", len(tracks), m.Tracks, domain.ErrTrackCount)
	}
	return domain.ComposeSymbols(tracks)
}

// Run returns the configurations the machine goes through on the given tracks.
// See runtime.Engine.Run for the sequence semantics.
func (e *Engine) Run(tracks ...string) (iter.Seq[domain.Snapshot], error) {
	input, err := e.Compose(tracks...)
	if err != nil {
		return nil, err
	}
	return e.runtime.Run(input), nil
}

// Execute runs the machine to completion on the given tracks.
// It stops early with domain.ErrStepLimit when WithMaxSteps was set and exceeded.
func (e *Engine) Execute(ctx context.Context, tracks ...string) (*domain.Result, error) {
	input, err := e.Compose(tracks...)
	if err != nil {
		return nil, err
	}
	return e.runtime.Execute(ctx, input, e.maxSteps)
}

// Trace runs like Execute and also returns every configuration visited,
// ending with the halting one. The step limit and the context apply as in Execute.
func (e *Engine) Trace(ctx context.Context, tracks ...string) (*domain.Result, []domain.Snapshot, error) {
	seq, err := e.Run(tracks...)
	if err != nil {
		return nil, nil, err
	}

	var (
		snaps []domain.Snapshot
		last  domain.Snapshot
		stop  error
	)
	for snap := range seq {
		snaps = append(snaps, snap)
		last = snap
		if snap.Halted() {
			continue
		}
		if err := ctx.Err(); err != nil {
			stop = err
			break
		}
		if e.maxSteps > 0 && snap.Step >= e.maxSteps {
			stop = fmt.Errorf("after %d steps: %w", snap.Step, domain.ErrStepLimit)
			break
		}
	}

	res := &domain.Result{
		Accepted:   stop == nil && e.Machine().Accepts(last.State),
		FinalState: last.State,
		Steps:      last.Step,
		Cells:      last.Cells,
		Head:       last.Head,
	}
	return res, snaps, stop
}
