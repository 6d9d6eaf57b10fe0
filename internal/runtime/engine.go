package runtime

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
)

// Engine is the core interpreter of a single machine.
// It holds no per-run state and can start any number of sequential runs.
type Engine struct {
	machine *domain.Machine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger used for step tracing.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine for a machine. The machine is not copied and
// must not be modified while the engine is in use.
func NewEngine(machine *domain.Machine, opts ...EngineOption) *Engine {
	e := &Engine{
		machine: machine,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Machine returns the machine this engine interprets.
func (e *Engine) Machine() *domain.Machine {
	return e.machine
}

// Start prepares a fresh run over the given input symbols.
func (e *Engine) Start(input []domain.Symbol) *Execution {
	return &Execution{
		engine: e,
		tape:   domain.NewTape(input, e.machine.Tracks),
		state:  e.machine.States.Initial,
	}
}

// Run returns the configurations of a run, starting with the initial one.
// The sequence ends right after the halting configuration and never ends for
// machines that do not halt. Each call to the returned sequence starts over.
func (e *Engine) Run(input []domain.Symbol) iter.Seq[domain.Snapshot] {
	return func(yield func(domain.Snapshot) bool) {
		x := e.Start(input)
		for {
			snap := x.Snapshot()
			if !yield(snap) {
				return
			}
			if snap.Halted() {
				x.halt(context.Background())
				return
			}
			x.Step()
		}
	}
}

// Execute runs until the machine halts and reports the result.
// The context is checked between steps. A positive maxSteps bounds the run:
// when it is exceeded the partial result is returned with ErrStepLimit.
func (e *Engine) Execute(ctx context.Context, input []domain.Symbol, maxSteps int) (*domain.Result, error) {
	x := e.Start(input)
	for {
		if err := ctx.Err(); err != nil {
			return x.partial(), err
		}
		if maxSteps > 0 && x.steps >= maxSteps {
			if _, ok := x.match(); ok {
				return x.partial(), fmt.Errorf("after %d steps: %w", x.steps, domain.ErrStepLimit)
			}
		}
		if !x.stepContext(ctx) {
			break
		}
	}
	x.halt(ctx)
	return x.Result(), nil
}

func (e *Engine) emitStep(ctx context.Context, x *Execution, tr domain.Transition) {
	e.logger.Debug("step",
		"machine", e.machine.Name,
		"step", x.steps,
		"transition", tr.String(),
		"head", x.tape.Head(),
	)
	if e.hooks.OnStep != nil {
		e.hooks.OnStep(ctx, &domain.StepEvent{
			EventBase:  e.event(domain.EventStep),
			Step:       x.steps,
			Transition: tr,
			Head:       x.tape.Head(),
			TapeLength: x.tape.Len(),
		})
	}
}

func (e *Engine) emitHalt(ctx context.Context, x *Execution) {
	accepted := e.machine.Accepts(x.state)
	e.logger.Info("machine halted",
		"machine", e.machine.Name,
		"state", x.state,
		"accepted", accepted,
		"steps", x.steps,
	)
	if e.hooks.OnHalt != nil {
		e.hooks.OnHalt(ctx, &domain.HaltEvent{
			EventBase:  e.event(domain.EventHalt),
			FinalState: x.state,
			Accepted:   accepted,
			Steps:      x.steps,
			TapeLength: x.tape.Len(),
		})
	}
}

func (e *Engine) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Machine:   e.machine.Name,
	}
}
