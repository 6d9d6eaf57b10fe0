package runtime

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// Execution is one run of a machine. It owns its tape exclusively.
// An Execution is not safe for concurrent use.
type Execution struct {
	engine *Engine
	tape   *domain.Tape
	state  string
	steps  int
	halted bool
}

// State returns the current state.
func (x *Execution) State() string {
	return x.state
}

// Steps returns the number of transitions applied so far.
func (x *Execution) Steps() int {
	return x.steps
}

// Snapshot captures the current configuration together with the transition
// that applies to it, if any.
func (x *Execution) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Step:  x.steps,
		State: x.state,
		Cells: x.tape.Cells(),
		Head:  x.tape.Head(),
	}
	if tr, ok := x.match(); ok {
		snap.Matched = &tr
	}
	return snap
}

// Step applies the matching transition and reports whether one was found.
// When no transition matches the machine has halted and nothing changes.
func (x *Execution) Step() bool {
	ctx := context.Background()
	if x.stepContext(ctx) {
		return true
	}
	x.halt(ctx)
	return false
}

// Result reports the current configuration as a run outcome.
func (x *Execution) Result() *domain.Result {
	return &domain.Result{
		Accepted:   x.engine.machine.Accepts(x.state),
		FinalState: x.state,
		Steps:      x.steps,
		Cells:      x.tape.Cells(),
		Head:       x.tape.Head(),
	}
}

// partial is the result of a run that was stopped before halting; it never accepts.
func (x *Execution) partial() *domain.Result {
	res := x.Result()
	res.Accepted = false
	return res
}

func (x *Execution) match() (domain.Transition, bool) {
	return x.engine.machine.Table.Lookup(x.state, x.tape.Read())
}

func (x *Execution) stepContext(ctx context.Context) bool {
	tr, ok := x.match()
	if !ok {
		return false
	}

	x.tape.Write(tr.Write)
	x.state = tr.To
	x.tape.Move(tr.Move)
	x.steps++

	x.engine.emitStep(ctx, x, tr)
	return true
}

// halt emits the halt event once per run.
func (x *Execution) halt(ctx context.Context) {
	if x.halted {
		return
	}
	x.halted = true
	x.engine.emitHalt(ctx, x)
}
