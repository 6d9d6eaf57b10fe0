package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

// DefaultMaxSteps guards interactive runs against machines that never halt.
const DefaultMaxSteps = 10_000

// endMarker closes the transition and final state prompts.
const endMarker = "END"

// Runner drives the interactive session: it builds a machine from prompts and
// then runs it on as many inputs as the user wants.
type Runner struct {
	Input  io.Reader
	Output io.Writer

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// MaxSteps bounds each run. Zero or negative means unbounded.
	MaxSteps int

	// Alias is the word accepted instead of the blank rune.
	Alias string

	Renderer SnapshotRenderer
	Verdict  VerdictRenderer

	prompter *Prompter
}

// NewRunner creates a Runner on Stdin/Stdout with plain text rendering.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:    os.Stdin,
		Output:   os.Stdout,
		Logger:   logging.NewNop(),
		MaxSteps: DefaultMaxSteps,
		Alias:    domain.DefaultBlankAlias,
		Renderer: PlainRenderer,
		Verdict:  PlainVerdict,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) ask() *Prompter {
	if r.prompter == nil {
		r.prompter = NewPrompter(r.Input, r.Output)
	}
	return r.prompter
}

// Interactive builds a machine from prompts and runs the session loop.
// Running out of input ends the session without an error.
func (r *Runner) Interactive(ctx context.Context) error {
	m, err := r.BuildMachine(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.Session(ctx, m)
}

// BuildMachine prompts for the track count, the transitions and the key states.
func (r *Runner) BuildMachine(ctx context.Context) (*domain.Machine, error) {
	tracks, err := r.PromptTracks()
	if err != nil {
		return nil, err
	}

	table, err := r.PromptTransitions(ctx, tracks)
	if err != nil {
		return nil, err
	}

	states, err := r.PromptKeyStates(table)
	if err != nil {
		return nil, err
	}

	m := &domain.Machine{
		Name:   "interactive",
		Tracks: tracks,
		Table:  table,
		States: states,
	}
	r.Logger.Debug("machine built", "tracks", tracks, "transitions", len(table), "initial", states.Initial)
	return m, nil
}

// PromptTracks asks for the number of tracks until a positive integer is given.
func (r *Runner) PromptTracks() (int, error) {
	p := r.ask()
	for {
		answer, err := p.Ask("Number of tracks: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n > 0 {
			return n, nil
		}
		p.Printf("Error: %q: %v\n", answer, domain.ErrInvalidTracks)
	}
}

// PromptTransitions reads transitions until END. Every rejected entry is
// reported and dropped; at least one transition is required.
func (r *Runner) PromptTransitions(ctx context.Context, tracks int) (domain.Table, error) {
	p := r.ask()
	parser := compiler.NewParser(r.Alias)
	table := domain.Table{}

	p.Printf("Enter functions e.g δ(q1,a)=(q2,b,L) [enter '%s' if you don't want to add anymore functions]:\n", endMarker)
	p.Printf("*you can use '%s' instead of %s\n", r.alias(), domain.Blank)

	for index := 0; ; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, err := p.Ask("δ")
		if err != nil {
			return nil, err
		}
		if line == "" {
			continue
		}
		if strings.EqualFold(line, endMarker) {
			if len(table) == 0 {
				p.Println("Error: at least one function is required")
				continue
			}
			return table, nil
		}

		raw, err := parser.Parse(line)
		if err == nil {
			var tr domain.Transition
			if tr, err = schema.ValidateEntry(raw, tracks); err == nil {
				table = append(table, tr)
				index++
				continue
			}
		}
		entryErr := &schema.EntryError{Index: index, Entry: raw, Err: err}
		r.Logger.Debug("transition rejected", "error", entryErr)
		p.Printf("Error: %v (function was not added)\n", err)
	}
}

// PromptKeyStates asks for the initial state until it is used by the table,
// then for final states until END. Unknown final states are rejected and
// duplicates ignored.
func (r *Runner) PromptKeyStates(table domain.Table) (domain.KeyStates, error) {
	p := r.ask()
	known := table.States()
	var states domain.KeyStates

	for {
		answer, err := p.Ask("Enter initial state e.g. q0: ")
		if err != nil {
			return states, err
		}
		if table.HasState(answer) {
			states.Initial = answer
			break
		}
		p.Printf("Error: %q: %v%s\n", answer, domain.ErrInvalidState, hint(answer, known))
	}

	p.Printf("Enter final states e.g. q1 [enter '%s' if you don't want to add anymore final states]:\n", endMarker)
	for {
		answer, err := p.Ask("Final state: ")
		if err != nil {
			return states, err
		}
		if answer == "" {
			continue
		}
		if strings.EqualFold(answer, endMarker) {
			return states, nil
		}
		if !table.HasState(answer) {
			p.Printf("Error: %q: %v%s\n", answer, domain.ErrInvalidState, hint(answer, known))
			continue
		}
		if !slices.Contains(states.Final, answer) {
			states.Final = append(states.Final, answer)
		}
	}
}

// PromptInput asks for one string per track until all have the same length.
func (r *Runner) PromptInput(tracks int) ([]string, error) {
	p := r.ask()
	for {
		inputs := make([]string, tracks)
		for i := range inputs {
			answer, err := p.Ask(fmt.Sprintf("Tape (Track %d): ", i+1))
			if err != nil {
				return nil, err
			}
			inputs[i] = answer
		}
		if _, err := domain.ComposeSymbols(inputs); err != nil {
			p.Printf("Error: %v\n", err)
			continue
		}
		return inputs, nil
	}
}

// Session runs the machine on inputs from the prompts until the user declines
// another run or the input ends. Each run starts on a fresh tape.
func (r *Runner) Session(ctx context.Context, m *domain.Machine) error {
	eng, err := turing.New(m, turing.WithLogger(r.Logger), turing.WithMaxSteps(r.MaxSteps))
	if err != nil {
		return err
	}

	p := r.ask()
	for {
		inputs, err := r.PromptInput(m.Tracks)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := r.RunOnce(ctx, eng, inputs...); err != nil {
			if !errors.Is(err, domain.ErrStepLimit) {
				return err
			}
		}

		again, err := p.Confirm("Parse another string? (Y/N) ")
		if errors.Is(err, io.EOF) || (err == nil && !again) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// RunOnce runs the engine on the given tracks, rendering every configuration
// followed by the verdict. A run cut short by the step limit or the context
// is reported as a failure together with the error.
func (r *Runner) RunOnce(ctx context.Context, eng *turing.Engine, tracks ...string) (*domain.Result, error) {
	p := r.ask()
	tracksN := eng.Machine().Tracks

	p.Println()
	p.Println("parsing...")

	seq, err := eng.Run(tracks...)
	if err != nil {
		return nil, err
	}

	var (
		last domain.Snapshot
		stop error
	)
	for snap := range seq {
		last = snap
		p.Println(r.Renderer(snap, tracksN))
		if err := ctx.Err(); err != nil && !snap.Halted() {
			stop = err
			break
		}
		if r.MaxSteps > 0 && snap.Step >= r.MaxSteps && !snap.Halted() {
			stop = fmt.Errorf("after %d steps: %w", snap.Step, domain.ErrStepLimit)
			break
		}
	}

	res := &domain.Result{
		Accepted:   stop == nil && eng.Machine().Accepts(last.State),
		FinalState: last.State,
		Steps:      last.Step,
		Cells:      last.Cells,
		Head:       last.Head,
	}
	if stop != nil {
		p.Printf("Error: %v\n", stop)
	}
	p.Println(r.Verdict(res.Accepted))
	r.Logger.Info("run finished", "accepted", res.Accepted, "state", res.FinalState, "steps", res.Steps)
	return res, stop
}

func (r *Runner) alias() string {
	if r.Alias == "" {
		return domain.DefaultBlankAlias
	}
	return r.Alias
}

func hint(candidate string, known []string) string {
	if s, ok := Suggest(candidate, known); ok {
		return fmt.Sprintf(" (did you mean %s?)", s)
	}
	return ""
}
