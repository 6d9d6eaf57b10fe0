package dsl

import (
	"fmt"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

// Builder manages the machine construction.
type Builder struct {
	name        string
	description string
	tracks      int
	initial     string
	final       []string
	parser      *compiler.Parser
	entries     []entry
}

type entry struct {
	raw schema.RawTransition
	err error
}

// New creates a new single-track machine builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		tracks: 1,
		parser: compiler.NewParser(""),
	}
}

// Tracks sets the number of tracks.
func (b *Builder) Tracks(n int) *Builder {
	b.tracks = n
	return b
}

// Describe sets the human readable description.
func (b *Builder) Describe(text string) *Builder {
	b.description = text
	return b
}

// BlankAlias sets the word accepted instead of the blank rune in symbols.
func (b *Builder) BlankAlias(alias string) *Builder {
	b.parser = compiler.NewParser(alias)
	return b
}

// Start sets the initial state.
func (b *Builder) Start(state string) *Builder {
	b.initial = state
	return b
}

// Accept adds final states.
func (b *Builder) Accept(states ...string) *Builder {
	b.final = append(b.final, states...)
	return b
}

// From starts a transition leaving the given state.
// Transitions keep the order in which they are completed with Go.
func (b *Builder) From(state string) *TransitionBuilder {
	return &TransitionBuilder{
		raw:     schema.RawTransition{From: state},
		builder: b,
	}
}

// Line adds a transition written as δ(q0,a)=(q1,b,R).
// Parse errors are reported by Build.
func (b *Builder) Line(text string) *Builder {
	raw, err := b.parser.Parse(text)
	b.entries = append(b.entries, entry{raw: raw, err: err})
	return b
}

// Build validates every transition and the key states and compiles the machine.
// All problems are reported together in a *schema.AggregateError.
func (b *Builder) Build() (*domain.Machine, error) {
	if b.tracks <= 0 {
		return nil, fmt.Errorf("tracks %d: %w", b.tracks, domain.ErrInvalidTracks)
	}

	table := make(domain.Table, 0, len(b.entries))
	var errs []error
	for i, e := range b.entries {
		raw, err := e.raw, e.err
		if err == nil {
			raw = b.parser.Normalize(raw)
			var tr domain.Transition
			if tr, err = schema.ValidateEntry(raw, b.tracks); err == nil {
				table = append(table, tr)
				continue
			}
		}
		errs = append(errs, &schema.EntryError{Index: i, Entry: raw, Err: err})
	}
	if len(errs) > 0 {
		return nil, &schema.AggregateError{Errors: errs}
	}

	m := &domain.Machine{
		Name:        b.name,
		Description: b.description,
		Tracks:      b.tracks,
		Table:       table,
		States:      domain.KeyStates{Initial: b.initial, Final: b.final},
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build machine %q: %w", b.name, err)
	}
	return m, nil
}

// MustBuild is like Build but panics on error. It is meant for tests and
// package-level fixtures.
func (b *Builder) MustBuild() *domain.Machine {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
