package dsl

import "github.com/aretw0/turing/pkg/schema"

// TransitionBuilder provides a fluent API for configuring one transition.
// Symbols may spell the blank cell with the builder's blank alias.
type TransitionBuilder struct {
	raw     schema.RawTransition
	builder *Builder
}

// Read sets the symbol the transition matches.
func (t *TransitionBuilder) Read(symbol string) *TransitionBuilder {
	t.raw.Read = symbol
	return t
}

// Write sets the symbol written before moving.
func (t *TransitionBuilder) Write(symbol string) *TransitionBuilder {
	t.raw.Write = symbol
	return t
}

// Left moves the head one cell left after writing.
func (t *TransitionBuilder) Left() *TransitionBuilder {
	t.raw.Move = "L"
	return t
}

// Right moves the head one cell right after writing.
func (t *TransitionBuilder) Right() *TransitionBuilder {
	t.raw.Move = "R"
	return t
}

// Go completes the transition with its target state and adds it to the machine.
// A transition without a Write keeps the symbol it read.
func (t *TransitionBuilder) Go(target string) *Builder {
	t.raw.To = target
	if t.raw.Write == "" {
		t.raw.Write = t.raw.Read
	}
	t.builder.entries = append(t.builder.entries, entry{raw: t.raw})
	return t.builder
}

// Stay completes the transition in the state it leaves.
func (t *TransitionBuilder) Stay() *Builder {
	return t.Go(t.raw.From)
}
