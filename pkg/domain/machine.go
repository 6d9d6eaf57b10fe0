package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// KeyStates holds the entry point and the accepting states of a machine.
type KeyStates struct {
	Initial string   `json:"initial" yaml:"initial"`
	Final   []string `json:"final" yaml:"final"`
}

// Machine aggregates a transition table, its key states and the track count.
// A Machine is treated as immutable once built and may be shared read-only
// across sequential runs.
type Machine struct {
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Tracks      int       `json:"tracks" yaml:"tracks"`
	Table       Table     `json:"transitions" yaml:"transitions"`
	States      KeyStates `json:"states" yaml:"states"`
}

// Validate reports every structural problem of the machine at once.
// A nil result means the machine can be executed.
func (m *Machine) Validate() error {
	if m.Tracks <= 0 {
		return fmt.Errorf("%d: %w", m.Tracks, ErrInvalidTracks)
	}

	var errs []error
	for i, tr := range m.Table {
		if tr.From == "" || tr.To == "" {
			errs = append(errs, fmt.Errorf("transition %d %s: %w", i+1, tr, ErrEmptyState))
		}
		if !tr.Read.FitsTracks(m.Tracks) || !tr.Write.FitsTracks(m.Tracks) {
			errs = append(errs, fmt.Errorf("transition %d %s: %w", i+1, tr, ErrSymbolWidth))
		}
	}

	if !m.Table.HasState(m.States.Initial) {
		errs = append(errs, fmt.Errorf("initial state %q: %w", m.States.Initial, ErrInvalidState))
	}
	for _, f := range m.States.Final {
		if !m.Table.HasState(f) {
			errs = append(errs, fmt.Errorf("final state %q: %w", f, ErrInvalidState))
		}
	}

	return errors.Join(errs...)
}

// Accepts reports whether the machine accepts when halting in state.
func (m *Machine) Accepts(state string) bool {
	return Accepts(state, m.States.Final)
}

// Accepts reports whether state is one of the final states.
func Accepts(state string, finals []string) bool {
	return slices.Contains(finals, state)
}

// FilterStates splits candidates into the ones known to the table and the rest.
// Duplicates in the valid set are dropped.
func FilterStates(candidates []string, table Table) (valid, rejected []string) {
	for _, c := range candidates {
		if !table.HasState(c) {
			rejected = append(rejected, c)
			continue
		}
		if !slices.Contains(valid, c) {
			valid = append(valid, c)
		}
	}
	return valid, rejected
}

// Clone returns a deep copy of the machine.
func (m *Machine) Clone() *Machine {
	c := *m
	c.Table = slices.Clone(m.Table)
	c.States.Final = slices.Clone(m.States.Final)
	return &c
}

// CheckName reports whether name can key a machine in a store.
// Names must be non-empty and must not contain path separators.
func CheckName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q: %w", name, ErrMachineName)
	}
	return nil
}
