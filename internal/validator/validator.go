package validator

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/domain"
)

// Severity ranks a finding.
type Severity string

const (
	// Warning marks something that makes the machine behave unlike it reads.
	Warning Severity = "warning"
	// Info marks dead weight that does not change any run.
	Info Severity = "info"
)

// Finding is one problem reported by Lint.
type Finding struct {
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Severity, f.Message)
}

// Lint inspects a valid machine for problems that validation accepts:
// transitions shadowed by an earlier one with the same state and symbol,
// states the initial state can never reach, and final states that are
// unreachable or have outgoing transitions.
func Lint(m *domain.Machine) []Finding {
	var findings []Finding

	type key struct {
		state  string
		symbol domain.Symbol
	}
	first := make(map[key]int)
	for i, tr := range m.Table {
		k := key{tr.From, tr.Read}
		if j, ok := first[k]; ok {
			findings = append(findings, Finding{
				Severity: Warning,
				Message:  fmt.Sprintf("transition %d %s never applies: transition %d matches first", i+1, tr, j+1),
			})
			continue
		}
		first[k] = i
	}

	reachable := Reachable(m.Table, m.States.Initial)
	for _, state := range m.Table.States() {
		if reachable[state] {
			continue
		}
		if slices.Contains(m.States.Final, state) {
			findings = append(findings, Finding{
				Severity: Warning,
				Message:  fmt.Sprintf("final state %q is unreachable from %q: the machine never accepts there", state, m.States.Initial),
			})
			continue
		}
		findings = append(findings, Finding{
			Severity: Info,
			Message:  fmt.Sprintf("state %q is unreachable from %q", state, m.States.Initial),
		})
	}

	for _, final := range m.States.Final {
		if slices.ContainsFunc(m.Table, func(tr domain.Transition) bool { return tr.From == final }) {
			findings = append(findings, Finding{
				Severity: Info,
				Message:  fmt.Sprintf("final state %q has outgoing transitions: runs passing through it only accept if they halt there", final),
			})
		}
	}

	return findings
}

// Reachable crawls the table from start and returns every state it can enter.
func Reachable(table domain.Table, start string) map[string]bool {
	visited := make(map[string]bool)
	if !table.HasState(start) {
		return visited
	}

	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, tr := range table {
			if tr.From == current && !visited[tr.To] {
				queue = append(queue, tr.To)
			}
		}
	}
	return visited
}
