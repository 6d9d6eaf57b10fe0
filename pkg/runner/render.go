package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// SnapshotRenderer draws one configuration of a run.
type SnapshotRenderer func(snap domain.Snapshot, tracks int) string

// VerdictRenderer draws the outcome of a run.
type VerdictRenderer func(accepted bool) string

// PlainRenderer draws a configuration without colors or box drawing: a HEAD
// row marking the head cell, one TAPE row per track, then the current state,
// the symbol under the head and the transition about to apply.
func PlainRenderer(snap domain.Snapshot, tracks int) string {
	var b strings.Builder

	b.WriteString("HEAD |")
	for i := range snap.Cells {
		mark := " "
		if i == snap.Head {
			mark = "▼"
		}
		fmt.Fprintf(&b, " %s |", mark)
	}
	b.WriteString("\n")

	for t := 0; t < tracks; t++ {
		b.WriteString("TAPE |")
		for _, cell := range snap.Cells {
			fmt.Fprintf(&b, " %c |", cell.Track(t))
		}
		b.WriteString("\n")
	}

	b.WriteString(Caption(snap))
	return b.String()
}

// Caption describes a configuration in words.
func Caption(snap domain.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current state: %s\n", snap.State)
	fmt.Fprintf(&b, "Current input: '%s', Head position: %d\n", snap.Symbol(), snap.Head)
	if snap.Matched != nil {
		fmt.Fprintf(&b, "Transition function: %s\n", snap.Matched)
	}
	return b.String()
}

// PlainVerdict prints Success or Failure.
func PlainVerdict(accepted bool) string {
	if accepted {
		return "Success"
	}
	return "Failure"
}
