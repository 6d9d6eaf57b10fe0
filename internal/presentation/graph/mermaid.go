package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromTrace marks every state a run went through and the one it ended in.
func OverlayFromTrace(trace []domain.Snapshot) *GraphOverlay {
	if len(trace) == 0 {
		return nil
	}
	overlay := &GraphOverlay{CurrentState: trace[len(trace)-1].State}
	for _, snap := range trace {
		overlay.VisitedStates = append(overlay.VisitedStates, snap.State)
	}
	return overlay
}

// GenerateMermaid produces a Mermaid state diagram of the transition table.
// The initial state is entered from [*], final states lead to [*] and every
// edge is labelled read/write,move. Transitions sharing both ends are merged
// into one edge. Overlay styles (visited/current) are applied if provided.
func GenerateMermaid(m *domain.Machine, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	for _, state := range m.Table.States() {
		if id := sanitizeMermaidID(state); id != state {
			fmt.Fprintf(&sb, "    state \"%s\" as %s\n", escapeLabel(state), id)
		}
	}

	if m.States.Initial != "" {
		fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(m.States.Initial))
	}

	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)
	for _, tr := range m.Table {
		e := edge{tr.From, tr.To}
		if _, seen := labels[e]; !seen {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%s/%s,%s", tr.Read, tr.Write, tr.Move))
	}
	for _, e := range order {
		fmt.Fprintf(&sb, "    %s --> %s : %s\n",
			sanitizeMermaidID(e.from), sanitizeMermaidID(e.to), escapeLabel(strings.Join(labels[e], "<br/>")))
	}

	for _, final := range m.States.Final {
		fmt.Fprintf(&sb, "    %s --> [*]\n", sanitizeMermaidID(final))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		visitedSet := make(map[string]bool)
		for _, state := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(state)
			if !visitedSet[safeID] && safeID != "" && state != overlay.CurrentState {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited\n", safeID)
			}
		}

		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, id)
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, ":", "#58;")
}
