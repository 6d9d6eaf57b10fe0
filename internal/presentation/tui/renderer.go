package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/turing/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// MachineMarkdown describes a machine as a markdown document with its
// transition table.
func MachineMarkdown(m *domain.Machine) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", m.Name)
	if m.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", m.Description)
	}

	fmt.Fprintf(&sb, "- **Tracks:** %d\n", m.Tracks)
	fmt.Fprintf(&sb, "- **Initial state:** `%s`\n", m.States.Initial)
	if len(m.States.Final) == 0 {
		sb.WriteString("- **Final states:** none\n")
	} else {
		fmt.Fprintf(&sb, "- **Final states:** `%s`\n", strings.Join(m.States.Final, "`, `"))
	}
	fmt.Fprintf(&sb, "- **States:** %d, **Transitions:** %d\n\n", len(m.Table.States()), len(m.Table))

	sb.WriteString("| # | State | Read | Next | Write | Move |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for i, tr := range m.Table {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s |\n",
			i+1, escapeCell(tr.From), escapeCell(string(tr.Read)), escapeCell(tr.To), escapeCell(string(tr.Write)), tr.Move)
	}

	return sb.String()
}

// DescribeMachine renders MachineMarkdown for the terminal.
func DescribeMachine(m *domain.Machine) (string, error) {
	return NewRenderer()(MachineMarkdown(m))
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
