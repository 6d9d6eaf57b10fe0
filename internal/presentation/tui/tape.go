package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	headStyle  = cellStyle.Foreground(lipgloss.Color("#f9e2af")).Bold(true)
	stateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
)

// DisableColor forces plain output for every renderer of this package.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// RenderSnapshot draws one configuration as a bordered table: a HEAD row with
// ▼ over the head cell and one TAPE row per track, followed by the caption.
func RenderSnapshot(snap domain.Snapshot, tracks int) string {
	rows := make([][]string, 0, tracks+1)

	head := make([]string, 0, len(snap.Cells)+1)
	head = append(head, "HEAD")
	for i := range snap.Cells {
		mark := ""
		if i == snap.Head {
			mark = "▼"
		}
		head = append(head, mark)
	}
	rows = append(rows, head)

	for t := 0; t < tracks; t++ {
		row := make([]string, 0, len(snap.Cells)+1)
		row = append(row, "TAPE")
		for _, cell := range snap.Cells {
			row = append(row, string(cell.Track(t)))
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case col == 0:
				return labelStyle
			case col-1 == snap.Head:
				return headStyle
			default:
				return cellStyle
			}
		})

	var sb strings.Builder
	sb.WriteString(tbl.String())
	sb.WriteString("\n")
	sb.WriteString(caption(snap))
	return sb.String()
}

func caption(snap domain.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current state: %s\n", stateStyle.Render(snap.State))
	fmt.Fprintf(&sb, "Current input: '%s', Head position: %d\n", snap.Symbol(), snap.Head)
	if snap.Matched != nil {
		fmt.Fprintf(&sb, "Transition function: %s\n", snap.Matched)
	}
	return sb.String()
}

// Verdict prints a green Success or a red Failure.
func Verdict(accepted bool) string {
	p := lipgloss.ColorProfile()
	if accepted {
		return p.String("Success").Foreground(p.Color("#22c55e")).Bold().String()
	}
	return p.String("Failure").Foreground(p.Color("#ef4444")).Bold().String()
}

var (
	_ runner.SnapshotRenderer = RenderSnapshot
	_ runner.VerdictRenderer  = Verdict
)
