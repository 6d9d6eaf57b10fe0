package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
)

func TestRenderSnapshot(t *testing.T) {
	tui.DisableColor()

	snap := domain.Snapshot{
		Step:  2,
		State: "q0",
		Cells: []domain.Symbol{"□□", "ab", "cd", "□□"},
		Head:  2,
		Matched: &domain.Transition{
			From: "q0", Read: "cd", To: "q1", Write: "dc", Move: domain.Left,
		},
	}

	out := tui.RenderSnapshot(snap, 2)

	assert.Equal(t, 1, strings.Count(out, "▼"))
	assert.Equal(t, 1, strings.Count(out, "HEAD"))
	assert.Equal(t, 2, strings.Count(out, "TAPE"))
	assert.Contains(t, out, "Current state: q0")
	assert.Contains(t, out, "Current input: 'cd', Head position: 2")
	assert.Contains(t, out, "Transition function: δ(q0,cd)=(q1,dc,L)")
}

func TestRenderSnapshot_Halted(t *testing.T) {
	tui.DisableColor()

	snap := domain.Snapshot{State: "q1", Cells: []domain.Symbol{"□", "b", "□"}, Head: 0}
	out := tui.RenderSnapshot(snap, 1)

	assert.Contains(t, out, "Current state: q1")
	assert.NotContains(t, out, "Transition function")
}

func TestVerdict(t *testing.T) {
	assert.Contains(t, tui.Verdict(true), "Success")
	assert.Contains(t, tui.Verdict(false), "Failure")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "Turing machine simulator")
}

func TestMachineMarkdown(t *testing.T) {
	m := &domain.Machine{
		Name:        "translator",
		Description: "Translates every a to b",
		Tracks:      1,
		Table: domain.Table{
			{From: "q0", Read: "a", To: "q0", Write: "b", Move: domain.Right},
			{From: "q0", Read: "□", To: "q1", Write: "□", Move: domain.Left},
		},
		States: domain.KeyStates{Initial: "q0", Final: []string{"q1"}},
	}

	md := tui.MachineMarkdown(m)
	assert.Contains(t, md, "# translator")
	assert.Contains(t, md, "- **Initial state:** `q0`")
	assert.Contains(t, md, "- **Final states:** `q1`")
	assert.Contains(t, md, "| 1 | q0 | a | q0 | b | R |")
	assert.Contains(t, md, "| 2 | q0 | □ | q1 | □ | L |")

	rendered, err := tui.DescribeMachine(m)
	require.NoError(t, err)
	assert.Contains(t, rendered, "translator")
}
