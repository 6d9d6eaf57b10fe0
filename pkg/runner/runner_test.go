package runner_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

func script(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestInteractive_Translator(t *testing.T) {
	var out bytes.Buffer
	in := script(
		"1",
		"(q0,a)=(q0,b,R)",
		"δ(q0, b) = (q0, b, R)",
		"(q0,blank)=(q1,blank,L)",
		"END",
		"q0",
		"q1",
		"END",
		"aab",
		"N",
	)
	r := runner.NewRunner(runner.WithIO(in, &out))

	require.NoError(t, r.Interactive(context.Background()))

	text := out.String()
	assert.Contains(t, text, "parsing...")
	assert.Contains(t, text, "Current state: q1")
	assert.Contains(t, text, "Transition function: δ(q0,a)=(q0,b,R)")
	assert.Contains(t, text, "Success")
	assert.NotContains(t, text, "Error")
}

func TestInteractive_EndsOnEOF(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(runner.WithIO(script("1", "(q0,a)=(q0,b,R)"), &out))

	assert.NoError(t, r.Interactive(context.Background()))
}

func TestPromptTracks(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(runner.WithIO(script("zero", "0", "-3", "2"), &out))

	n, err := r.PromptTracks()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, strings.Count(out.String(), domain.ErrInvalidTracks.Error()))
}

func TestPromptTransitions(t *testing.T) {
	var out bytes.Buffer
	in := script(
		"END",
		"(q0,ab)=(q1,b,R)",
		"q0,a -> q1",
		"(q0,a)=(q1,b,X)",
		"",
		"(q0,a)=(q1,blank,R)",
		"end",
	)
	r := runner.NewRunner(runner.WithIO(in, &out))

	table, err := r.PromptTransitions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, domain.Symbol("□"), table[0].Write)

	text := out.String()
	assert.Contains(t, text, "at least one function is required")
	assert.Equal(t, 3, strings.Count(text, "(function was not added)"))
	assert.Contains(t, text, domain.ErrSymbolWidth.Error())
	assert.Contains(t, text, domain.ErrMalformedTransition.Error())
	assert.Contains(t, text, domain.ErrDirectionLetter.Error())
	assert.Contains(t, text, "*you can use 'blank' instead of □")
}

func TestPromptTransitions_CustomAlias(t *testing.T) {
	var out bytes.Buffer
	in := script("(q0,_)=(q1,_,L)", "END")
	r := runner.NewRunner(runner.WithIO(in, &out), runner.WithBlankAlias("_"))

	table, err := r.PromptTransitions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, domain.Symbol("□"), table[0].Read)
	assert.Contains(t, out.String(), "*you can use '_' instead of □")
}

func TestPromptKeyStates(t *testing.T) {
	var out bytes.Buffer
	in := script("q9", "q0", "q7", "q1", "q1", "END")
	r := runner.NewRunner(runner.WithIO(in, &out))

	states, err := r.PromptKeyStates(testutils.Translator().Table)
	require.NoError(t, err)
	assert.Equal(t, "q0", states.Initial)
	assert.Equal(t, []string{"q1"}, states.Final)

	text := out.String()
	assert.Contains(t, text, `"q9": state is not used by any transition (did you mean q0?)`)
	assert.Contains(t, text, `"q7"`)
}

func TestPromptKeyStates_NoFinals(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(runner.WithIO(script("q0", "END"), &out))

	states, err := r.PromptKeyStates(testutils.Translator().Table)
	require.NoError(t, err)
	assert.Empty(t, states.Final)
}

func TestPromptInput_ReprompsOnLengthMismatch(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(runner.WithIO(script("aa", "a", "ab", "ba"), &out))

	inputs, err := r.PromptInput(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "ba"}, inputs)
	assert.Contains(t, out.String(), "tracks must have the same length")
	assert.Equal(t, 2, strings.Count(out.String(), "Tape (Track 2): "))
}

func TestSession_Reuse(t *testing.T) {
	var out bytes.Buffer
	in := script("aab", "y", "c", "n")
	r := runner.NewRunner(runner.WithIO(in, &out))

	require.NoError(t, r.Session(context.Background(), testutils.Translator()))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "parsing..."))
	assert.Equal(t, 1, strings.Count(text, "Success"))
	assert.Equal(t, 1, strings.Count(text, "Failure"))
}

func TestRunOnce_StepLimit(t *testing.T) {
	loop := &domain.Machine{
		Name:   "loop",
		Tracks: 1,
		Table: domain.Table{
			{From: "q0", Read: "a", To: "q0", Write: "a", Move: domain.Right},
			{From: "q0", Read: "□", To: "q0", Write: "□", Move: domain.Left},
		},
		States: domain.KeyStates{Initial: "q0", Final: []string{"q0"}},
	}
	eng, err := turing.New(loop)
	require.NoError(t, err)

	var out bytes.Buffer
	r := runner.NewRunner(runner.WithIO(strings.NewReader(""), &out), runner.WithMaxSteps(5))

	res, err := r.RunOnce(context.Background(), eng, "a")
	assert.ErrorIs(t, err, domain.ErrStepLimit)
	require.NotNil(t, res)
	assert.False(t, res.Accepted)
	assert.Equal(t, 5, res.Steps)
	assert.Contains(t, out.String(), "Failure")
}

func TestRunOnce_CustomRenderers(t *testing.T) {
	eng, err := turing.New(testutils.Translator())
	require.NoError(t, err)

	var out bytes.Buffer
	r := runner.NewRunner(
		runner.WithIO(strings.NewReader(""), &out),
		runner.WithRenderer(func(snap domain.Snapshot, tracks int) string {
			return "step " + snap.State
		}),
		runner.WithVerdict(func(accepted bool) string {
			if accepted {
				return "ACCEPT"
			}
			return "REJECT"
		}),
	)

	res, err := r.RunOnce(context.Background(), eng, "ab")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 4, strings.Count(out.String(), "step "))
	assert.Contains(t, out.String(), "ACCEPT")
}

func TestPlainRenderer(t *testing.T) {
	snap := domain.Snapshot{
		Step:  1,
		State: "q0",
		Cells: []domain.Symbol{"□□", "ab", "□□"},
		Head:  1,
		Matched: &domain.Transition{
			From: "q0", Read: "ab", To: "q1", Write: "ba", Move: domain.Right,
		},
	}

	got := runner.PlainRenderer(snap, 2)
	assert.Equal(t, strings.Join([]string{
		"HEAD |   | ▼ |   |",
		"TAPE | □ | a | □ |",
		"TAPE | □ | b | □ |",
		"Current state: q0",
		"Current input: 'ab', Head position: 1",
		"Transition function: δ(q0,ab)=(q1,ba,R)",
		"",
	}, "\n"), got)
}

func TestSuggest(t *testing.T) {
	states := []string{"start", "scan", "done"}

	s, ok := runner.Suggest("stat", states)
	assert.True(t, ok)
	assert.Equal(t, "start", s)

	_, ok = runner.Suggest("q0", states)
	assert.False(t, ok)
}
