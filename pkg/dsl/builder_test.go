package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/schema"
)

func TestBuilder_Translator(t *testing.T) {
	m, err := dsl.New("translator").
		Describe("a to b").
		Start("q0").
		Accept("q1").
		From("q0").Read("a").Write("b").Right().Stay().
		From("q0").Read("b").Right().Stay().
		From("q0").Read("blank").Left().Go("q1").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "translator", m.Name)
	assert.Equal(t, "a to b", m.Description)
	assert.Equal(t, 1, m.Tracks)
	require.Len(t, m.Table, 3)
	assert.Equal(t, domain.Transition{From: "q0", Read: "b", To: "q0", Write: "b", Move: domain.Right}, m.Table[1])
	assert.Equal(t, domain.Transition{From: "q0", Read: "□", To: "q1", Write: "□", Move: domain.Left}, m.Table[2])

	eng, err := turing.New(m)
	require.NoError(t, err)
	res, err := eng.Execute(context.Background(), "aab")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, []string{"bbb"}, res.Output(1))
}

func TestBuilder_LinesAndTracks(t *testing.T) {
	m, err := dsl.New("swap").
		Tracks(2).
		BlankAlias("_").
		Line("δ(q0,ab)=(q0,ba,R)").
		Line("(q0,__)=(q1,__,L)").
		Start("q0").
		Accept("q1").
		Build()
	require.NoError(t, err)
	require.Len(t, m.Table, 2)
	assert.Equal(t, domain.Symbol("□□"), m.Table[1].Read)
}

func TestBuilder_Errors(t *testing.T) {
	_, err := dsl.New("bad").
		Line("not a transition").
		From("q0").Read("ab").Right().Go("q1").
		From("q0").Read("a").Go("q1").
		Start("q0").
		Build()
	require.Error(t, err)

	problems := schema.ValidationErrors(err)
	require.Len(t, problems, 3)

	var entry *schema.EntryError
	require.ErrorAs(t, problems[0], &entry)
	assert.Equal(t, 0, entry.Index)
	assert.ErrorIs(t, problems[0], domain.ErrMalformedTransition)
	assert.ErrorIs(t, problems[1], domain.ErrSymbolWidth)
	assert.ErrorIs(t, problems[2], domain.ErrDirectionLength)
}

func TestBuilder_KeyStates(t *testing.T) {
	_, err := dsl.New("ghost").
		From("q0").Read("a").Right().Stay().
		Start("q9").
		Build()
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = dsl.New("none").Tracks(0).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidTracks)

	assert.Panics(t, func() {
		dsl.New("ghost").Start("q0").MustBuild()
	})
}
