package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/demos"
	"github.com/aretw0/turing/pkg/domain"
)

func TestLint_Demos(t *testing.T) {
	all, err := demos.All()
	require.NoError(t, err)

	for _, d := range all {
		t.Run(d.Machine.Name, func(t *testing.T) {
			for _, f := range validator.Lint(d.Machine) {
				assert.NotEqual(t, validator.Warning, f.Severity, f.String())
			}
		})
	}
}

func TestLint(t *testing.T) {
	m := &domain.Machine{
		Tracks: 1,
		Table: domain.Table{
			{From: "q0", Read: "a", To: "q1", Write: "a", Move: domain.Right},
			{From: "q0", Read: "a", To: "q0", Write: "b", Move: domain.Right},
			{From: "q1", Read: "a", To: "q1", Write: "a", Move: domain.Right},
			{From: "q5", Read: "a", To: "q6", Write: "a", Move: domain.Right},
		},
		States: domain.KeyStates{Initial: "q0", Final: []string{"q1", "q6"}},
	}

	findings := validator.Lint(m)
	require.Len(t, findings, 4)

	assert.Equal(t, validator.Warning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "transition 2 δ(q0,a)=(q0,b,R) never applies: transition 1 matches first")

	assert.Equal(t, validator.Info, findings[1].Severity)
	assert.Contains(t, findings[1].Message, `state "q5" is unreachable`)

	assert.Equal(t, validator.Warning, findings[2].Severity)
	assert.Contains(t, findings[2].Message, `final state "q6" is unreachable`)

	assert.Equal(t, validator.Info, findings[3].Severity)
	assert.Contains(t, findings[3].Message, `final state "q1" has outgoing transitions`)
}

func TestReachable(t *testing.T) {
	table := domain.Table{
		{From: "q0", Read: "a", To: "q1", Write: "a", Move: domain.Right},
		{From: "q1", Read: "a", To: "q2", Write: "a", Move: domain.Right},
		{From: "q3", Read: "a", To: "q0", Write: "a", Move: domain.Right},
	}

	assert.Equal(t, map[string]bool{"q0": true, "q1": true, "q2": true}, validator.Reachable(table, "q0"))
	assert.Empty(t, validator.Reachable(table, "nope"))
}
