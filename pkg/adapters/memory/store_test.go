package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunMachineStoreContract(t, store)
}

func TestMemoryStore_Seed(t *testing.T) {
	seed := &domain.Machine{
		Name:   "noop",
		Tracks: 1,
		Table:  domain.Table{{From: "q0", Read: "a", To: "q0", Write: "a", Move: domain.Right}},
		States: domain.KeyStates{Initial: "q0"},
	}
	store := memory.NewStore(seed, &domain.Machine{Name: ""})

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"noop"}, names)

	// Mutating the loaded copy leaves the store untouched.
	m, err := store.Load(context.Background(), "noop")
	require.NoError(t, err)
	m.Table[0].Write = "b"

	again, err := store.Load(context.Background(), "noop")
	require.NoError(t, err)
	assert.Equal(t, domain.Symbol("a"), again.Table[0].Write)
}
