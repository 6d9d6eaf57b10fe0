package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
)

// RunMachineStoreContract runs a suite of tests to verify that a MachineStore implementation
// adheres to the defined interface contract.
func RunMachineStoreContract(t *testing.T, store MachineStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	sample := func(name string) *domain.Machine {
		return &domain.Machine{
			Name:        name,
			Description: "rewrites a to b",
			Tracks:      2,
			Table: domain.Table{
				{From: "q0", Read: "a□", To: "q0", Write: "b□", Move: domain.Right},
				{From: "q0", Read: "□□", To: "q1", Write: "□□", Move: domain.Left},
			},
			States: domain.KeyStates{Initial: "q0", Final: []string{"q1"}},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		m := sample(name)
		require.NoError(t, store.Save(ctx, m), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, m.Name, loaded.Name)
		assert.Equal(t, m.Description, loaded.Description)
		assert.Equal(t, m.Tracks, loaded.Tracks)
		assert.Equal(t, m.Table, loaded.Table)
		assert.Equal(t, m.States, loaded.States)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		m := sample(name)
		m.States.Final = []string{"q0"}
		require.NoError(t, store.Save(ctx, m))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, []string{"q0"}, loaded.States.Final)
	})

	t.Run("Save Requires Name", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, sample("")))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(name)))

		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound, "Load after Delete should return ErrMachineNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-b"
		id2 := name + "-a"
		require.NoError(t, store.Save(ctx, sample(id1)))
		require.NoError(t, store.Save(ctx, sample(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names)
	})
}
