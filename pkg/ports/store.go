package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// MachineStore defines the interface for a library of named machines.
// Machines are keyed by their Name.
type MachineStore interface {
	// Save persists the machine under m.Name, replacing any previous version.
	Save(ctx context.Context, m *domain.Machine) error

	// Load retrieves a machine by name.
	// Returns domain.ErrMachineNotFound if the machine does not exist.
	Load(ctx context.Context, name string) (*domain.Machine, error)

	// Delete removes a machine. Deleting a missing machine is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored machines in ascending order.
	List(ctx context.Context) ([]string, error)
}
