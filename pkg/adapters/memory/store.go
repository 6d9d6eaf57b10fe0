package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Store implements ports.MachineStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Machine
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with machines.
// Seed machines without a usable name are skipped.
func NewStore(seed ...*domain.Machine) *Store {
	s := &Store{
		data: make(map[string]*domain.Machine),
	}
	for _, m := range seed {
		if domain.CheckName(m.Name) == nil {
			s.data[m.Name] = m.Clone()
		}
	}
	return s
}

// Save persists a copy of the machine in memory.
func (s *Store) Save(ctx context.Context, m *domain.Machine) error {
	if err := domain.CheckName(m.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[m.Name] = m.Clone()
	return nil
}

// Load retrieves a copy of the machine so callers can't mutate the store by pointer.
func (s *Store) Load(ctx context.Context, name string) (*domain.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.data[name]
	if !ok {
		return nil, domain.ErrMachineNotFound
	}
	return m.Clone(), nil
}

// Delete removes the machine.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored machine names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
