package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/aretw0/turing/pkg/domain"
)

// DefaultBucket holds the machines unless WithBucket says otherwise.
const DefaultBucket = "machines"

// Store implements ports.MachineStore on a single Bolt file.
// Machines are JSON values keyed by name, so cursor order is name order.
type Store struct {
	filename string
	bucket   []byte
	timeout  time.Duration
	db       *bbolt.DB
}

type Option func(*Store)

// WithBucket sets the bucket name.
func WithBucket(name string) Option {
	return func(s *Store) {
		s.bucket = []byte(name)
	}
}

// WithTimeout bounds how long Open waits for the file lock.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// Open opens (or creates) the database file and its bucket.
func Open(filename string, opts ...Option) (*Store, error) {
	s := &Store{
		filename: filename,
		bucket:   []byte(DefaultBucket),
		timeout:  time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := bbolt.Open(s.filename, 0644, &bbolt.Options{Timeout: s.timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt file %s: %w", filename, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	s.db = db
	return s, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the machine.
func (s *Store) Save(ctx context.Context, m *domain.Machine) error {
	if err := domain.CheckName(m.Name); err != nil {
		return err
	}
	js, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal machine: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(m.Name), js)
	})
}

// Load retrieves the machine.
func (s *Store) Load(ctx context.Context, name string) (*domain.Machine, error) {
	var m *domain.Machine
	err := s.db.View(func(tx *bbolt.Tx) error {
		bs := tx.Bucket(s.bucket).Get([]byte(name))
		if bs == nil {
			return domain.ErrMachineNotFound
		}
		// bs is only valid inside the transaction.
		m = &domain.Machine{}
		return json.Unmarshal(bs, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the machine.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(name))
	})
}

// List returns the machine names in key order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
