package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
)

// extensions are tried in order when loading; Save always writes the first.
var extensions = []string{".yaml", ".yml", ".json"}

// Store implements ports.MachineStore using the local filesystem.
// It stores machines as definition files in a configured directory.
type Store struct {
	BasePath string
	opts     []definition.Option
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".turing/machines".
func New(basePath string, opts ...definition.Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".turing", "machines")
	}
	return &Store{BasePath: basePath, opts: opts}
}

// Save writes the machine as YAML atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, m *domain.Machine) error {
	if err := domain.CheckName(m.Name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure machine directory: %w", err)
	}

	data, err := definition.Encode(m, definition.YAML, s.opts...)
	if err != nil {
		return err
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+m.Name+"-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Drop other spellings so Load does not pick a stale one.
	for _, ext := range extensions[1:] {
		if err := os.Remove(s.path(m.Name, ext)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove stale definition: %w", err)
		}
	}

	dest := s.path(m.Name, extensions[0])
	if _, err := os.Stat(dest); err == nil {
		// On Windows, os.Rename fails if dest exists.
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to remove existing definition for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file to definition: %w", err)
	}
	return nil
}

// Load decodes the machine's definition file.
func (s *Store) Load(ctx context.Context, name string) (*domain.Machine, error) {
	if err := domain.CheckName(name); err != nil {
		return nil, err
	}

	for _, ext := range extensions {
		path := s.path(name, ext)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat definition: %w", err)
		}

		m, err := definition.LoadFile(path, s.opts...)
		if err != nil {
			return nil, err
		}
		m.Name = name
		return m, nil
	}
	return nil, domain.ErrMachineNotFound
}

// Delete removes every definition file of the machine.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := domain.CheckName(name); err != nil {
		return err
	}

	for _, ext := range extensions {
		err := os.Remove(s.path(name, ext))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete definition: %w", err)
		}
	}
	return nil
}

// List returns the names of all definition files, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !slices.Contains(extensions, ext) || strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *Store) path(name, ext string) string {
	return filepath.Join(s.BasePath, name+ext)
}
