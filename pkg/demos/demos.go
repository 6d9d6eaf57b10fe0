package demos

import (
	"embed"
	"fmt"
	"path"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
)

//go:embed machines/*.yaml
var files embed.FS

// Demo is a bundled machine together with an input it handles well.
type Demo struct {
	Index   int
	Summary string
	Example []string
	Machine *domain.Machine
}

var catalog = []struct {
	file    string
	summary string
	example []string
}{
	{"translator.yaml", "translates every 'a' to 'b'", []string{"aab"}},
	{"anbn.yaml", "accepts strings in form of a(n)b(n)", []string{"aabb"}},
	{"copier.yaml", "copies strings of '1'", []string{"111"}},
	{"matcher.yaml", "checks two tracks of 'a' & 'b' and finds where tracks match", []string{"abab", "aaba"}},
	{"multiplication.yaml", "a turing machine for multiplication (e.g. input: 11*11)", []string{"11*11"}},
}

// All decodes every bundled demo, in index order.
func All() ([]Demo, error) {
	out := make([]Demo, 0, len(catalog))
	for i := range catalog {
		d, err := Get(i)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Get decodes the demo at index.
func Get(index int) (Demo, error) {
	if index < 0 || index >= len(catalog) {
		return Demo{}, fmt.Errorf("demo index %d out of bounds (0-%d)", index, len(catalog)-1)
	}
	entry := catalog[index]

	data, err := files.ReadFile(path.Join("machines", entry.file))
	if err != nil {
		return Demo{}, err
	}
	m, err := definition.Decode(data, definition.YAML)
	if err != nil {
		return Demo{}, fmt.Errorf("demo %s: %w", entry.file, err)
	}

	return Demo{
		Index:   index,
		Summary: entry.summary,
		Example: entry.example,
		Machine: m,
	}, nil
}

// Machines returns the machines of All, for seeding stores.
func Machines() ([]*domain.Machine, error) {
	all, err := All()
	if err != nil {
		return nil, err
	}
	ms := make([]*domain.Machine, len(all))
	for i, d := range all {
		ms[i] = d.Machine
	}
	return ms, nil
}

// Count returns the number of bundled demos.
func Count() int {
	return len(catalog)
}
