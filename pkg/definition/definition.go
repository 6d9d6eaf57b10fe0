package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

// Format selects the serialization of a definition file.
type Format int

const (
	YAML Format = iota
	JSON
)

// FormatFromPath picks JSON for .json files and YAML for everything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Document is the on-disk shape of a machine definition.
// Each transition is either a free-text string such as "(q0,a)=(q1,b,R)" or
// a map keyed like a CSV header row.
type Document struct {
	Name        string   `yaml:"name,omitempty" json:"name,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Tracks      int      `yaml:"tracks" json:"tracks"`
	Initial     string   `yaml:"initial" json:"initial"`
	Final       []string `yaml:"final" json:"final"`
	Transitions []any    `yaml:"transitions" json:"transitions"`
}

type options struct {
	alias string
}

// Option configures decoding.
type Option func(*options)

// WithBlankAlias sets the word that spells the blank cell in transitions.
func WithBlankAlias(alias string) Option {
	return func(o *options) {
		o.alias = alias
	}
}

// LoadFile reads and decodes a definition file. The format follows the extension.
func LoadFile(path string, opts ...Option) (*domain.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	m, err := Decode(data, FormatFromPath(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// Decode parses a definition. It is all-or-nothing: every bad entry and key
// state is collected into a *schema.AggregateError and no machine is returned.
func Decode(data []byte, format Format, opts ...Option) (*domain.Machine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	if doc.Tracks <= 0 {
		return nil, fmt.Errorf("tracks %d: %w", doc.Tracks, domain.ErrInvalidTracks)
	}

	parser := compiler.NewParser(o.alias)
	table := make(domain.Table, 0, len(doc.Transitions))
	var errs []error

	for i, item := range doc.Transitions {
		raw, err := rawEntry(parser, item)
		if err == nil {
			var tr domain.Transition
			if tr, err = schema.ValidateEntry(raw, doc.Tracks); err == nil {
				table = append(table, tr)
				continue
			}
		}
		errs = append(errs, &schema.EntryError{Index: i, Entry: raw, Err: err})
	}

	// Key states are only meaningful against a complete table.
	if len(errs) == 0 {
		if !table.HasState(doc.Initial) {
			errs = append(errs, &schema.ValidationError{Key: "initial", Reason: domain.ErrInvalidState, Value: doc.Initial})
		}
		if _, rejected := domain.FilterStates(doc.Final, table); len(rejected) > 0 {
			for _, f := range rejected {
				errs = append(errs, &schema.ValidationError{Key: "final", Reason: domain.ErrInvalidState, Value: f})
			}
		}
	}

	if len(errs) > 0 {
		return nil, &schema.AggregateError{Errors: errs}
	}

	return &domain.Machine{
		Name:        doc.Name,
		Description: doc.Description,
		Tracks:      doc.Tracks,
		Table:       table,
		States:      domain.KeyStates{Initial: doc.Initial, Final: doc.Final},
	}, nil
}

// Encode writes the machine in canonical form: free-text transitions, falling
// back to the map form when a field cannot be written that way. Pass the same
// WithBlankAlias option used for decoding.
func Encode(m *domain.Machine, format Format, opts ...Option) ([]byte, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	alias := o.alias
	if alias == "" {
		alias = domain.DefaultBlankAlias
	}

	doc := Document{
		Name:        m.Name,
		Description: m.Description,
		Tracks:      m.Tracks,
		Initial:     m.States.Initial,
		Final:       m.States.Final,
		Transitions: make([]any, 0, len(m.Table)),
	}
	if doc.Final == nil {
		doc.Final = []string{}
	}
	for _, tr := range m.Table {
		raw := schema.Raw(tr)
		if freeText(raw, alias) {
			doc.Transitions = append(doc.Transitions, raw.String())
		} else {
			doc.Transitions = append(doc.Transitions, raw)
		}
	}

	if format == JSON {
		return json.MarshalIndent(doc, "", "  ")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshal(data []byte, format Format) (*Document, error) {
	var doc Document
	if format == JSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse definition: %w", err)
		}
		return &doc, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty definition")
		}
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	return &doc, nil
}

func rawEntry(parser *compiler.Parser, item any) (schema.RawTransition, error) {
	switch v := item.(type) {
	case string:
		return parser.Parse(v)
	case map[string]any:
		var raw schema.RawTransition
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &raw,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return raw, err
		}
		if err := dec.Decode(v); err != nil {
			return raw, fmt.Errorf("%v: %w", err, domain.ErrMalformedTransition)
		}
		return parser.Normalize(raw), nil
	default:
		return schema.RawTransition{}, fmt.Errorf("unsupported entry %v: %w", item, domain.ErrMalformedTransition)
	}
}

// freeText reports whether the entry survives a round trip through a parser
// using alias.
func freeText(raw schema.RawTransition, alias string) bool {
	for _, f := range []string{raw.From, raw.Read, raw.To, raw.Write, raw.Move} {
		if strings.ContainsAny(f, "(),=# \t") || strings.Contains(f, alias) {
			return false
		}
	}
	return true
}
