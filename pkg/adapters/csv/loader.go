package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

// Header is the only accepted first row of a transition file.
var Header = []string{"lhs_state", "input", "rhs_state", "replacement", "direction"}

// Loader reads a transition table from CSV.
// The header is checked before the track count is known, so callers can
// reject a bad file before asking the user anything.
// Fields are taken verbatim: no trimming, no comment lines.
type Loader struct {
	r         *csv.Reader
	alias     string
	headerErr error
	checked   bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithBlankAlias makes the loader read alias as the blank cell in the input
// and replacement columns. Without it symbols are used as written.
func WithBlankAlias(alias string) LoaderOption {
	return func(l *Loader) {
		l.alias = alias
	}
}

// NewLoader wraps r. Nothing is read until CheckHeader or Table is called.
func NewLoader(r io.Reader, opts ...LoaderOption) *Loader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	l := &Loader{r: cr}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CheckHeader reads the first row and returns domain.ErrInvalidHeader unless
// it is exactly Header.
func (l *Loader) CheckHeader() error {
	if l.checked {
		return l.headerErr
	}
	l.checked = true

	row, err := l.r.Read()
	switch {
	case errors.Is(err, io.EOF):
		l.headerErr = fmt.Errorf("empty file: %w", domain.ErrInvalidHeader)
	case err != nil:
		l.headerErr = fmt.Errorf("failed to read header: %w", err)
	case !slices.Equal(row, Header):
		l.headerErr = fmt.Errorf("got %q, want %q: %w",
			strings.Join(row, ","), strings.Join(Header, ","), domain.ErrInvalidHeader)
	}
	return l.headerErr
}

// Table reads every remaining row. The first invalid row aborts the load with
// a *schema.EntryError and no table is returned.
func (l *Loader) Table(tracks int) (domain.Table, error) {
	if err := l.CheckHeader(); err != nil {
		return nil, err
	}
	if tracks <= 0 {
		return nil, fmt.Errorf("%d: %w", tracks, domain.ErrInvalidTracks)
	}

	table := domain.Table{}
	for index := 0; ; index++ {
		row, err := l.r.Read()
		if errors.Is(err, io.EOF) {
			return table, nil
		}
		if err != nil {
			return nil, &schema.EntryError{Index: index, Err: err}
		}
		if len(row) != len(Header) {
			return nil, &schema.EntryError{
				Index: index,
				Err:   fmt.Errorf("%d fields, want %d: %w", len(row), len(Header), domain.ErrMalformedTransition),
			}
		}

		raw := schema.RawTransition{
			From:  row[0],
			Read:  l.symbol(row[1]),
			To:    row[2],
			Write: l.symbol(row[3]),
			Move:  row[4],
		}
		tr, err := schema.ValidateEntry(raw, tracks)
		if err != nil {
			return nil, &schema.EntryError{Index: index, Entry: raw, Err: err}
		}
		table = append(table, tr)
	}
}

// LoadFile reads a transition table from a CSV file.
func LoadFile(path string, tracks int, opts ...LoaderOption) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transitions: %w", err)
	}
	defer f.Close()

	return NewLoader(f, opts...).Table(tracks)
}

// Write exports a table with the standard header.
func Write(w io.Writer, table domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, tr := range table {
		raw := schema.Raw(tr)
		if err := cw.Write([]string{raw.From, raw.Read, raw.To, raw.Write, raw.Move}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (l *Loader) symbol(field string) string {
	if l.alias == "" {
		return field
	}
	return strings.ReplaceAll(field, l.alias, domain.Blank)
}
