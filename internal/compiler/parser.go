package compiler

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

// transitionShape matches (state,symbol)=(state,symbol,direction) once whitespace is removed.
var transitionShape = regexp.MustCompile(`^\(([^(),=]+),([^(),=]+)\)=\(([^(),=]+),([^(),=]+),([^(),=]+)\)$`)

// Parser is responsible for converting free-text transitions into raw entries.
type Parser struct {
	alias string
}

// NewParser creates a new parser. An empty alias falls back to domain.DefaultBlankAlias.
func NewParser(alias string) *Parser {
	if alias == "" {
		alias = domain.DefaultBlankAlias
	}
	return &Parser{alias: alias}
}

// Parse reads one transition written as δ(q0,a)=(q1,b,R).
// The leading δ is optional and whitespace is ignored. Symbols may spell the
// blank cell with the configured alias.
func (p *Parser) Parse(line string) (schema.RawTransition, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	compact = strings.TrimPrefix(compact, "δ")

	m := transitionShape.FindStringSubmatch(compact)
	if m == nil {
		return schema.RawTransition{}, fmt.Errorf("%q: %w", strings.TrimSpace(line), domain.ErrMalformedTransition)
	}

	return schema.RawTransition{
		From:  m[1],
		Read:  p.substitute(m[2]),
		To:    m[3],
		Write: p.substitute(m[4]),
		Move:  m[5],
	}, nil
}

// ParseTable reads one transition per line, skipping blank lines and # comments.
// Entries that fail to parse or validate are reported and skipped.
func (p *Parser) ParseTable(text string, tracks int) (domain.Table, []error) {
	table := domain.Table{}
	var errs []error

	scanner := bufio.NewScanner(strings.NewReader(text))
	index := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		raw, err := p.Parse(line)
		if err == nil {
			var tr domain.Transition
			if tr, err = schema.ValidateEntry(raw, tracks); err == nil {
				table = append(table, tr)
			}
		}
		if err != nil {
			errs = append(errs, &schema.EntryError{Index: index, Entry: raw, Err: err})
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return table, errs
}

func (p *Parser) substitute(symbol string) string {
	return strings.ReplaceAll(symbol, p.alias, domain.Blank)
}

// Normalize rewrites the blank alias in the symbols of an entry that did not
// come through Parse, such as the map form of a definition file.
func (p *Parser) Normalize(raw schema.RawTransition) schema.RawTransition {
	raw.Read = p.substitute(strings.TrimSpace(raw.Read))
	raw.Write = p.substitute(strings.TrimSpace(raw.Write))
	raw.From = strings.TrimSpace(raw.From)
	raw.To = strings.TrimSpace(raw.To)
	raw.Move = strings.TrimSpace(raw.Move)
	return raw
}
