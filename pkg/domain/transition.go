package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Direction is the head movement applied after a write.
type Direction int

const (
	Left Direction = iota
	Right
)

// ParseDirection normalizes a direction token (case-insensitive "L" or "R").
// It reports ErrDirectionLength for tokens that are not a single character
// and ErrDirectionLetter for any other single character.
func ParseDirection(token string) (Direction, error) {
	if utf8.RuneCountInString(token) != 1 {
		return 0, fmt.Errorf("%q: %w", token, ErrDirectionLength)
	}
	switch strings.ToUpper(token) {
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	}
	return 0, fmt.Errorf("%q: %w", token, ErrDirectionLetter)
}

func (d Direction) String() string {
	if d == Left {
		return "L"
	}
	return "R"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Transition is one entry of the transition function:
// δ(From, Read) = (To, Write, Move).
type Transition struct {
	From  string    `json:"lhs_state" yaml:"lhs_state"`
	Read  Symbol    `json:"input" yaml:"input"`
	To    string    `json:"rhs_state" yaml:"rhs_state"`
	Write Symbol    `json:"replacement" yaml:"replacement"`
	Move  Direction `json:"direction" yaml:"direction"`
}

func (t Transition) String() string {
	return fmt.Sprintf("δ(%s,%s)=(%s,%s,%s)", t.From, t.Read, t.To, t.Write, t.Move)
}

// Table is the ordered list of transitions of a machine.
// Order matters: Lookup returns the first match.
type Table []Transition

// Lookup finds the first transition for (state, symbol) in table order.
func (t Table) Lookup(state string, symbol Symbol) (Transition, bool) {
	for _, tr := range t {
		if tr.From == state && tr.Read == symbol {
			return tr, true
		}
	}
	return Transition{}, false
}

// HasState reports whether state appears on either side of any transition.
// This is the validator for initial and final states.
func (t Table) HasState(state string) bool {
	for _, tr := range t {
		if tr.From == state || tr.To == state {
			return true
		}
	}
	return false
}

// States lists every state in order of first appearance.
func (t Table) States() []string {
	seen := make(map[string]bool)
	var states []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}
	for _, tr := range t {
		add(tr.From)
		add(tr.To)
	}
	return states
}

// Alphabet lists every symbol read or written, in order of first appearance.
func (t Table) Alphabet() []Symbol {
	seen := make(map[Symbol]bool)
	var symbols []Symbol
	add := func(s Symbol) {
		if !seen[s] {
			seen[s] = true
			symbols = append(symbols, s)
		}
	}
	for _, tr := range t {
		add(tr.Read)
		add(tr.Write)
	}
	return symbols
}
