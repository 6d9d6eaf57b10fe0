package domain

import (
	"strings"
	"unicode/utf8"
)

// BlankRune is the reserved placeholder for an empty cell on a single track.
const BlankRune = '□'

// Blank is BlankRune as a string, handy for substitutions.
const Blank = string(BlankRune)

// DefaultBlankAlias is the word free-text input may use instead of Blank.
const DefaultBlankAlias = "blank"

// Symbol is the content of one tape cell: one rune per track, in track order.
type Symbol string

// BlankSymbol returns the all-blank sentinel for the given track count.
func BlankSymbol(tracks int) Symbol {
	if tracks <= 0 {
		return ""
	}
	return Symbol(strings.Repeat(Blank, tracks))
}

// Width returns the number of tracks the symbol spans.
func (s Symbol) Width() int {
	return utf8.RuneCountInString(string(s))
}

// IsBlank reports whether every track of the symbol is blank.
func (s Symbol) IsBlank() bool {
	if s == "" {
		return false
	}
	for _, r := range string(s) {
		if r != BlankRune {
			return false
		}
	}
	return true
}

// Track returns the rune stored on track i, or BlankRune when out of range.
func (s Symbol) Track(i int) rune {
	rs := []rune(string(s))
	if i < 0 || i >= len(rs) {
		return BlankRune
	}
	return rs[i]
}

// FitsTracks reports whether the symbol may appear on a machine with the given track count.
// The blank sentinel is accepted however it was spelled before alias substitution.
func (s Symbol) FitsTracks(tracks int) bool {
	return s == BlankSymbol(tracks) || s.Width() == tracks
}

// ComposeSymbols interleaves per-track strings into a sequence of Symbols.
// Position p of the result concatenates rune p of every track, in track order.
// All tracks must have the same rune length; a *TrackLengthError is returned otherwise.
func ComposeSymbols(tracks []string) ([]Symbol, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}

	runes := make([][]rune, len(tracks))
	for i, t := range tracks {
		runes[i] = []rune(t)
	}

	length := len(runes[0])
	for i := 1; i < len(runes); i++ {
		if len(runes[i]) != length {
			return nil, &TrackLengthError{Track: i, Length: len(runes[i]), Expected: length}
		}
	}

	symbols := make([]Symbol, length)
	var sb strings.Builder
	for p := 0; p < length; p++ {
		sb.Reset()
		for _, r := range runes {
			sb.WriteRune(r[p])
		}
		symbols[p] = Symbol(sb.String())
	}
	return symbols, nil
}

// DecomposeSymbols splits a Symbol sequence back into per-track strings.
// It is the inverse of ComposeSymbols.
func DecomposeSymbols(symbols []Symbol, tracks int) []string {
	if tracks <= 0 {
		return nil
	}

	builders := make([]strings.Builder, tracks)
	for _, s := range symbols {
		for i := 0; i < tracks; i++ {
			builders[i].WriteRune(s.Track(i))
		}
	}

	out := make([]string, tracks)
	for i := range builders {
		out[i] = builders[i].String()
	}
	return out
}

// TrimBlanks strips blank symbols from both ends of a cell sequence.
func TrimBlanks(cells []Symbol) []Symbol {
	start, end := 0, len(cells)
	for start < end && cells[start].IsBlank() {
		start++
	}
	for end > start && cells[end-1].IsBlank() {
		end--
	}
	return cells[start:end]
}

// JoinSymbols concatenates symbols, which for a single track reads as the tape content.
func JoinSymbols(cells []Symbol) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteString(string(c))
	}
	return sb.String()
}
