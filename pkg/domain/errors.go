package domain

import (
	"errors"
	"fmt"
)

// ErrMachineNotFound is returned when a machine name cannot be found in the store.
var ErrMachineNotFound = errors.New("machine not found")

// ErrSymbolWidth is returned when a symbol is neither exactly one rune per track nor the blank sentinel.
var ErrSymbolWidth = errors.New("symbol length does not match number of tracks")

// ErrDirectionLength is returned when a direction token is more (or less) than a single character.
var ErrDirectionLength = errors.New("direction is not a single character")

// ErrDirectionLetter is returned when a single-character direction is neither L nor R.
var ErrDirectionLetter = errors.New("direction is not L or R")

// ErrMalformedTransition is returned when free-text input does not have the shape (q,s)=(q,s,d).
var ErrMalformedTransition = errors.New("malformed transition")

// ErrEmptyState is returned when a transition names an empty state.
var ErrEmptyState = errors.New("state cannot be empty")

// ErrInvalidState is returned when a state is not referenced by any transition.
var ErrInvalidState = errors.New("state is not used by any transition")

// ErrInvalidTracks is returned when the track count is not a positive integer.
var ErrInvalidTracks = errors.New("number of tracks must be positive")

// ErrNoTracks is returned when symbol composition receives no track strings.
var ErrNoTracks = errors.New("no tracks given")

// ErrTrackLengthMismatch is returned when track strings have different lengths.
var ErrTrackLengthMismatch = errors.New("tracks must have the same length")

// ErrStepLimit is returned when a run exceeds its configured step budget.
var ErrStepLimit = errors.New("step limit reached")

// TrackLengthError describes which track broke the equal-length precondition.
type TrackLengthError struct {
	Track    int // zero-based index of the offending track
	Length   int
	Expected int
}

func (e *TrackLengthError) Error() string {
	return fmt.Sprintf("track %d has length %d, expected %d: %v", e.Track+1, e.Length, e.Expected, ErrTrackLengthMismatch)
}

func (e *TrackLengthError) Unwrap() error {
	return ErrTrackLengthMismatch
}

// ErrTrackCount is returned when the number of track inputs differs from the machine's track count.
var ErrTrackCount = errors.New("number of track inputs does not match the machine")

// ErrInvalidHeader is returned when a CSV file does not start with the expected header row.
var ErrInvalidHeader = errors.New("invalid CSV header")

// ErrMachineName is returned when a machine without a usable name is stored.
var ErrMachineName = errors.New("machine name is empty or invalid")
