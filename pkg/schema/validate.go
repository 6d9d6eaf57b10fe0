package schema

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// RawTransition is an unvalidated transition as produced by a loader.
// Field tags follow the CSV header lhs_state,input,rhs_state,replacement,direction.
type RawTransition struct {
	From  string `json:"lhs_state" yaml:"lhs_state" mapstructure:"lhs_state"`
	Read  string `json:"input" yaml:"input" mapstructure:"input"`
	To    string `json:"rhs_state" yaml:"rhs_state" mapstructure:"rhs_state"`
	Write string `json:"replacement" yaml:"replacement" mapstructure:"replacement"`
	Move  string `json:"direction" yaml:"direction" mapstructure:"direction"`
}

func (r RawTransition) String() string {
	return fmt.Sprintf("(%s,%s)=(%s,%s,%s)", r.From, r.Read, r.To, r.Write, r.Move)
}

// Raw converts a validated transition back into its raw form.
func Raw(t domain.Transition) RawTransition {
	return RawTransition{
		From:  t.From,
		Read:  string(t.Read),
		To:    t.To,
		Write: string(t.Write),
		Move:  t.Move.String(),
	}
}

// ValidateEntry checks a single raw transition for a machine with the given track count.
// All field problems are reported together in an *AggregateError.
func ValidateEntry(raw RawTransition, tracks int) (domain.Transition, error) {
	if tracks <= 0 {
		return domain.Transition{}, fmt.Errorf("%d: %w", tracks, domain.ErrInvalidTracks)
	}

	var errs []error
	check := func(key, value string, cause error) {
		errs = append(errs, &ValidationError{Key: key, Reason: cause, Value: value})
	}

	if raw.From == "" {
		check("lhs_state", raw.From, domain.ErrEmptyState)
	}
	if raw.To == "" {
		check("rhs_state", raw.To, domain.ErrEmptyState)
	}

	read, write := domain.Symbol(raw.Read), domain.Symbol(raw.Write)
	if !read.FitsTracks(tracks) {
		check("input", raw.Read, domain.ErrSymbolWidth)
	}
	if !write.FitsTracks(tracks) {
		check("replacement", raw.Write, domain.ErrSymbolWidth)
	}

	move, err := domain.ParseDirection(raw.Move)
	if err != nil {
		check("direction", raw.Move, err)
	}

	if len(errs) > 0 {
		return domain.Transition{}, &AggregateError{Errors: errs}
	}

	return domain.Transition{
		From:  raw.From,
		Read:  read,
		To:    raw.To,
		Write: write,
		Move:  move,
	}, nil
}

// BuildTable validates every entry and keeps the valid ones in order.
// Invalid entries are skipped and reported as *EntryError values.
func BuildTable(raws []RawTransition, tracks int) (domain.Table, []error) {
	table := make(domain.Table, 0, len(raws))
	var errs []error

	for i, raw := range raws {
		tr, err := ValidateEntry(raw, tracks)
		if err != nil {
			errs = append(errs, &EntryError{Index: i, Entry: raw, Err: err})
			continue
		}
		table = append(table, tr)
	}

	return table, errs
}
