package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		raw     schema.RawTransition
		tracks  int
		wantErr error
		wantKey string
	}{
		{
			name:   "Single Track",
			raw:    schema.RawTransition{From: "q0", Read: "a", To: "q1", Write: "b", Move: "R"},
			tracks: 1,
		},
		{
			name:   "Lowercase Direction",
			raw:    schema.RawTransition{From: "q0", Read: "ab", To: "q1", Write: "ba", Move: "l"},
			tracks: 2,
		},
		{
			name:   "Blank Sentinel",
			raw:    schema.RawTransition{From: "q0", Read: "□□□", To: "q1", Write: "□□□", Move: "L"},
			tracks: 3,
		},
		{
			name:    "Input Too Wide",
			raw:     schema.RawTransition{From: "q0", Read: "ab", To: "q1", Write: "b", Move: "R"},
			tracks:  1,
			wantErr: domain.ErrSymbolWidth,
			wantKey: "input",
		},
		{
			name:    "Replacement Too Narrow",
			raw:     schema.RawTransition{From: "q0", Read: "ab", To: "q1", Write: "b", Move: "R"},
			tracks:  2,
			wantErr: domain.ErrSymbolWidth,
			wantKey: "replacement",
		},
		{
			name:    "Direction Letter",
			raw:     schema.RawTransition{From: "q0", Read: "a", To: "q1", Write: "b", Move: "U"},
			tracks:  1,
			wantErr: domain.ErrDirectionLetter,
			wantKey: "direction",
		},
		{
			name:    "Direction Length",
			raw:     schema.RawTransition{From: "q0", Read: "a", To: "q1", Write: "b", Move: "Right"},
			tracks:  1,
			wantErr: domain.ErrDirectionLength,
			wantKey: "direction",
		},
		{
			name:    "Empty State",
			raw:     schema.RawTransition{From: "", Read: "a", To: "q1", Write: "b", Move: "R"},
			tracks:  1,
			wantErr: domain.ErrEmptyState,
			wantKey: "lhs_state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := schema.ValidateEntry(tt.raw, tt.tracks)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.raw.From, tr.From)
				assert.Equal(t, domain.Symbol(tt.raw.Write), tr.Write)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			errs := schema.ValidationErrors(err)
			require.Len(t, errs, 1)
			var fieldErr *schema.ValidationError
			require.ErrorAs(t, errs[0], &fieldErr)
			assert.Equal(t, tt.wantKey, fieldErr.Key)
		})
	}
}

func TestValidateEntry_Idempotent(t *testing.T) {
	raws := []schema.RawTransition{
		{From: "q0", Read: "a", To: "q1", Write: "b", Move: "r"},
		{From: "q1", Read: "□□", To: "q2", Write: "x□", Move: "L"},
	}

	for _, raw := range raws {
		tracks := domain.Symbol(raw.Read).Width()
		first, err := schema.ValidateEntry(raw, tracks)
		require.NoError(t, err)

		second, err := schema.ValidateEntry(schema.Raw(first), tracks)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestBuildTable(t *testing.T) {
	raws := []schema.RawTransition{
		{From: "q0", Read: "a", To: "q0", Write: "b", Move: "R"},
		{From: "q0", Read: "aa", To: "q0", Write: "b", Move: "R"},
		{From: "q0", Read: "b", To: "q0", Write: "b", Move: "X"},
		{From: "q0", Read: "□", To: "q1", Write: "□", Move: "L"},
	}

	table, errs := schema.BuildTable(raws, 1)

	require.Len(t, table, 2)
	assert.Equal(t, domain.Symbol("a"), table[0].Read)
	assert.Equal(t, "q1", table[1].To)

	require.Len(t, errs, 2)
	var entryErr *schema.EntryError
	require.ErrorAs(t, errs[0], &entryErr)
	assert.Equal(t, 1, entryErr.Index)
	assert.ErrorIs(t, errs[0], domain.ErrSymbolWidth)
	assert.ErrorIs(t, errs[1], domain.ErrDirectionLetter)
}

func TestAggregateError(t *testing.T) {
	single := &schema.AggregateError{Errors: []error{domain.ErrSymbolWidth}}
	assert.Equal(t, domain.ErrSymbolWidth.Error(), single.Error())

	multi := &schema.AggregateError{Errors: []error{domain.ErrSymbolWidth, domain.ErrInvalidState}}
	assert.Contains(t, multi.Error(), "2 validation errors")
	assert.ErrorIs(t, multi, domain.ErrInvalidState)
	assert.Nil(t, schema.ValidationErrors(domain.ErrSymbolWidth))
}
