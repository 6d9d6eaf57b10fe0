package csv_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/adapters/csv"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

const translatorCSV = `lhs_state,input,rhs_state,replacement,direction
q0,a,q0,b,R
q0,b,q0,b,r
q0,□,q1,□,L
`

func TestLoader_Table(t *testing.T) {
	table, err := csv.NewLoader(strings.NewReader(translatorCSV)).Table(1)
	require.NoError(t, err)

	require.Len(t, table, 3)
	assert.Equal(t, domain.Transition{From: "q0", Read: "b", To: "q0", Write: "b", Move: domain.Right}, table[1])
	assert.True(t, table[2].Read.IsBlank())
}

func TestLoader_HeaderFirst(t *testing.T) {
	l := csv.NewLoader(strings.NewReader("state,input,next,write,dir\nq0,a,q0,b,R\n"))

	err := l.CheckHeader()
	assert.ErrorIs(t, err, domain.ErrInvalidHeader)

	_, err = l.Table(1)
	assert.ErrorIs(t, err, domain.ErrInvalidHeader)

	_, err = csv.NewLoader(strings.NewReader("")).Table(1)
	assert.ErrorIs(t, err, domain.ErrInvalidHeader)
}

func TestLoader_AbortsOnFirstBadRow(t *testing.T) {
	tests := []struct {
		name  string
		rows  string
		index int
		want  error
	}{
		{"Symbol Width", "q0,ab,q0,b,R\n", 0, domain.ErrSymbolWidth},
		{"Long Direction", "q0,a,q0,b,R\nq0,b,q0,b,RL\n", 1, domain.ErrDirectionLength},
		{"Bad Direction", "q0,a,q0,b,X\n", 0, domain.ErrDirectionLetter},
		{"Missing Field", "q0,a,q0,b\n", 0, domain.ErrMalformedTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := csv.NewLoader(strings.NewReader(strings.Join(csv.Header, ",") + "\n" + tt.rows)).Table(1)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, tt.want)

			var entry *schema.EntryError
			require.True(t, errors.As(err, &entry))
			assert.Equal(t, tt.index, entry.Index)
		})
	}
}

func TestLoader_MultiTrack(t *testing.T) {
	data := "lhs_state,input,rhs_state,replacement,direction\nq0,ab,q0,11,R\nq0,□□,q1,□□,L\n"
	table, err := csv.NewLoader(strings.NewReader(data)).Table(2)
	require.NoError(t, err)
	assert.Len(t, table, 2)
	assert.True(t, table[1].Read.IsBlank())
}

func TestLoader_FieldsAreVerbatim(t *testing.T) {
	t.Run("Alias Word Is A Symbol", func(t *testing.T) {
		data := "lhs_state,input,rhs_state,replacement,direction\nq0,blank,q1,blank,R\n"
		table, err := csv.NewLoader(strings.NewReader(data)).Table(5)
		require.NoError(t, err)
		require.Len(t, table, 1)
		assert.Equal(t, domain.Symbol("blank"), table[0].Read)
		assert.Equal(t, domain.Symbol("blank"), table[0].Write)
	})

	t.Run("Explicit Alias", func(t *testing.T) {
		data := "lhs_state,input,rhs_state,replacement,direction\nq0,blankblank,q1,blankblank,L\n"
		table, err := csv.NewLoader(strings.NewReader(data), csv.WithBlankAlias("blank")).Table(2)
		require.NoError(t, err)
		require.Len(t, table, 1)
		assert.Equal(t, domain.Symbol("□□"), table[0].Read)

		_, err = csv.NewLoader(strings.NewReader(data)).Table(2)
		assert.ErrorIs(t, err, domain.ErrSymbolWidth)
	})

	t.Run("Space Symbol", func(t *testing.T) {
		data := "lhs_state,input,rhs_state,replacement,direction\nq0, ,q1,x,R\n"
		table, err := csv.NewLoader(strings.NewReader(data)).Table(1)
		require.NoError(t, err)
		require.Len(t, table, 1)
		assert.Equal(t, domain.Symbol(" "), table[0].Read)
	})

	t.Run("Hash Is Not A Comment", func(t *testing.T) {
		data := "lhs_state,input,rhs_state,replacement,direction\n#s,a,q1,b,R\n"
		table, err := csv.NewLoader(strings.NewReader(data)).Table(1)
		require.NoError(t, err)
		require.Len(t, table, 1)
		assert.Equal(t, "#s", table[0].From)
	})
}

func TestWrite_RoundTrip(t *testing.T) {
	table, err := csv.NewLoader(strings.NewReader(translatorCSV)).Table(1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, csv.Write(&buf, table))

	back, err := csv.NewLoader(&buf).Table(1)
	require.NoError(t, err)
	assert.Equal(t, table, back)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translator.csv")
	require.NoError(t, os.WriteFile(path, []byte(translatorCSV), 0644))

	table, err := csv.LoadFile(path, 1)
	require.NoError(t, err)
	assert.Len(t, table, 3)

	_, err = csv.LoadFile(filepath.Join(t.TempDir(), "missing.csv"), 1)
	assert.Error(t, err)
}
