package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tbl := New("cotistas", [][]any{
		{nil, ""},
		{" Data ", "Patrimônio", "Cotistas"},
		{"01/03/2024", 1000.5, 10},
		{"", nil, " "},
		{"02/03/2024", "1.100,00"},
	})

	assert.Equal(t, []string{"Data", "Patrimônio", "Cotistas"}, tbl.Headers)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, 3, tbl.Rows[0].Number)
	assert.Equal(t, 5, tbl.Rows[1].Number)

	v, ok := tbl.Value(tbl.Rows[1], "Patrimônio")
	require.True(t, ok)
	assert.Equal(t, "1.100,00", v)

	v, ok = tbl.Value(tbl.Rows[1], "Cotistas")
	assert.True(t, ok, "short rows are padded")
	assert.Nil(t, v)

	_, ok = tbl.Value(tbl.Rows[0], "Resgate")
	assert.False(t, ok)
}

func TestNew_Empty(t *testing.T) {
	tbl := New("vazio", nil)
	assert.Zero(t, tbl.Len())
	assert.Empty(t, tbl.Headers)
	_, ok := tbl.Value(Row{}, "Data")
	assert.False(t, ok)

	var nilTable *Table
	assert.Zero(t, nilTable.Len())
}

func TestNew_DuplicateHeaderFirstWins(t *testing.T) {
	tbl := FromStrings("b", [][]string{
		{"Saldo", "Saldo"},
		{"1", "2"},
	})
	v, _ := tbl.Value(tbl.Rows[0], "Saldo")
	assert.Equal(t, "1", v)
}

func TestString(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "abc", String("abc"))
	assert.Equal(t, "1234.5", String(1234.5))
	assert.Equal(t, "42", String(42))
	assert.Equal(t, "2024-03-01", String(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDate(t *testing.T) {
	want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		ok   bool
	}{
		{"day first", "01/03/2024", true},
		{"day first short", "1/3/2024", true},
		{"day first with time", "01/03/2024 00:00:00", true},
		{"dashes", "01-03-2024", true},
		{"iso", "2024-03-01", true},
		{"time value", want, true},
		{"excel serial", 45352.0, true},
		{"excel serial text", "45352", true},
		{"empty", "", false},
		{"garbage", "março", false},
		{"zero time", time.Time{}, false},
		{"out of range serial", -3.0, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, want.Equal(got), "got %s", got)
			}
		})
	}
}
