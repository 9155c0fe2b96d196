package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/fundreport/internal/model"
)

func codes(codes ...string) []model.LedgerLine {
	lines := make([]model.LedgerLine, len(codes))
	for i, c := range codes {
		lines[i] = model.LedgerLine{Row: i + 2, AccountCode: c}
	}
	return lines
}

func parentCodes(lines []model.LedgerLine) []string {
	var out []string
	for _, l := range lines {
		if l.IsParent {
			out = append(out, l.AccountCode)
		}
	}
	return out
}

func TestMarkParents(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  []string
	}{
		{"nested", []string{"1", "1.1", "1.1.1", "1.2"}, []string{"1", "1.1"}},
		{"unsorted", []string{"1.1.1", "1.2", "1", "1.1"}, []string{"1", "1.1"}},
		{"gap in levels", []string{"1", "1.1.1"}, []string{"1"}},
		{"prefix without delimiter", []string{"1", "10", "11.2"}, nil},
		{"flat", []string{"1", "2", "3"}, nil},
		{"duplicates", []string{"1.1", "1.1"}, nil},
		{"missing codes", []string{"", "1", ""}, nil},
		{"whitespace", []string{" 2 ", "2.1"}, []string{" 2 "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkParents(codes(tt.codes...), ".")
			assert.Equal(t, tt.want, parentCodes(got))
		})
	}
}

func TestMarkParents_DoesNotMutateInput(t *testing.T) {
	in := codes("1", "1.1")
	out := MarkParents(in, ".")
	assert.False(t, in[0].IsParent)
	assert.True(t, out[0].IsParent)
}

func TestMarkParents_CustomDelimiter(t *testing.T) {
	got := MarkParents(codes("1", "1-01", "1-01-001"), "-")
	assert.Equal(t, []string{"1", "1-01"}, parentCodes(got))

	got = MarkParents(codes("1", "1.1"), "")
	assert.Equal(t, []string{"1"}, parentCodes(got), "empty delimiter falls back to the default")
}
