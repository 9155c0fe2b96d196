package accounts

import (
	"strings"

	"github.com/cleared-dev/fundreport/internal/model"
)

// DefaultDelimiter separates the levels of an account code.
const DefaultDelimiter = "."

// MarkParents returns a copy of lines with IsParent set on every line whose
// code has at least one descendant among the other lines. Lines without a
// code are never parents and never children. Input order is irrelevant.
func MarkParents(lines []model.LedgerLine, delimiter string) []model.LedgerLine {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	// Every proper prefix of a code, cut at a delimiter, names an ancestor.
	// A line is a parent iff its code is one of those prefixes.
	ancestors := make(map[string]struct{})
	for _, l := range lines {
		code := strings.TrimSpace(l.AccountCode)
		if code == "" {
			continue
		}
		for i := 1; i < len(code); i++ {
			if strings.HasPrefix(code[i:], delimiter) {
				ancestors[code[:i]] = struct{}{}
			}
		}
	}

	out := make([]model.LedgerLine, len(lines))
	for i, l := range lines {
		out[i] = l
		code := strings.TrimSpace(l.AccountCode)
		_, isParent := ancestors[code]
		out[i].IsParent = code != "" && isParent
	}
	return out
}
