package report

import (
	"errors"
	"fmt"

	"github.com/schollz/closestmatch"

	"github.com/cleared-dev/fundreport/internal/columns"
	"github.com/cleared-dev/fundreport/internal/textnorm"
)

// ErrNoSheet is returned for a sheet that was not provided.
var ErrNoSheet = errors.New("sheet not provided")

// MissingColumnError reports a required column that no header matched.
type MissingColumnError struct {
	Sheet string
	Field columns.Field
	// Suggestion is the header closest to the field's first synonym, or
	// empty when nothing is close.
	Suggestion string
}

func (e *MissingColumnError) Error() string {
	msg := fmt.Sprintf("%s: missing column for %s", e.Sheet, e.Field)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (closest header: %q)", e.Suggestion)
	}
	return msg
}

// suggest returns the header closest to any of synonyms.
func suggest(headers []string, synonyms []string) string {
	byNorm := make(map[string]string, len(headers))
	var candidates []string
	for _, h := range headers {
		n := textnorm.Normalize(h)
		if n == "" {
			continue
		}
		if _, dup := byNorm[n]; !dup {
			byNorm[n] = h
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 || len(synonyms) == 0 {
		return ""
	}
	cm := closestmatch.New(candidates, []int{2, 3})
	for _, syn := range synonyms {
		if best := cm.Closest(syn); best != "" {
			return byNorm[best]
		}
	}
	return ""
}
