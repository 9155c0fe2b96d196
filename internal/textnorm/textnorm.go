// Package textnorm builds comparison keys for Portuguese free text.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips diacritics through canonical
// decomposition and collapses whitespace runs to single spaces.
//
// The result is a comparison key only and must not be displayed.
// Normalize is idempotent.
func Normalize(s string) string {
	// Transformers keep state, so a fresh chain is built per call.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		cases.Lower(language.Und),
	)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(result), " ")
}

// Contains reports whether the normalized form of s contains the
// normalized form of substr. An empty substr never matches.
func Contains(s, substr string) bool {
	key := Normalize(substr)
	if key == "" {
		return false
	}
	return strings.Contains(Normalize(s), key)
}
