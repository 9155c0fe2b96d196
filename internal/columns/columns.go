// Package columns maps the loosely named headers of spreadsheet exports to
// semantic fields through ranked synonym matching.
//
// For each field the resolver tries, in order:
//
//  1. exact match of the normalized header against a synonym,
//  2. substring containment in either direction between a synonym and the
//     normalized header,
//  3. the field's last-resort fallback keyword contained in the header.
//
// Within a tier the first header in iteration order wins. Fields resolve
// independently of each other.
package columns

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/fundreport/internal/textnorm"
)

// Field is a semantic column of one of the two input sheets.
type Field string

const (
	FieldDate               Field = "date"
	FieldQuotaValue         Field = "quota_value"
	FieldQuotaVariation     Field = "quota_variation"
	FieldNetWorth           Field = "net_worth"
	FieldSubscriptions      Field = "subscriptions"
	FieldRedemptions        Field = "redemptions"
	FieldQuotaholderCount   Field = "quotaholder_count"
	FieldAccountCode        Field = "account_code"
	FieldAccountDescription Field = "account_description"
	FieldAccountBalance     Field = "account_balance"
)

// QuotaholderFields returns the fields of the quotaholders sheet.
func QuotaholderFields() []Field {
	return []Field{
		FieldDate,
		FieldQuotaValue,
		FieldQuotaVariation,
		FieldNetWorth,
		FieldSubscriptions,
		FieldRedemptions,
		FieldQuotaholderCount,
	}
}

// TrialBalanceFields returns the fields of the trial balance sheet.
func TrialBalanceFields() []Field {
	return []Field{
		FieldAccountCode,
		FieldAccountDescription,
		FieldAccountBalance,
	}
}

// ParseField converts a configuration key to a Field.
func ParseField(name string) (Field, error) {
	for _, f := range append(QuotaholderFields(), TrialBalanceFields()...) {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown column field %q", name)
}

// Tier records which matching strategy resolved a field.
type Tier int

const (
	TierExact Tier = iota + 1
	TierSubstring
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSubstring:
		return "substring"
	case TierFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Spec lists the synonyms of one field.
type Spec struct {
	Field    Field
	Synonyms []string
	// Fallback is a single keyword tried last; empty disables the tier.
	Fallback string
}

// Match is a resolved header.
type Match struct {
	Header string
	Tier   Tier
}

type normalizedSpec struct {
	synonyms []string
	fallback string
}

// Resolver resolves headers against a fixed set of field specs. It is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	specs     map[Field]normalizedSpec
	minSubstr int
}

// NewResolver builds a Resolver. Synonyms and headers shorter than
// minSubstringLen (after normalization) only take part in exact matching.
// Blank headers never match, whatever minSubstringLen is.
func NewResolver(specs []Spec, minSubstringLen int) *Resolver {
	if minSubstringLen < 1 {
		minSubstringLen = 1
	}
	m := make(map[Field]normalizedSpec, len(specs))
	for _, s := range specs {
		ns := normalizedSpec{fallback: textnorm.Normalize(s.Fallback)}
		for _, syn := range s.Synonyms {
			if n := textnorm.Normalize(syn); n != "" {
				ns.synonyms = append(ns.synonyms, n)
			}
		}
		m[s.Field] = ns
	}
	return &Resolver{specs: m, minSubstr: minSubstringLen}
}

// Resolve finds the header for field. It reports false when no header
// matches or the field has no spec.
func (r *Resolver) Resolve(field Field, headers []string) (Match, bool) {
	spec, ok := r.specs[field]
	if !ok {
		return Match{}, false
	}
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = textnorm.Normalize(h)
	}

	for i, nh := range normalized {
		if nh == "" {
			continue
		}
		for _, syn := range spec.synonyms {
			if nh == syn {
				return Match{Header: headers[i], Tier: TierExact}, true
			}
		}
	}

	for i, nh := range normalized {
		if nh == "" || len(nh) < r.minSubstr {
			continue
		}
		for _, syn := range spec.synonyms {
			if syn == "" || len(syn) < r.minSubstr {
				continue
			}
			if strings.Contains(nh, syn) || strings.Contains(syn, nh) {
				return Match{Header: headers[i], Tier: TierSubstring}, true
			}
		}
	}

	if spec.fallback != "" {
		for i, nh := range normalized {
			if nh != "" && strings.Contains(nh, spec.fallback) {
				return Match{Header: headers[i], Tier: TierFallback}, true
			}
		}
	}
	return Match{}, false
}

// Mapping holds the resolved header per field. Unresolved fields are absent.
type Mapping map[Field]Match

// Header returns the resolved header for f.
func (m Mapping) Header(f Field) (string, bool) {
	match, ok := m[f]
	return match.Header, ok
}

// ResolveAll resolves every field in fields.
func (r *Resolver) ResolveAll(fields []Field, headers []string) Mapping {
	m := make(Mapping, len(fields))
	for _, f := range fields {
		if match, ok := r.Resolve(f, headers); ok {
			m[f] = match
		}
	}
	return m
}

// Synonyms returns the normalized synonyms of field.
func (r *Resolver) Synonyms(field Field) []string {
	return append([]string(nil), r.specs[field].synonyms...)
}
