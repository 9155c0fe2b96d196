package accounts

import (
	"fmt"
	"sort"
	"strings"
)

// Check names a trial balance consistency rule.
type Check string

const (
	// CheckRollup flags a parent whose balance differs from the sum of its
	// nearest descendants.
	CheckRollup Check = "rollup"
	// CheckDuplicateCode flags an account code that appears more than once.
	CheckDuplicateCode Check = "duplicate_code"
	// CheckBalance flags a balance that could not be parsed.
	CheckBalance Check = "balance"
)

// ValidationError describes a single consistency problem. None of them
// stop aggregation; they are reported alongside the results.
type ValidationError struct {
	Check       Check  `json:"check"`
	Row         int    `json:"row"`
	AccountCode string `json:"account_code,omitempty"`
	Description string `json:"description"`
}

func (e ValidationError) Error() string {
	if e.AccountCode == "" {
		return fmt.Sprintf("%s [row %d]: %s", e.Check, e.Row, e.Description)
	}
	return fmt.Sprintf("%s [row %d, %s]: %s", e.Check, e.Row, e.AccountCode, e.Description)
}

// Validate checks the lines held by svc. Results are ordered by row.
func Validate(svc *Service) []ValidationError {
	lines := svc.All()
	var errs []ValidationError

	// Sum each line into its nearest present ancestor. Balances are whole
	// units, so every child may be off by less than one unit.
	sums := make(map[string]int64)
	children := make(map[string]int64)
	for i, l := range lines {
		code := strings.TrimSpace(l.AccountCode)
		if l.BalanceErr != nil {
			errs = append(errs, ValidationError{
				Check:       CheckBalance,
				Row:         l.Row,
				AccountCode: code,
				Description: fmt.Sprintf("balance %v treated as zero", l.RawBalance),
			})
		}
		if code == "" {
			continue
		}
		if !svc.first(i) {
			orig, _ := svc.Get(code)
			errs = append(errs, ValidationError{
				Check:       CheckDuplicateCode,
				Row:         l.Row,
				AccountCode: code,
				Description: fmt.Sprintf("code already used on row %d", orig.Row),
			})
			continue
		}
		if parent, ok := svc.Parent(code); ok {
			key := strings.TrimSpace(parent.AccountCode)
			sums[key] += l.Balance
			children[key]++
		}
	}

	for i, l := range lines {
		if !l.IsParent || !svc.first(i) {
			continue
		}
		code := strings.TrimSpace(l.AccountCode)
		sum, n := sums[code], children[code]
		if diff := sum - l.Balance; diff > n || -diff > n {
			errs = append(errs, ValidationError{
				Check:       CheckRollup,
				Row:         l.Row,
				AccountCode: code,
				Description: fmt.Sprintf("balance %d differs from children sum %d", l.Balance, sum),
			})
		}
	}

	sort.SliceStable(errs, func(a, b int) bool { return errs[a].Row < errs[b].Row })
	return errs
}
