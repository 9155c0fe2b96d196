// Package aggregate turns classified ledger lines and quotaholder records
// into category totals, portfolio composition and net-worth metrics.
package aggregate

import (
	"math"

	"github.com/cleared-dev/fundreport/internal/model"
)

// TotalAssetsMatcher decides whether a description names a total-assets
// line. *classify.Classifier implements it.
type TotalAssetsMatcher interface {
	IsTotalAssets(description string) bool
}

// Breakdown is the result of aggregating one trial balance.
type Breakdown struct {
	// Totals has one entry per requested category, in that order.
	Totals []model.CategoryTotal `json:"totals"`
	// ClassifiedTotal is the sum of Totals.
	ClassifiedTotal int64 `json:"classified_total"`
	// TotalAssets sums every line, parents included, matched by the
	// total-assets keyword. It is not expected to reconcile with
	// ClassifiedTotal.
	TotalAssets       int64 `json:"total_assets"`
	TotalAssetsLines  int   `json:"total_assets_lines"`
	ParentLines       int   `json:"parent_lines"`
	UnclassifiedLines int   `json:"unclassified_lines"`
}

// Aggregate sums balances per category over lines that are not parents and
// are classified. Lines must already carry Category and IsParent.
// Categories not listed in categories are ignored.
func Aggregate(lines []model.LedgerLine, categories []model.Category, matcher TotalAssetsMatcher) Breakdown {
	b := Breakdown{Totals: make([]model.CategoryTotal, len(categories))}
	index := make(map[model.Category]int, len(categories))
	for i, c := range categories {
		b.Totals[i] = model.CategoryTotal{Category: c, Label: c.Label()}
		index[c] = i
	}

	for _, l := range lines {
		if matcher != nil && matcher.IsTotalAssets(l.Description) {
			b.TotalAssets += l.Balance
			b.TotalAssetsLines++
		}
		if l.IsParent {
			b.ParentLines++
			continue
		}
		if !l.Classified() {
			b.UnclassifiedLines++
			continue
		}
		i, ok := index[l.Category]
		if !ok {
			continue
		}
		b.Totals[i].Total += l.Balance
		b.Totals[i].Lines++
		b.ClassifiedTotal += l.Balance
	}
	return b
}

// Share is one slice of the portfolio composition.
type Share struct {
	Category model.Category `json:"category"`
	Label    string         `json:"label"`
	Total    int64          `json:"total"`
	Percent  float64        `json:"percent"`
}

// Composition returns each category's share of the classified total, with
// percentages rounded to one decimal. It returns nil when the classified
// total is not positive, since no meaningful split exists.
func Composition(b Breakdown) []Share {
	if b.ClassifiedTotal <= 0 {
		return nil
	}
	shares := make([]Share, 0, len(b.Totals))
	for _, t := range b.Totals {
		pct := float64(t.Total) / float64(b.ClassifiedTotal) * 100
		shares = append(shares, Share{
			Category: t.Category,
			Label:    t.Label,
			Total:    t.Total,
			Percent:  math.Round(pct*10) / 10,
		})
	}
	return shares
}
