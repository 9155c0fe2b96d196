// Package classify assigns trial-balance lines to asset categories by
// keyword matching on their normalized descriptions.
package classify

import (
	"strings"

	"github.com/cleared-dev/fundreport/internal/model"
	"github.com/cleared-dev/fundreport/internal/textnorm"
)

// Rule maps a set of description keywords to a category.
type Rule struct {
	Category model.Category
	Keywords []string
}

// Classifier is an ordered list of rules. The first rule with a keyword
// contained in the description wins. It is immutable and safe for
// concurrent use.
type Classifier struct {
	rules            []Rule
	totalAssetsToken string
}

// New builds a Classifier. Keywords are normalized once here so Classify
// only normalizes the description.
func New(rules []Rule, totalAssetsKeyword string) *Classifier {
	c := &Classifier{totalAssetsToken: textnorm.Normalize(totalAssetsKeyword)}
	for _, r := range rules {
		nr := Rule{Category: r.Category}
		for _, kw := range r.Keywords {
			if n := textnorm.Normalize(kw); n != "" {
				nr.Keywords = append(nr.Keywords, n)
			}
		}
		c.rules = append(c.rules, nr)
	}
	return c
}

// Classify returns the category of description, or
// model.CategoryUnclassified when no keyword matches.
func (c *Classifier) Classify(description string) model.Category {
	d := textnorm.Normalize(description)
	if d == "" {
		return model.CategoryUnclassified
	}
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if containsNormalized(d, kw) {
				return r.Category
			}
		}
	}
	return model.CategoryUnclassified
}

// IsTotalAssets reports whether description names a total-assets line.
func (c *Classifier) IsTotalAssets(description string) bool {
	if c.totalAssetsToken == "" {
		return false
	}
	return containsNormalized(textnorm.Normalize(description), c.totalAssetsToken)
}

func containsNormalized(s, kw string) bool {
	return kw != "" && strings.Contains(s, kw)
}
