package model

import "fmt"

// Category is a portfolio composition bucket for trial-balance lines.
type Category string

const (
	CategoryRepoOperations    Category = "repo_operations"
	CategoryPublicSecurities  Category = "public_securities"
	CategoryPrivateSecurities Category = "private_securities"
	CategoryUnclassified      Category = "unclassified"
)

var categoryLabels = map[Category]string{
	CategoryRepoOperations:    "Operações Compromissadas",
	CategoryPublicSecurities:  "Títulos Públicos",
	CategoryPrivateSecurities: "Títulos Privados",
	CategoryUnclassified:      "Outros",
}

// Categories returns the taxonomy categories in their fixed order.
// Unclassified is not part of the taxonomy.
func Categories() []Category {
	return []Category{
		CategoryRepoOperations,
		CategoryPublicSecurities,
		CategoryPrivateSecurities,
	}
}

// ParseCategory converts a configuration name to a taxonomy Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// Label returns the display label used in reports and exports.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// CategoryTotal is the summed balance of the non-parent lines in a category.
type CategoryTotal struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Total    int64    `json:"total"`
	Lines    int      `json:"lines"`
}
