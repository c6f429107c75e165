package cartlines

import (
	"fmt"

	"github.com/giftloom/configurator-backend/pkg/types"
)

// InvalidSet reports every issue found in one configuration set.
type InvalidSet struct {
	SetID   string   `json:"setId"`
	SetName string   `json:"setName"`
	Issues  []string `json:"issues"`
}

// ValidateSets checks each set for structural completeness before submission.
// Issues accumulate per set rather than short-circuiting; a set with any
// issue is excluded from the valid slice entirely.
func ValidateSets(sets []types.ConfigurationSet) (valid []types.ConfigurationSet, invalid []InvalidSet) {
	valid = []types.ConfigurationSet{}
	invalid = []InvalidSet{}

	for _, set := range sets {
		var issues []string

		if len(set.Products) == 0 {
			issues = append(issues, "No products configured")
		}

		for i, product := range set.Products {
			slot := i + 1
			if product.VariantID == "" {
				issues = append(issues, fmt.Sprintf("Product %d: No variant selected", slot))
			}
			if product.ProductID == "" {
				issues = append(issues, fmt.Sprintf("Product %d: No product ID", slot))
			}
			if product.Quantity <= 0 {
				issues = append(issues, fmt.Sprintf("Product %d: Invalid quantity", slot))
			}
			if product.Title == "" {
				issues = append(issues, fmt.Sprintf("Product %d: Missing title", slot))
			}
		}

		if len(issues) > 0 {
			invalid = append(invalid, InvalidSet{SetID: set.ID, SetName: set.Name, Issues: issues})
			continue
		}
		valid = append(valid, set)
	}

	return valid, invalid
}
