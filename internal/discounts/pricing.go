package discounts

import (
	"strings"

	"github.com/giftloom/configurator-backend/pkg/enums"
	"github.com/giftloom/configurator-backend/pkg/types"
)

// DiscountAmount computes the monetary discount for a subtotal. When the
// discount lists applicable product categories, only products whose title
// contains one of the category tokens (case-insensitive) contribute to the
// base; a scoped discount with no matching products is worth nothing. Fixed
// discounts are capped at the base so totals never go negative.
//
// All math is float64; rounding to display precision is the caller's concern.
func DiscountAmount(subtotal float64, dc *types.DiscountCode, products []types.ConfiguredProduct) float64 {
	if dc == nil || !dc.IsValid {
		return 0
	}

	base := subtotal
	if len(dc.ApplicableProducts) > 0 {
		base = scopedSubtotal(dc.ApplicableProducts, products)
		if base == 0 {
			return 0
		}
	}

	switch dc.DiscountType {
	case enums.DiscountTypePercentage:
		return base * dc.Value / 100
	case enums.DiscountTypeFixedAmount:
		if dc.Value > base {
			return base
		}
		return dc.Value
	}
	return 0
}

func scopedSubtotal(categories []string, products []types.ConfiguredProduct) float64 {
	var total float64
	for _, p := range products {
		if matchesAnyCategory(p.Title, categories) {
			total += p.Price * float64(p.Quantity)
		}
	}
	return total
}

func matchesAnyCategory(title string, categories []string) bool {
	lowered := strings.ToLower(title)
	for _, category := range categories {
		if category == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(category)) {
			return true
		}
	}
	return false
}
