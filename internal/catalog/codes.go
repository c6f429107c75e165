package catalog

import (
	"github.com/giftloom/configurator-backend/pkg/enums"
	"github.com/giftloom/configurator-backend/pkg/types"
)

// storefrontDiscounts is the seasonal discount table surfaced to merchants in
// the workflow picker. These resolve through the same pricing rules as codes
// typed by hand; ApplicableProducts here carry catalog product ids.
var storefrontDiscounts = []types.DiscountCode{
	{
		Code:               "VALENTINE20",
		IsValid:            true,
		DiscountType:       enums.DiscountTypePercentage,
		Value:              20,
		Description:        "20% off Valentine's jewelry",
		ApplicableProducts: []string{"necklace-heart-pendant", "matching-couple-rings", "charm-bracelet", "love-earrings"},
	},
	{
		Code:               "LOVEBIRDS15",
		IsValid:            true,
		DiscountType:       enums.DiscountTypePercentage,
		Value:              15,
		Description:        "15% off couples jewelry",
		ApplicableProducts: []string{"necklace-heart-pendant", "matching-couple-rings"},
	},
	{
		Code:               "CUPID50",
		IsValid:            true,
		DiscountType:       enums.DiscountTypeFixedAmount,
		Value:              50,
		Description:        "$50 off orders over $200",
		ApplicableProducts: []string{"necklace-heart-pendant", "matching-couple-rings", "charm-bracelet", "love-earrings"},
	},
	{
		Code:               "SWEETHEART",
		IsValid:            true,
		DiscountType:       enums.DiscountTypePercentage,
		Value:              25,
		Description:        "25% off Valentine's surprise bundles",
		ApplicableProducts: []string{"necklace-heart-pendant", "love-earrings", "charm-bracelet"},
	},
}

// StorefrontDiscounts returns the seasonal discount table.
func StorefrontDiscounts() []types.DiscountCode {
	out := make([]types.DiscountCode, len(storefrontDiscounts))
	copy(out, storefrontDiscounts)
	return out
}

// StorefrontDiscountByCode finds a seasonal discount by its code.
func StorefrontDiscountByCode(code string) (types.DiscountCode, bool) {
	for _, dc := range storefrontDiscounts {
		if dc.Code == code {
			return dc, true
		}
	}
	return types.DiscountCode{}, false
}
