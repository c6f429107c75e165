package cartlines

import (
	"strconv"

	"github.com/giftloom/configurator-backend/pkg/types"
)

// Provenance property keys stamped onto translated cart lines. The bundle
// validation function reads its own `_bundle_*` attributes from the same bag.
const (
	PropProductID = "_productId"
	PropTitle     = "_title"
	PropPrice     = "_price"
	PropSetID     = "_configurationSetId"
	PropSetName   = "_configurationSetName"
)

// ProductToCartLine normalizes one configured product into a cart line,
// merging its custom properties with product provenance keys.
func ProductToCartLine(p types.ConfiguredProduct) types.CartLineItem {
	properties := make(map[string]string, len(p.Properties)+3)
	for k, v := range p.Properties {
		properties[k] = v
	}
	properties[PropProductID] = p.ProductID
	properties[PropTitle] = p.Title
	properties[PropPrice] = strconv.FormatFloat(p.Price, 'f', -1, 64)

	return types.CartLineItem{
		VariantID:  p.VariantID,
		Quantity:   p.Quantity,
		Properties: properties,
	}
}

// SetToCartLines translates a configuration set into cart lines. Products
// missing either a variant id or a resolved product id are never transmitted.
func SetToCartLines(set types.ConfigurationSet) []types.CartLineItem {
	lines := make([]types.CartLineItem, 0, len(set.Products))
	for _, p := range set.Products {
		if p.VariantID == "" || p.ProductID == "" {
			continue
		}
		line := ProductToCartLine(p)
		line.Properties[PropSetID] = set.ID
		line.Properties[PropSetName] = set.Name
		lines = append(lines, line)
	}
	return lines
}

// SetsToCartRequest concatenates every set's lines in set order and collects
// the discount codes of sets whose applied discount resolved as valid. The
// DiscountCodes slice stays nil when no set contributes a code, so it is
// omitted from the serialized request rather than sent as an empty array.
func SetsToCartRequest(sets []types.ConfigurationSet, applied types.AppliedDiscounts) types.BatchCartAddRequest {
	var request types.BatchCartAddRequest
	for _, set := range sets {
		request.Lines = append(request.Lines, SetToCartLines(set)...)
		if set.DiscountCode == "" {
			continue
		}
		if dc, ok := applied[set.ID]; ok && dc.IsValid {
			request.DiscountCodes = append(request.DiscountCodes, set.DiscountCode)
		}
	}
	return request
}
