package cartlines

import (
	"github.com/giftloom/configurator-backend/internal/discounts"
	"github.com/giftloom/configurator-backend/pkg/types"
)

// SetBreakdown is the per-set slice of a cart total.
type SetBreakdown struct {
	SetID          string  `json:"setId"`
	SetName        string  `json:"setName"`
	Subtotal       float64 `json:"subtotal"`
	Quantity       int     `json:"quantity"`
	DiscountAmount float64 `json:"discountAmount"`
}

// Totals aggregates the undiscounted subtotal, quantities, and discount
// amounts across every configuration set.
type Totals struct {
	Subtotal       float64        `json:"subtotal"`
	TotalQuantity  int            `json:"totalQuantity"`
	DiscountAmount float64        `json:"discountAmount"`
	FinalTotal     float64        `json:"finalTotal"`
	Breakdown      []SetBreakdown `json:"breakdown"`
}

// CartTotal computes the price/discount breakdown for the given sets. Each
// set's discount applies only to that set's own subtotal and products.
func CartTotal(sets []types.ConfigurationSet, applied types.AppliedDiscounts) Totals {
	totals := Totals{Breakdown: make([]SetBreakdown, 0, len(sets))}

	for _, set := range sets {
		subtotal := set.Subtotal()
		quantity := set.TotalQuantity()

		var discountAmount float64
		if dc, ok := applied[set.ID]; ok {
			discountAmount = discounts.DiscountAmount(subtotal, &dc, set.Products)
		}

		totals.Subtotal += subtotal
		totals.TotalQuantity += quantity
		totals.DiscountAmount += discountAmount
		totals.Breakdown = append(totals.Breakdown, SetBreakdown{
			SetID:          set.ID,
			SetName:        set.Name,
			Subtotal:       subtotal,
			Quantity:       quantity,
			DiscountAmount: discountAmount,
		})
	}

	totals.FinalTotal = totals.Subtotal - totals.DiscountAmount
	return totals
}
