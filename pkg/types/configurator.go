package types

import (
	"time"

	"github.com/giftloom/configurator-backend/pkg/enums"
)

// ConfiguredProduct is one user-selected product slot inside a configuration set.
// An empty VariantID marks the slot as not yet configured.
type ConfiguredProduct struct {
	VariantID  string            `json:"variantId"`
	Quantity   int               `json:"quantity"`
	Properties map[string]string `json:"properties,omitempty"`
	ProductID  string            `json:"productId,omitempty"`
	Title      string            `json:"title,omitempty"`
	Price      float64           `json:"price,omitempty"`
	Image      string            `json:"image,omitempty"`
}

// Clone returns a deep copy, including the properties map.
func (p ConfiguredProduct) Clone() ConfiguredProduct {
	out := p
	if p.Properties != nil {
		out.Properties = make(map[string]string, len(p.Properties))
		for k, v := range p.Properties {
			out.Properties[k] = v
		}
	}
	return out
}

// ConfigurationSet is a named, ordered grouping of configured products.
type ConfigurationSet struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Products     []ConfiguredProduct `json:"products"`
	DiscountCode string              `json:"discountCode,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// Clone returns a deep copy of the set and every product in it.
func (s ConfigurationSet) Clone() ConfigurationSet {
	out := s
	if s.Products != nil {
		out.Products = make([]ConfiguredProduct, len(s.Products))
		for i, p := range s.Products {
			out.Products[i] = p.Clone()
		}
	}
	return out
}

// Subtotal sums price*quantity over the set's products, without discounts.
func (s ConfigurationSet) Subtotal() float64 {
	var total float64
	for _, p := range s.Products {
		total += p.Price * float64(p.Quantity)
	}
	return total
}

// TotalQuantity sums the quantity over the set's products.
func (s ConfigurationSet) TotalQuantity() int {
	var qty int
	for _, p := range s.Products {
		qty += p.Quantity
	}
	return qty
}

// DiscountCode is a resolved discount definition. Unknown codes resolve to a
// value with IsValid=false rather than an error.
type DiscountCode struct {
	Code               string             `json:"code"`
	IsValid            bool               `json:"isValid"`
	DiscountType       enums.DiscountType `json:"discountType"`
	Value              float64            `json:"value"`
	ApplicableProducts []string           `json:"applicableProducts,omitempty"`
	Description        string             `json:"description,omitempty"`
}

// AppliedDiscounts maps a configuration set id to its applied discount.
// At most one discount is applied per set.
type AppliedDiscounts map[string]DiscountCode

// CartLineItem is a normalized, transport-ready cart line.
type CartLineItem struct {
	VariantID  string            `json:"variantId"`
	Quantity   int               `json:"quantity"`
	Properties map[string]string `json:"properties,omitempty"`
}

// BatchCartAddRequest is the contract handed to the external cart service.
// DiscountCodes is omitted entirely when no set contributes a valid code.
type BatchCartAddRequest struct {
	Lines         []CartLineItem `json:"lines"`
	DiscountCodes []string       `json:"discountCodes,omitempty"`
}

// CartFailedItem reports a single rejected line from a batch add.
type CartFailedItem struct {
	VariantID string `json:"variantId"`
	Error     string `json:"error"`
}

// CartAmount is a money value as the cart service reports it.
type CartAmount struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// CartCost wraps the total amount of a cart snapshot.
type CartCost struct {
	TotalAmount CartAmount `json:"totalAmount"`
}

// CartSnapshot is the cart state returned on a successful batch add.
type CartSnapshot struct {
	ID            string   `json:"id"`
	TotalQuantity int      `json:"totalQuantity"`
	Cost          CartCost `json:"cost"`
}

// CartAddResponse reports the outcome of a batch add. Partial failure is
// reported through FailedItems, never retried internally.
type CartAddResponse struct {
	Success     bool             `json:"success"`
	Error       string           `json:"error,omitempty"`
	Cart        *CartSnapshot    `json:"cart,omitempty"`
	FailedItems []CartFailedItem `json:"failedItems,omitempty"`
}
