package catalog

import (
	"github.com/shopspring/decimal"
)

// Variant is one purchasable variation of a catalog product. Price travels
// as a string on the wire, the way the storefront reports it.
type Variant struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
	Option1   string `json:"option1,omitempty"`
	Option2   string `json:"option2,omitempty"`
	Option3   string `json:"option3,omitempty"`
}

// PriceAmount parses the variant's price string. Unparseable prices count
// as zero rather than failing the catalog walk.
func (v Variant) PriceAmount() float64 {
	amount, err := decimal.NewFromString(v.Price)
	if err != nil {
		return 0
	}
	return amount.InexactFloat64()
}

// Product is a catalog entry with its variants.
type Product struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Handle   string    `json:"handle"`
	Variants []Variant `json:"variants"`
}

var products = []Product{
	{
		ID:     "necklace-heart-pendant",
		Title:  "Heart Pendant Necklace",
		Handle: "heart-pendant-necklace",
		Variants: []Variant{
			{ID: "heart-pendant-silver", Title: "Silver Heart Pendant", Price: "89.99", Available: true, Option1: "Silver", Option2: "18 inch"},
			{ID: "heart-pendant-gold", Title: "Gold Heart Pendant", Price: "149.99", Available: true, Option1: "Gold", Option2: "18 inch"},
			{ID: "heart-pendant-rose-gold", Title: "Rose Gold Heart Pendant", Price: "129.99", Available: true, Option1: "Rose Gold", Option2: "20 inch"},
		},
	},
	{
		ID:     "matching-couple-rings",
		Title:  "Matching Couple Rings",
		Handle: "matching-couple-rings",
		Variants: []Variant{
			{ID: "couple-rings-silver-his", Title: "Silver Band - His", Price: "79.99", Available: true, Option1: "Silver", Option2: "Size 10"},
			{ID: "couple-rings-silver-hers", Title: "Silver Band - Hers", Price: "79.99", Available: true, Option1: "Silver", Option2: "Size 7"},
			{ID: "couple-rings-gold-his", Title: "Gold Band - His", Price: "149.99", Available: true, Option1: "Gold", Option2: "Size 10"},
			{ID: "couple-rings-gold-hers", Title: "Gold Band - Hers", Price: "149.99", Available: true, Option1: "Gold", Option2: "Size 7"},
		},
	},
	{
		ID:     "charm-bracelet",
		Title:  "Valentine Charm Bracelet",
		Handle: "valentine-charm-bracelet",
		Variants: []Variant{
			{ID: "charm-bracelet-silver", Title: "Silver Charm Bracelet", Price: "69.99", Available: true, Option1: "Silver", Option2: "Standard"},
			{ID: "charm-bracelet-gold", Title: "Gold Charm Bracelet", Price: "119.99", Available: true, Option1: "Gold", Option2: "Standard"},
		},
	},
	{
		ID:     "love-earrings",
		Title:  "Love Script Earrings",
		Handle: "love-script-earrings",
		Variants: []Variant{
			{ID: "love-earrings-silver", Title: "Silver Love Earrings", Price: "49.99", Available: true, Option1: "Silver", Option2: "Stud"},
			{ID: "love-earrings-gold", Title: "Gold Love Earrings", Price: "89.99", Available: true, Option1: "Gold", Option2: "Stud"},
		},
	},
}

// Products returns the full catalog in display order.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// ProductByID looks a product up by its catalog id.
func ProductByID(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindVariant locates a variant and its parent product by variant id.
func FindVariant(variantID string) (Product, Variant, bool) {
	for _, p := range products {
		for _, v := range p.Variants {
			if v.ID == variantID {
				return p, v, true
			}
		}
	}
	return Product{}, Variant{}, false
}
