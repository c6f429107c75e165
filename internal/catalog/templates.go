package catalog

import (
	"github.com/giftloom/configurator-backend/pkg/types"
)

// Template is a pre-curated configuration a merchant can start a set from.
type Template struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Products    []types.ConfiguredProduct `json:"products"`
}

var templates = []Template{
	{
		ID:          "his-and-hers-necklaces",
		Name:        "His & Hers Necklaces",
		Description: "Matching heart pendant necklaces for couples",
		Products: []types.ConfiguredProduct{
			{
				VariantID: "heart-pendant-silver",
				Quantity:  1,
				Properties: map[string]string{
					"customText":  "Forever Yours",
					"slot":        "1",
					"giftMessage": "To my beloved on Valentine's Day",
				},
				ProductID: "necklace-heart-pendant",
				Title:     "Heart Pendant Necklace - His",
				Price:     89.99,
			},
			{
				VariantID: "heart-pendant-silver",
				Quantity:  1,
				Properties: map[string]string{
					"customText":  "Forever Mine",
					"slot":        "2",
					"giftMessage": "To my sweetheart with all my love",
				},
				ProductID: "necklace-heart-pendant",
				Title:     "Heart Pendant Necklace - Hers",
				Price:     89.99,
			},
		},
	},
	{
		ID:          "engagement-set",
		Name:        "Engagement Set",
		Description: "Complete engagement jewelry set",
		Products: []types.ConfiguredProduct{
			{
				VariantID: "couple-rings-gold-his",
				Quantity:  1,
				Properties: map[string]string{
					"customText":  "Will you marry me?",
					"slot":        "1",
					"giftMessage": "The beginning of our forever",
				},
				ProductID: "matching-couple-rings",
				Title:     "Gold Band - His",
				Price:     149.99,
			},
			{
				VariantID: "couple-rings-gold-hers",
				Quantity:  1,
				Properties: map[string]string{
					"customText":  "Yes, forever!",
					"slot":        "2",
					"giftMessage": "My heart is yours",
				},
				ProductID: "matching-couple-rings",
				Title:     "Gold Band - Hers",
				Price:     149.99,
			},
		},
	},
	{
		ID:          "valentine-surprise",
		Name:        "Valentine Surprise Bundle",
		Description: "Complete jewelry gift set",
		Products: []types.ConfiguredProduct{
			{
				VariantID: "heart-pendant-rose-gold",
				Quantity:  1,
				Properties: map[string]string{
					"customText":  "My Valentine",
					"slot":        "1",
					"giftMessage": "You make my heart skip a beat",
				},
				ProductID: "necklace-heart-pendant",
				Title:     "Rose Gold Heart Pendant",
				Price:     129.99,
			},
			{
				VariantID: "love-earrings-gold",
				Quantity:  1,
				Properties: map[string]string{
					"customText":  "XOXO",
					"slot":        "2",
					"giftMessage": "To complete your beautiful look",
				},
				ProductID: "love-earrings",
				Title:     "Gold Love Earrings",
				Price:     89.99,
			},
			{
				VariantID: "charm-bracelet-gold",
				Quantity:  1,
				Properties: map[string]string{
					"customText":  "Love Always",
					"slot":        "3",
					"giftMessage": "A charm for every memory we make",
				},
				ProductID: "charm-bracelet",
				Title:     "Gold Charm Bracelet",
				Price:     119.99,
			},
		},
	},
}

// Templates returns every curated template.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID looks a template up by id.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Instantiate deep-copies the template's products so callers can mutate the
// result without touching the catalog.
func (t Template) Instantiate() []types.ConfiguredProduct {
	out := make([]types.ConfiguredProduct, len(t.Products))
	for i, p := range t.Products {
		out[i] = p.Clone()
	}
	return out
}
