package catalog

import (
	"testing"
)

func TestProductsHaveVariants(t *testing.T) {
	t.Parallel()

	all := Products()
	if len(all) != 4 {
		t.Fatalf("catalog size = %d, want 4", len(all))
	}
	for _, p := range all {
		if p.ID == "" || p.Title == "" || p.Handle == "" {
			t.Fatalf("incomplete product: %+v", p)
		}
		if len(p.Variants) == 0 {
			t.Fatalf("product %q has no variants", p.ID)
		}
		for _, v := range p.Variants {
			if v.PriceAmount() <= 0 {
				t.Fatalf("variant %q has non-positive price %q", v.ID, v.Price)
			}
		}
	}
}

func TestProductByID(t *testing.T) {
	t.Parallel()

	p, ok := ProductByID("charm-bracelet")
	if !ok || p.Title != "Valentine Charm Bracelet" {
		t.Fatalf("lookup failed: %+v ok=%v", p, ok)
	}
	if _, ok := ProductByID("no-such-product"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestFindVariant(t *testing.T) {
	t.Parallel()

	p, v, ok := FindVariant("heart-pendant-gold")
	if !ok {
		t.Fatalf("variant not found")
	}
	if p.ID != "necklace-heart-pendant" {
		t.Fatalf("parent product = %q", p.ID)
	}
	if v.PriceAmount() != 149.99 {
		t.Fatalf("price = %v, want 149.99", v.PriceAmount())
	}
	if _, _, ok := FindVariant("ghost-variant"); ok {
		t.Fatalf("unknown variant must not resolve")
	}
}

func TestVariantPriceAmountUnparseable(t *testing.T) {
	t.Parallel()

	v := Variant{Price: "not-a-number"}
	if got := v.PriceAmount(); got != 0 {
		t.Fatalf("PriceAmount = %v, want 0 for unparseable price", got)
	}
}

func TestTemplatesResolveAgainstCatalog(t *testing.T) {
	t.Parallel()

	all := Templates()
	if len(all) != 3 {
		t.Fatalf("templates = %d, want 3", len(all))
	}
	for _, tmpl := range all {
		if len(tmpl.Products) < 2 {
			t.Fatalf("template %q has fewer than 2 products", tmpl.ID)
		}
		for _, p := range tmpl.Products {
			parent, _, ok := FindVariant(p.VariantID)
			if !ok {
				t.Fatalf("template %q references unknown variant %q", tmpl.ID, p.VariantID)
			}
			if parent.ID != p.ProductID {
				t.Fatalf("template %q: variant %q belongs to %q, not %q", tmpl.ID, p.VariantID, parent.ID, p.ProductID)
			}
		}
	}
}

func TestTemplateInstantiateIsDetached(t *testing.T) {
	t.Parallel()

	tmpl, ok := TemplateByID("his-and-hers-necklaces")
	if !ok {
		t.Fatalf("template not found")
	}

	first := tmpl.Instantiate()
	first[0].Quantity = 99
	first[0].Properties["customText"] = "changed"

	second := tmpl.Instantiate()
	if second[0].Quantity != 1 {
		t.Fatalf("quantity mutation leaked into the template")
	}
	if second[0].Properties["customText"] != "Forever Yours" {
		t.Fatalf("property mutation leaked into the template")
	}
}

func TestStorefrontDiscountsReferenceCatalogProducts(t *testing.T) {
	t.Parallel()

	all := StorefrontDiscounts()
	if len(all) != 4 {
		t.Fatalf("storefront discounts = %d, want 4", len(all))
	}
	for _, dc := range all {
		if !dc.IsValid {
			t.Fatalf("storefront discount %q must be valid", dc.Code)
		}
		if !dc.DiscountType.IsValid() {
			t.Fatalf("discount %q has bad type %q", dc.Code, dc.DiscountType)
		}
		if dc.Description == "" {
			t.Fatalf("discount %q missing description", dc.Code)
		}
		for _, productID := range dc.ApplicableProducts {
			if _, ok := ProductByID(productID); !ok {
				t.Fatalf("discount %q references unknown product %q", dc.Code, productID)
			}
		}
	}
}

func TestStorefrontDiscountByCode(t *testing.T) {
	t.Parallel()

	dc, ok := StorefrontDiscountByCode("CUPID50")
	if !ok || dc.Value != 50 {
		t.Fatalf("lookup failed: %+v ok=%v", dc, ok)
	}
	if _, ok := StorefrontDiscountByCode("NOPE"); ok {
		t.Fatalf("unknown code must not resolve")
	}
}
