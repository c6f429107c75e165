package configsets

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/giftloom/configurator-backend/internal/discounts"
	"github.com/giftloom/configurator-backend/pkg/config"
	"github.com/giftloom/configurator-backend/pkg/enums"
	"github.com/giftloom/configurator-backend/pkg/types"
)

func newTestService(t *testing.T, store Store) (*Service, *discounts.Registry) {
	t.Helper()
	registry := discounts.NewRegistry()
	svc, err := NewService(context.Background(), store, registry, config.StateConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, registry
}

func TestNewServiceSeedsDefaultSet(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, NewMemoryStore())
	sets := svc.Sets()
	if len(sets) != 1 {
		t.Fatalf("sets = %d, want 1 seeded set", len(sets))
	}
	if sets[0].Name != "Configuration 1" {
		t.Fatalf("seed name = %q, want Configuration 1", sets[0].Name)
	}
	if svc.ActiveSetID() != sets[0].ID {
		t.Fatalf("seed set must be active")
	}
	if !strings.HasPrefix(sets[0].ID, "set-") {
		t.Fatalf("set id %q missing set- prefix", sets[0].ID)
	}
}

func TestNewServiceDiscardsUnparseableSnapshot(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Save(context.Background(), []byte("{not json")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	svc, _ := newTestService(t, store)
	sets := svc.Sets()
	if len(sets) != 1 || sets[0].Name != "Configuration 1" {
		t.Fatalf("expected fresh seed after corrupt snapshot, got %+v", sets)
	}
}

func TestAddSetNamesByCount(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, NewMemoryStore())
	id := svc.AddSet()
	set, ok := svc.GetSet(id)
	if !ok {
		t.Fatalf("added set not found")
	}
	if set.Name != "Configuration 2" {
		t.Fatalf("name = %q, want Configuration 2", set.Name)
	}
	if svc.ActiveSetID() != id {
		t.Fatalf("new set must become active")
	}
}

func TestDeleteSetRepointsActive(t *testing.T) {
	t.Parallel()

	svc, registry := newTestService(t, NewMemoryStore())
	first := svc.Sets()[0].ID
	second := svc.AddSet()
	registry.Apply(second, types.DiscountCode{Code: "SAVE10", IsValid: true})

	if !svc.DeleteSet(second) {
		t.Fatalf("delete failed")
	}
	if svc.ActiveSetID() != first {
		t.Fatalf("active = %q, want first remaining set %q", svc.ActiveSetID(), first)
	}
	if _, ok := registry.Get(second); ok {
		t.Fatalf("deleting a set must drop its applied discount")
	}

	if !svc.DeleteSet(first) {
		t.Fatalf("delete failed")
	}
	if svc.ActiveSetID() != "" {
		t.Fatalf("active = %q, want empty with no sets left", svc.ActiveSetID())
	}
	if svc.DeleteSet("set-missing") {
		t.Fatalf("deleting an unknown set must report false")
	}
}

func TestUpdateSetShallowMerge(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, NewMemoryStore())
	id := svc.Sets()[0].ID

	name := "His & Hers"
	if !svc.UpdateSet(id, SetUpdate{Name: &name}) {
		t.Fatalf("update failed")
	}
	set, _ := svc.GetSet(id)
	if set.Name != "His & Hers" || set.DiscountCode != "" {
		t.Fatalf("unexpected set after name-only update: %+v", set)
	}

	code := "VALENTINE20"
	products := []types.ConfiguredProduct{{VariantID: "heart-pendant-gold", Quantity: 1, Price: 149.99, Title: "Gold Heart Pendant"}}
	if !svc.UpdateSet(id, SetUpdate{DiscountCode: &code, Products: &products}) {
		t.Fatalf("update failed")
	}
	set, _ = svc.GetSet(id)
	if set.Name != "His & Hers" {
		t.Fatalf("merge clobbered the name: %q", set.Name)
	}
	if set.DiscountCode != "VALENTINE20" || len(set.Products) != 1 {
		t.Fatalf("unexpected set after merge: %+v", set)
	}

	// The service keeps its own copy of the product slice.
	products[0].Quantity = 99
	set, _ = svc.GetSet(id)
	if set.Products[0].Quantity != 1 {
		t.Fatalf("caller slice mutation leaked into the service")
	}
}

func TestDuplicateSet(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, NewMemoryStore())
	id := svc.Sets()[0].ID
	svc.AddProductToSet(id, types.ConfiguredProduct{VariantID: "charm-bracelet-silver", Quantity: 2, Price: 69.99})

	copyID, ok := svc.DuplicateSet(id)
	if !ok {
		t.Fatalf("duplicate failed")
	}
	if copyID == id {
		t.Fatalf("duplicate must get a fresh id")
	}
	dup, _ := svc.GetSet(copyID)
	if dup.Name != "Configuration 1 (Copy)" {
		t.Fatalf("name = %q, want Configuration 1 (Copy)", dup.Name)
	}
	if len(dup.Products) != 1 || dup.Products[0].VariantID != "charm-bracelet-silver" {
		t.Fatalf("products not copied: %+v", dup.Products)
	}
	if svc.ActiveSetID() != copyID {
		t.Fatalf("duplicate must become active")
	}

	if _, ok := svc.DuplicateSet("set-missing"); ok {
		t.Fatalf("duplicating an unknown set must report false")
	}
}

func TestSetActiveSetIgnoresUnknownIDs(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, NewMemoryStore())
	id := svc.Sets()[0].ID
	if svc.SetActiveSet("set-missing") {
		t.Fatalf("unknown id must be rejected")
	}
	if svc.ActiveSetID() != id {
		t.Fatalf("active reference changed on rejected switch")
	}
}

func TestProductSlotOperations(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, NewMemoryStore())
	id := svc.Sets()[0].ID

	svc.AddProductToSet(id, types.ConfiguredProduct{VariantID: "a", Quantity: 1, Price: 10})
	svc.AddProductToSet(id, types.ConfiguredProduct{VariantID: "b", Quantity: 2, Price: 20})

	if svc.UpdateProductInSet(id, 5, types.ConfiguredProduct{VariantID: "x"}) {
		t.Fatalf("out-of-bounds update must be a no-op")
	}
	if svc.RemoveProductFromSet(id, -1) {
		t.Fatalf("negative index must be a no-op")
	}

	if !svc.UpdateProductInSet(id, 1, types.ConfiguredProduct{VariantID: "b2", Quantity: 3, Price: 20}) {
		t.Fatalf("update failed")
	}
	if !svc.RemoveProductFromSet(id, 0) {
		t.Fatalf("remove failed")
	}

	set, _ := svc.GetSet(id)
	if len(set.Products) != 1 || set.Products[0].VariantID != "b2" {
		t.Fatalf("unexpected products: %+v", set.Products)
	}
}

func TestTotalsAcrossSets(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, NewMemoryStore())
	first := svc.Sets()[0].ID
	svc.AddProductToSet(first, types.ConfiguredProduct{VariantID: "a", Quantity: 2, Price: 10.50})
	second := svc.AddSet()
	svc.AddProductToSet(second, types.ConfiguredProduct{VariantID: "b", Quantity: 1, Price: 5})

	if got := svc.TotalPrice(); got != 26 {
		t.Fatalf("TotalPrice = %v, want 26", got)
	}
	if got := len(svc.GetAllProducts()); got != 2 {
		t.Fatalf("GetAllProducts = %d products, want 2", got)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	svc, registry := newTestService(t, store)
	id := svc.Sets()[0].ID
	svc.AddProductToSet(id, types.ConfiguredProduct{VariantID: "heart-pendant-gold", Quantity: 1, Price: 149.99})
	registry.Apply(id, types.DiscountCode{Code: "VALENTINE20", IsValid: true, DiscountType: enums.DiscountTypePercentage, Value: 20})
	svc.SetActiveSet(id)
	svc.waitForWrites()

	orig, ok := svc.GetSet(id)
	if !ok {
		t.Fatalf("set %q missing before restore", id)
	}

	raw, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var state persistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if state.ActiveSetID != id {
		t.Fatalf("persisted active = %q, want %q", state.ActiveSetID, id)
	}
	if _, ok := state.DiscountCodes[id]; !ok {
		t.Fatalf("applied discount missing from snapshot")
	}

	// A fresh service over the same store resumes the persisted state.
	registry2 := discounts.NewRegistry()
	svc2, err := NewService(context.Background(), store, registry2, config.StateConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	set, ok := svc2.GetSet(id)
	if !ok {
		t.Fatalf("restored service lost set %q", id)
	}
	if len(set.Products) != 1 || set.Products[0].Price != 149.99 {
		t.Fatalf("restored products wrong: %+v", set.Products)
	}
	if set.Name != orig.Name {
		t.Fatalf("restored name = %q, want %q", set.Name, orig.Name)
	}
	if !set.CreatedAt.Truncate(time.Millisecond).Equal(orig.CreatedAt.Truncate(time.Millisecond)) {
		t.Fatalf("restored createdAt = %v, want %v to the millisecond", set.CreatedAt, orig.CreatedAt)
	}
	if dc, ok := registry2.Get(id); !ok || dc.Code != "VALENTINE20" {
		t.Fatalf("restored discount wrong: %+v ok=%v", dc, ok)
	}
}

func TestFailedWriteDoesNotSurface(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	svc, _ := newTestService(t, store)
	store.FailWrites(errors.New("redis down"))

	id := svc.AddSet()
	svc.waitForWrites()

	// The mutation itself still landed in memory.
	if _, ok := svc.GetSet(id); !ok {
		t.Fatalf("mutation lost when the snapshot write failed")
	}
}
