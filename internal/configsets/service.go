package configsets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giftloom/configurator-backend/internal/discounts"
	"github.com/giftloom/configurator-backend/pkg/config"
	"github.com/giftloom/configurator-backend/pkg/logger"
	"github.com/giftloom/configurator-backend/pkg/types"
)

const defaultSetName = "Configuration 1"

// persistedState is the on-disk shape of the configurator snapshot. CreatedAt
// fields serialize as RFC 3339 text and come back as live timestamps.
type persistedState struct {
	Sets          []types.ConfigurationSet `json:"sets"`
	ActiveSetID   string                   `json:"activeSetId"`
	DiscountCodes types.AppliedDiscounts   `json:"discountCodes"`
}

// Service owns the collection of configuration sets and the active-set
// reference. Every mutation fires a non-blocking snapshot write; a failed
// write is logged and swallowed, never surfaced to the mutating caller.
type Service struct {
	store        Store
	registry     *discounts.Registry
	logg         *logger.Logger
	writeTimeout time.Duration

	mu          sync.RWMutex
	sets        []types.ConfigurationSet
	activeSetID string

	writes sync.WaitGroup
}

// NewService loads the persisted snapshot from the store, seeding a single
// empty "Configuration 1" set when nothing usable is stored.
func NewService(ctx context.Context, store Store, registry *discounts.Registry, cfg config.StateConfig, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("state store required")
	}
	if registry == nil {
		return nil, fmt.Errorf("discount registry required")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 3 * time.Second
	}

	s := &Service{
		store:        store,
		registry:     registry,
		logg:         logg,
		writeTimeout: cfg.WriteTimeout,
	}
	s.load(ctx)
	return s, nil
}

func (s *Service) load(ctx context.Context) {
	raw, err := s.store.Load(ctx)
	if err == nil && len(raw) > 0 {
		var state persistedState
		if jsonErr := json.Unmarshal(raw, &state); jsonErr == nil && len(state.Sets) > 0 {
			s.sets = state.Sets
			s.activeSetID = state.ActiveSetID
			if s.activeSetID != "" && s.indexOf(s.activeSetID) < 0 {
				s.activeSetID = s.sets[0].ID
			}
			s.registry.Restore(state.DiscountCodes)
			return
		} else if jsonErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "discarding unparseable configurator snapshot")
		}
	}
	if err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to load configurator snapshot")
	}

	seed := types.ConfigurationSet{
		ID:        newSetID(),
		Name:      defaultSetName,
		Products:  []types.ConfiguredProduct{},
		CreatedAt: time.Now().UTC(),
	}
	s.sets = []types.ConfigurationSet{seed}
	s.activeSetID = seed.ID
}

func newSetID() string {
	return "set-" + uuid.NewString()
}

// AddSet appends an empty set named after the current count and makes it
// active. Names are length-based, so delete/add cycles may repeat a name;
// that mirrors the storefront behavior and is deliberate.
func (s *Service) AddSet() string {
	s.mu.Lock()
	set := types.ConfigurationSet{
		ID:        newSetID(),
		Name:      fmt.Sprintf("Configuration %d", len(s.sets)+1),
		Products:  []types.ConfiguredProduct{},
		CreatedAt: time.Now().UTC(),
	}
	s.sets = append(s.sets, set)
	s.activeSetID = set.ID
	s.mu.Unlock()

	s.persist()
	return set.ID
}

// DeleteSet removes the set. When the active set is deleted, the first
// remaining set becomes active, or no set when none remain.
func (s *Service) DeleteSet(id string) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.sets = append(s.sets[:idx], s.sets[idx+1:]...)
	if s.activeSetID == id {
		if len(s.sets) > 0 {
			s.activeSetID = s.sets[0].ID
		} else {
			s.activeSetID = ""
		}
	}
	s.mu.Unlock()

	s.registry.Remove(id)
	s.persist()
	return true
}

// SetUpdate carries the fields UpdateSet shallow-merges into a set.
type SetUpdate struct {
	Name         *string
	DiscountCode *string
	Products     *[]types.ConfiguredProduct
}

// UpdateSet shallow-merges the provided fields into the matching set.
func (s *Service) UpdateSet(id string, update SetUpdate) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	if update.Name != nil {
		s.sets[idx].Name = *update.Name
	}
	if update.DiscountCode != nil {
		s.sets[idx].DiscountCode = *update.DiscountCode
	}
	if update.Products != nil {
		products := make([]types.ConfiguredProduct, len(*update.Products))
		for i, p := range *update.Products {
			products[i] = p.Clone()
		}
		s.sets[idx].Products = products
	}
	s.mu.Unlock()

	s.persist()
	return true
}

// DuplicateSet deep-copies the set under a new id with a " (Copy)" name
// suffix and makes the copy active.
func (s *Service) DuplicateSet(id string) (string, bool) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return "", false
	}
	clone := s.sets[idx].Clone()
	clone.ID = newSetID()
	clone.Name = s.sets[idx].Name + " (Copy)"
	clone.CreatedAt = time.Now().UTC()
	s.sets = append(s.sets, clone)
	s.activeSetID = clone.ID
	s.mu.Unlock()

	s.persist()
	return clone.ID, true
}

// SetActiveSet points the active reference at the given set. Unknown ids are
// ignored so the reference always names an existing set.
func (s *Service) SetActiveSet(id string) bool {
	s.mu.Lock()
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		return false
	}
	s.activeSetID = id
	s.mu.Unlock()

	s.persist()
	return true
}

// AddProductToSet appends a product slot to the set.
func (s *Service) AddProductToSet(id string, product types.ConfiguredProduct) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.sets[idx].Products = append(s.sets[idx].Products, product.Clone())
	s.mu.Unlock()

	s.persist()
	return true
}

// RemoveProductFromSet drops the product at the slot index. Out-of-bounds
// indexes are a no-op.
func (s *Service) RemoveProductFromSet(id string, index int) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 || index < 0 || index >= len(s.sets[idx].Products) {
		s.mu.Unlock()
		return false
	}
	products := s.sets[idx].Products
	s.sets[idx].Products = append(products[:index], products[index+1:]...)
	s.mu.Unlock()

	s.persist()
	return true
}

// UpdateProductInSet replaces the product at the slot index. Out-of-bounds
// indexes are a no-op.
func (s *Service) UpdateProductInSet(id string, index int, product types.ConfiguredProduct) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 || index < 0 || index >= len(s.sets[idx].Products) {
		s.mu.Unlock()
		return false
	}
	s.sets[idx].Products[index] = product.Clone()
	s.mu.Unlock()

	s.persist()
	return true
}

// Sets returns deep copies of every set in order.
func (s *Service) Sets() []types.ConfigurationSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ConfigurationSet, len(s.sets))
	for i, set := range s.sets {
		out[i] = set.Clone()
	}
	return out
}

// ActiveSetID returns the id of the active set, or empty when none exists.
func (s *Service) ActiveSetID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeSetID
}

// GetSet returns a deep copy of the matching set.
func (s *Service) GetSet(id string) (types.ConfigurationSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return types.ConfigurationSet{}, false
	}
	return s.sets[idx].Clone(), true
}

// GetAllProducts flattens every set's products, set order then slot order.
func (s *Service) GetAllProducts() []types.ConfiguredProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.ConfiguredProduct
	for _, set := range s.sets {
		for _, p := range set.Products {
			out = append(out, p.Clone())
		}
	}
	return out
}

// TotalPrice sums price*quantity across all sets, ignoring discounts.
func (s *Service) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, set := range s.sets {
		total += set.Subtotal()
	}
	return total
}

// indexOf assumes the caller holds s.mu.
func (s *Service) indexOf(id string) int {
	for i, set := range s.sets {
		if set.ID == id {
			return i
		}
	}
	return -1
}

// persist snapshots the full state and writes it in the background. The
// mutating caller never blocks on or sees the write outcome.
func (s *Service) persist() {
	s.mu.RLock()
	state := persistedState{
		Sets:          make([]types.ConfigurationSet, len(s.sets)),
		ActiveSetID:   s.activeSetID,
		DiscountCodes: s.registry.Snapshot(),
	}
	for i, set := range s.sets {
		state.Sets[i] = set.Clone()
	}
	s.mu.RUnlock()

	payload, err := json.Marshal(state)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(context.Background(), "failed to encode configurator snapshot", err)
		}
		return
	}

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()
		if err := s.store.Save(ctx, payload); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to persist configurator snapshot")
		}
	}()
}

// waitForWrites blocks until in-flight snapshot writes finish. Test helper.
func (s *Service) waitForWrites() {
	s.writes.Wait()
}
