package discounts

import (
	"sync"

	"github.com/giftloom/configurator-backend/pkg/types"
)

// Registry holds the discounts applied per configuration set. At most one
// discount is applied to a set at a time.
type Registry struct {
	mu      sync.RWMutex
	applied types.AppliedDiscounts
}

// NewRegistry returns an empty applied-discount registry.
func NewRegistry() *Registry {
	return &Registry{applied: types.AppliedDiscounts{}}
}

// Apply records the discount for the set. Invalid discounts are ignored and
// Apply reports whether the discount was stored.
func (r *Registry) Apply(setID string, dc types.DiscountCode) bool {
	if setID == "" || !dc.IsValid {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied[setID] = dc
	return true
}

// Remove clears the discount applied to the set, if any.
func (r *Registry) Remove(setID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.applied, setID)
}

// Get returns the discount applied to the set.
func (r *Registry) Get(setID string) (types.DiscountCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dc, ok := r.applied[setID]
	return dc, ok
}

// Snapshot copies the applied map for read-only consumption.
func (r *Registry) Snapshot() types.AppliedDiscounts {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(types.AppliedDiscounts, len(r.applied))
	for k, v := range r.applied {
		out[k] = v
	}
	return out
}

// Restore replaces the registry contents with a previously persisted map.
func (r *Registry) Restore(applied types.AppliedDiscounts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = make(types.AppliedDiscounts, len(applied))
	for k, v := range applied {
		r.applied[k] = v
	}
}
