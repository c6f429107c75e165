package discounts

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/giftloom/configurator-backend/pkg/config"
	"github.com/giftloom/configurator-backend/pkg/enums"
	"github.com/giftloom/configurator-backend/pkg/logger"
	"github.com/giftloom/configurator-backend/pkg/types"
)

// knownCodes is the static lookup table the resolver answers from. A real
// deployment would ask the platform's discount API instead.
var knownCodes = map[string]types.DiscountCode{
	"VALENTINE20": {
		IsValid:      true,
		DiscountType: enums.DiscountTypePercentage,
		Value:        20,
	},
	"SAVE10": {
		IsValid:      true,
		DiscountType: enums.DiscountTypeFixedAmount,
		Value:        10,
	},
	"JEWELRY25": {
		IsValid:            true,
		DiscountType:       enums.DiscountTypePercentage,
		Value:              25,
		ApplicableProducts: []string{"jewelry", "necklace", "ring"},
	},
	"COUPLE15": {
		IsValid:      true,
		DiscountType: enums.DiscountTypePercentage,
		Value:        15,
	},
}

// Resolver resolves textual discount codes against the known-code table while
// tracking which codes are mid-resolution.
type Resolver struct {
	latency time.Duration
	logg    *logger.Logger

	mu       sync.Mutex
	inFlight map[string]int
}

// NewResolver builds a resolver with the configured simulated latency.
func NewResolver(cfg config.DiscountsConfig, logg *logger.Logger) *Resolver {
	return &Resolver{
		latency:  cfg.ResolveLatency,
		logg:     logg,
		inFlight: make(map[string]int),
	}
}

// Canonicalize normalizes raw user input into lookup form.
func Canonicalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve looks the code up after the simulated latency elapses. Unknown codes
// resolve to an invalid zero-value discount, not an error; the only error path
// is context cancellation.
func (r *Resolver) Resolve(ctx context.Context, code string) (types.DiscountCode, error) {
	canonical := Canonicalize(code)

	r.track(canonical, 1)
	defer r.track(canonical, -1)

	if r.latency > 0 {
		timer := time.NewTimer(r.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return types.DiscountCode{}, ctx.Err()
		case <-timer.C:
		}
	}

	if known, ok := knownCodes[canonical]; ok {
		known.Code = canonical
		if r.logg != nil {
			r.logg.Debug(r.logg.WithDiscountCode(ctx, canonical), "discount code resolved")
		}
		return known, nil
	}

	return types.DiscountCode{
		Code:         canonical,
		IsValid:      false,
		DiscountType: enums.DiscountTypePercentage,
		Value:        0,
	}, nil
}

// IsValidating reports whether any resolution for the given code is in flight.
func (r *Resolver) IsValidating(code string) bool {
	canonical := Canonicalize(code)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight[canonical] > 0
}

func (r *Resolver) track(code string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.inFlight[code] + delta
	if next <= 0 {
		delete(r.inFlight, code)
		return
	}
	r.inFlight[code] = next
}
