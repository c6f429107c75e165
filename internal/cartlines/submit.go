package cartlines

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/giftloom/configurator-backend/pkg/config"
	"github.com/giftloom/configurator-backend/pkg/logger"
	"github.com/giftloom/configurator-backend/pkg/metrics"
	"github.com/giftloom/configurator-backend/pkg/types"
)

// CartAPI is the external cart service boundary. Implementations report
// per-line failures through the response, not through the error return.
type CartAPI interface {
	AddLines(ctx context.Context, request types.BatchCartAddRequest) (types.CartAddResponse, error)
}

// SimulatedCartAPI mimics the storefront cart endpoint: individual lines can
// be rejected for stock or variant validity without failing the whole batch.
type SimulatedCartAPI struct {
	latency time.Duration
}

// NewSimulatedCartAPI builds the simulated cart backend.
func NewSimulatedCartAPI(cfg config.CartAPIConfig) *SimulatedCartAPI {
	return &SimulatedCartAPI{latency: cfg.SubmitLatency}
}

const mockUnitPrice = 25.99

func (c *SimulatedCartAPI) AddLines(ctx context.Context, request types.BatchCartAddRequest) (types.CartAddResponse, error) {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return types.CartAddResponse{}, ctx.Err()
		case <-timer.C:
		}
	}

	var failed []types.CartFailedItem
	for _, line := range request.Lines {
		if line.VariantID == "out-of-stock-variant" {
			failed = append(failed, types.CartFailedItem{
				VariantID: line.VariantID,
				Error:     "Product is out of stock",
			})
		}
		if strings.HasPrefix(line.VariantID, "invalid-") {
			failed = append(failed, types.CartFailedItem{
				VariantID: line.VariantID,
				Error:     "Invalid product variant",
			})
		}
	}

	if len(failed) > 0 {
		return types.CartAddResponse{
			Success:     false,
			Error:       fmt.Sprintf("Failed to add %d item(s) to cart", len(failed)),
			FailedItems: failed,
		}, nil
	}

	var totalQuantity int
	for _, line := range request.Lines {
		totalQuantity += line.Quantity
	}

	return types.CartAddResponse{
		Success: true,
		Cart: &types.CartSnapshot{
			ID:            "cart-" + uuid.NewString(),
			TotalQuantity: totalQuantity,
			Cost: types.CartCost{
				TotalAmount: types.CartAmount{
					Amount:       fmt.Sprintf("%.2f", float64(totalQuantity)*mockUnitPrice),
					CurrencyCode: "USD",
				},
			},
		},
	}, nil
}

// SubmitResult is the outcome of a full submit pass: either validation
// errors that blocked the request, or the cart service's response.
type SubmitResult struct {
	Success          bool                   `json:"success"`
	ValidationErrors []InvalidSet           `json:"validationErrors,omitempty"`
	Result           *types.CartAddResponse `json:"result,omitempty"`
	CartTotal        *Totals                `json:"cartTotal,omitempty"`
}

// Submitter runs the pre-flight validation and hands valid sets to the cart
// service. Submission is refused without any network call when validation
// fails; transport failures come back in the result, and retrying is the
// caller's call.
type Submitter struct {
	api     CartAPI
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
}

// NewSubmitter wires the submitter against a cart backend.
func NewSubmitter(api CartAPI, m *metrics.CheckoutMetrics, logg *logger.Logger) (*Submitter, error) {
	if api == nil {
		return nil, fmt.Errorf("cart api required")
	}
	return &Submitter{api: api, metrics: m, logg: logg}, nil
}

// Submit validates, totals, translates, and submits the configuration sets.
func (s *Submitter) Submit(ctx context.Context, sets []types.ConfigurationSet, applied types.AppliedDiscounts) (SubmitResult, error) {
	valid, invalid := ValidateSets(sets)
	if len(invalid) > 0 {
		s.metrics.IncSubmission("rejected")
		if s.logg != nil {
			s.logg.Info(s.logg.WithField(ctx, "invalid_sets", len(invalid)), "cart submission refused by pre-flight validation")
		}
		return SubmitResult{Success: false, ValidationErrors: invalid}, nil
	}

	totals := CartTotal(valid, applied)
	request := SetsToCartRequest(valid, applied)

	response, err := s.api.AddLines(ctx, request)
	if err != nil {
		s.metrics.IncSubmission("error")
		return SubmitResult{}, err
	}

	if response.Success {
		s.metrics.IncSubmission("success")
	} else {
		s.metrics.IncSubmission("failed")
	}

	return SubmitResult{
		Success:   response.Success,
		Result:    &response,
		CartTotal: &totals,
	}, nil
}
