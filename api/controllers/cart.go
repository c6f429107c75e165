package controllers

import (
	"net/http"

	"github.com/giftloom/configurator-backend/api/responses"
	"github.com/giftloom/configurator-backend/internal/cartlines"
	"github.com/giftloom/configurator-backend/internal/configsets"
	"github.com/giftloom/configurator-backend/internal/discounts"
	pkgerrors "github.com/giftloom/configurator-backend/pkg/errors"
	"github.com/giftloom/configurator-backend/pkg/logger"
	"github.com/giftloom/configurator-backend/pkg/types"
)

type cartPreviewResponse struct {
	Request          types.BatchCartAddRequest `json:"request"`
	Totals           cartlines.Totals          `json:"totals"`
	ValidationErrors []cartlines.InvalidSet    `json:"validationErrors,omitempty"`
}

// CartPreview shows what a submit would send and cost, without sending it.
func CartPreview(svc *configsets.Service, registry *discounts.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || registry == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sets := svc.Sets()
		applied := registry.Snapshot()
		valid, invalid := cartlines.ValidateSets(sets)

		responses.WriteSuccess(w, cartPreviewResponse{
			Request:          cartlines.SetsToCartRequest(valid, applied),
			Totals:           cartlines.CartTotal(valid, applied),
			ValidationErrors: invalid,
		})
	}
}

// CartSubmit validates and submits every configuration set to the cart
// service. A 422 with per-set issues comes back when validation refuses the
// submission.
func CartSubmit(svc *configsets.Service, registry *discounts.Registry, submitter *cartlines.Submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || registry == nil || submitter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		result, err := submitter.Submit(r.Context(), svc.Sets(), registry.Snapshot())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart service unreachable"))
			return
		}

		if len(result.ValidationErrors) > 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "configuration sets failed validation").
				WithDetails(map[string]any{"validationErrors": result.ValidationErrors}))
			return
		}

		responses.WriteSuccess(w, result)
	}
}
