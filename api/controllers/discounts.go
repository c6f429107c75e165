package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giftloom/configurator-backend/api/responses"
	"github.com/giftloom/configurator-backend/api/validators"
	"github.com/giftloom/configurator-backend/internal/catalog"
	"github.com/giftloom/configurator-backend/internal/configsets"
	"github.com/giftloom/configurator-backend/internal/discounts"
	pkgerrors "github.com/giftloom/configurator-backend/pkg/errors"
	"github.com/giftloom/configurator-backend/pkg/logger"
)

type validateDiscountRequest struct {
	Code string `json:"code" validate:"required,min=1,max=40"`
}

// DiscountValidate resolves a code and returns the result, valid or not.
func DiscountValidate(resolver *discounts.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount resolver unavailable"))
			return
		}

		var payload validateDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dc, err := resolver.Resolve(r.Context(), payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discount resolution aborted"))
			return
		}
		responses.WriteSuccess(w, dc)
	}
}

type applyDiscountRequest struct {
	SetID string `json:"setId" validate:"required"`
	Code  string `json:"code" validate:"required,min=1,max=40"`
}

// DiscountApply resolves the code and applies it to the set. An unknown code
// is a validation failure; nothing is stored for it.
func DiscountApply(resolver *discounts.Resolver, registry *discounts.Registry, svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil || registry == nil || svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var payload applyDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, ok := svc.GetSet(payload.SetID); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set not found"))
			return
		}

		dc, err := resolver.Resolve(r.Context(), payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discount resolution aborted"))
			return
		}
		if !dc.IsValid {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("discount code %q is not valid", dc.Code)))
			return
		}

		registry.Apply(payload.SetID, dc)
		code := dc.Code
		svc.UpdateSet(payload.SetID, configsets.SetUpdate{DiscountCode: &code})

		responses.WriteSuccess(w, dc)
	}
}

// DiscountRemove clears the discount applied to the set.
func DiscountRemove(registry *discounts.Registry, svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registry == nil || svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		setID := chi.URLParam(r, "setId")
		if _, ok := svc.GetSet(setID); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set not found"))
			return
		}

		registry.Remove(setID)
		empty := ""
		svc.UpdateSet(setID, configsets.SetUpdate{DiscountCode: &empty})

		responses.WriteSuccess(w, map[string]string{"setId": setID})
	}
}

// DiscountCodes lists the seasonal storefront discount table.
func DiscountCodes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.StorefrontDiscounts())
	}
}
