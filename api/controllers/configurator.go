package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/giftloom/configurator-backend/api/responses"
	"github.com/giftloom/configurator-backend/api/validators"
	"github.com/giftloom/configurator-backend/internal/cartlines"
	"github.com/giftloom/configurator-backend/internal/configsets"
	"github.com/giftloom/configurator-backend/internal/discounts"
	pkgerrors "github.com/giftloom/configurator-backend/pkg/errors"
	"github.com/giftloom/configurator-backend/pkg/logger"
	"github.com/giftloom/configurator-backend/pkg/types"
)

type setsResponse struct {
	Sets        []types.ConfigurationSet `json:"sets"`
	ActiveSetID string                   `json:"activeSetId"`
}

// ConfiguratorListSets returns every set plus the active-set reference.
func ConfiguratorListSets(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}
		responses.WriteSuccess(w, setsResponse{Sets: svc.Sets(), ActiveSetID: svc.ActiveSetID()})
	}
}

// ConfiguratorAddSet creates an empty set and makes it active.
func ConfiguratorAddSet(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}
		id := svc.AddSet()
		set, _ := svc.GetSet(id)
		responses.WriteSuccessStatus(w, http.StatusCreated, set)
	}
}

type updateSetRequest struct {
	Name         *string                    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	DiscountCode *string                    `json:"discountCode,omitempty"`
	Products     *[]types.ConfiguredProduct `json:"products,omitempty"`
}

// ConfiguratorUpdateSet shallow-merges the provided fields into the set.
func ConfiguratorUpdateSet(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}

		var payload updateSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := chi.URLParam(r, "setId")
		if !svc.UpdateSet(id, configsets.SetUpdate{
			Name:         payload.Name,
			DiscountCode: payload.DiscountCode,
			Products:     payload.Products,
		}) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set not found"))
			return
		}

		set, _ := svc.GetSet(id)
		responses.WriteSuccess(w, set)
	}
}

// ConfiguratorDeleteSet removes the set.
func ConfiguratorDeleteSet(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}
		if !svc.DeleteSet(chi.URLParam(r, "setId")) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set not found"))
			return
		}
		responses.WriteSuccess(w, setsResponse{Sets: svc.Sets(), ActiveSetID: svc.ActiveSetID()})
	}
}

// ConfiguratorDuplicateSet deep-copies the set and makes the copy active.
func ConfiguratorDuplicateSet(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}
		copyID, ok := svc.DuplicateSet(chi.URLParam(r, "setId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set not found"))
			return
		}
		set, _ := svc.GetSet(copyID)
		responses.WriteSuccessStatus(w, http.StatusCreated, set)
	}
}

// ConfiguratorSetActive points the active reference at the set.
func ConfiguratorSetActive(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}
		id := chi.URLParam(r, "setId")
		if !svc.SetActiveSet(id) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"activeSetId": id})
	}
}

type addProductRequest struct {
	VariantID  string            `json:"variantId"`
	Quantity   int               `json:"quantity" validate:"omitempty,min=0"`
	Properties map[string]string `json:"properties,omitempty"`
	ProductID  string            `json:"productId,omitempty"`
	Title      string            `json:"title,omitempty"`
	Price      float64           `json:"price,omitempty" validate:"omitempty,min=0"`
	Image      string            `json:"image,omitempty"`
}

func (p addProductRequest) toProduct() types.ConfiguredProduct {
	return types.ConfiguredProduct{
		VariantID:  p.VariantID,
		Quantity:   p.Quantity,
		Properties: p.Properties,
		ProductID:  p.ProductID,
		Title:      p.Title,
		Price:      p.Price,
		Image:      p.Image,
	}
}

// ConfiguratorAddProduct appends a product slot to the set.
func ConfiguratorAddProduct(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}

		var payload addProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := chi.URLParam(r, "setId")
		if !svc.AddProductToSet(id, payload.toProduct()) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set not found"))
			return
		}
		set, _ := svc.GetSet(id)
		responses.WriteSuccessStatus(w, http.StatusCreated, set)
	}
}

// ConfiguratorUpdateProduct replaces the product at the slot index.
func ConfiguratorUpdateProduct(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}

		index, err := productIndex(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := chi.URLParam(r, "setId")
		if !svc.UpdateProductInSet(id, index, payload.toProduct()) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set or product slot not found"))
			return
		}
		set, _ := svc.GetSet(id)
		responses.WriteSuccess(w, set)
	}
}

// ConfiguratorRemoveProduct drops the product at the slot index.
func ConfiguratorRemoveProduct(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}

		index, err := productIndex(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := chi.URLParam(r, "setId")
		if !svc.RemoveProductFromSet(id, index) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set or product slot not found"))
			return
		}
		set, _ := svc.GetSet(id)
		responses.WriteSuccess(w, set)
	}
}

// ConfiguratorTotals returns the discount-aware price breakdown for all sets.
func ConfiguratorTotals(svc *configsets.Service, registry *discounts.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || registry == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}
		responses.WriteSuccess(w, cartlines.CartTotal(svc.Sets(), registry.Snapshot()))
	}
}

func productIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product index must be a non-negative integer")
	}
	return index, nil
}
