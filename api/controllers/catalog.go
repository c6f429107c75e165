package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giftloom/configurator-backend/api/responses"
	"github.com/giftloom/configurator-backend/internal/catalog"
	"github.com/giftloom/configurator-backend/internal/configsets"
	pkgerrors "github.com/giftloom/configurator-backend/pkg/errors"
	"github.com/giftloom/configurator-backend/pkg/logger"
)

// CatalogProducts lists the product catalog.
func CatalogProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Products())
	}
}

// CatalogTemplates lists the curated configuration templates.
func CatalogTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Templates())
	}
}

// CatalogApplyTemplate replaces the set's products with a template's.
func CatalogApplyTemplate(svc *configsets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}

		tmpl, ok := catalog.TemplateByID(chi.URLParam(r, "templateId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "template not found"))
			return
		}

		setID := chi.URLParam(r, "setId")
		products := tmpl.Instantiate()
		name := tmpl.Name
		if !svc.UpdateSet(setID, configsets.SetUpdate{Name: &name, Products: &products}) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "configuration set not found"))
			return
		}

		set, _ := svc.GetSet(setID)
		responses.WriteSuccess(w, set)
	}
}
