package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giftloom/configurator-backend/api/controllers"
	"github.com/giftloom/configurator-backend/api/middleware"
	"github.com/giftloom/configurator-backend/internal/cartlines"
	"github.com/giftloom/configurator-backend/internal/configsets"
	"github.com/giftloom/configurator-backend/internal/discounts"
	"github.com/giftloom/configurator-backend/pkg/config"
	"github.com/giftloom/configurator-backend/pkg/logger"
	"github.com/giftloom/configurator-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	statePinger controllers.Pinger,
	setsService *configsets.Service,
	resolver *discounts.Resolver,
	registry *discounts.Registry,
	submitter *cartlines.Submitter,
	checkoutMetrics *metrics.CheckoutMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, statePinger))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/configurator", func(r chi.Router) {
			r.Route("/sets", func(r chi.Router) {
				r.Get("/", controllers.ConfiguratorListSets(setsService, logg))
				r.Post("/", controllers.ConfiguratorAddSet(setsService, logg))
				r.Put("/active/{setId}", controllers.ConfiguratorSetActive(setsService, logg))
				r.Route("/{setId}", func(r chi.Router) {
					r.Patch("/", controllers.ConfiguratorUpdateSet(setsService, logg))
					r.Delete("/", controllers.ConfiguratorDeleteSet(setsService, logg))
					r.Post("/duplicate", controllers.ConfiguratorDuplicateSet(setsService, logg))
					r.Post("/template/{templateId}", controllers.CatalogApplyTemplate(setsService, logg))
					r.Route("/products", func(r chi.Router) {
						r.Post("/", controllers.ConfiguratorAddProduct(setsService, logg))
						r.Put("/{index}", controllers.ConfiguratorUpdateProduct(setsService, logg))
						r.Delete("/{index}", controllers.ConfiguratorRemoveProduct(setsService, logg))
					})
				})
			})
			r.Get("/totals", controllers.ConfiguratorTotals(setsService, registry, logg))
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Get("/codes", controllers.DiscountCodes())
			r.Post("/validate", controllers.DiscountValidate(resolver, logg))
			r.Post("/apply", controllers.DiscountApply(resolver, registry, setsService, logg))
			r.Delete("/{setId}", controllers.DiscountRemove(registry, setsService, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts())
			r.Get("/templates", controllers.CatalogTemplates())
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/preview", controllers.CartPreview(setsService, registry, logg))
			r.Post("/submit", controllers.CartSubmit(setsService, registry, submitter, logg))
		})

		r.Post("/checkout/validate", controllers.CheckoutValidate(checkoutMetrics, logg))
	})

	return r
}
