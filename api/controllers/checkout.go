package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/giftloom/configurator-backend/api/responses"
	"github.com/giftloom/configurator-backend/internal/bundles"
	pkgerrors "github.com/giftloom/configurator-backend/pkg/errors"
	"github.com/giftloom/configurator-backend/pkg/logger"
	"github.com/giftloom/configurator-backend/pkg/metrics"
)

// CheckoutValidate runs the bundle rules over a cart snapshot. The response
// is the bare operations envelope, not the usual success wrapper, because the
// checkout platform consumes it directly. The run itself never fails; only a
// body that is not a cart errors.
func CheckoutValidate(m *metrics.CheckoutMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer io.Copy(io.Discard, r.Body)

		var cart bundles.Cart
		decoder := json.NewDecoder(r.Body)
		if err := decoder.Decode(&cart); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart payload"))
			return
		}

		start := time.Now()
		result := bundles.Run(cart)
		errorCount := len(result.Operations[0].ValidationAdd.Errors)
		m.ObserveValidation("http", time.Since(start), errorCount)

		if logg != nil && errorCount > 0 {
			ctx := logg.WithField(r.Context(), "error_count", errorCount)
			logg.Info(ctx, "checkout validation raised errors")
		}

		responses.WriteRaw(w, http.StatusOK, result)
	}
}
