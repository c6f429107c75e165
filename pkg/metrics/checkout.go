package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records validation and cart-submission activity.
type CheckoutMetrics struct {
	validationDuration *prometheus.HistogramVec
	validationErrors   *prometheus.CounterVec
	submissions        *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	validationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_validation_duration_seconds",
		Help:    "Duration of bundle validation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	validationErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_validation_errors_total",
		Help: "Validation errors emitted per run.",
	}, []string{"source"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_submissions_total",
		Help: "Cart submission attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(validationDuration, validationErrors, submissions)
	return &CheckoutMetrics{
		validationDuration: validationDuration,
		validationErrors:   validationErrors,
		submissions:        submissions,
	}
}

// ObserveValidation records a validation run and its error count.
func (c *CheckoutMetrics) ObserveValidation(source string, duration time.Duration, errorCount int) {
	if c == nil || c.validationDuration == nil {
		return
	}
	c.validationDuration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
	c.validationErrors.WithLabelValues(normalizeLabel(source)).Add(float64(errorCount))
}

// IncSubmission increments the submission counter for the given outcome.
func (c *CheckoutMetrics) IncSubmission(outcome string) {
	if c == nil || c.submissions == nil {
		return
	}
	c.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
