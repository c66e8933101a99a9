package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// productsResolved counts product resolutions by outcome (created, reused).
	productsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_products_resolved_total",
		Help: "Product resolutions by outcome",
	}, []string{"outcome"})

	// pricesResolved counts price resolutions by outcome (created, duplicate).
	pricesResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_prices_resolved_total",
		Help: "Price resolutions by outcome",
	}, []string{"outcome"})

	// batchCombinations tracks how many combinations each batch expands to.
	batchCombinations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_batch_combinations_count",
		Help:    "Number of combinations per batch",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})

	// batchAborts counts batches aborted by a failing combination.
	batchAborts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_batch_aborts_total",
		Help: "Batches aborted by a store error",
	})

	// referenceLoadErrors counts failed lookup loads per dimension.
	referenceLoadErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_reference_load_errors_total",
		Help: "Failed reference data loads by dimension",
	}, []string{"dimension"})

	// storeDuration tracks store round trips per operation.
	storeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_store_duration_seconds",
		Help:    "Store round trip duration by operation",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 5},
	}, []string{"op"})
)

// MetricsRecorder provides methods to record pricing metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordProduct records a product resolution.
func (m *MetricsRecorder) RecordProduct(created bool) {
	if created {
		productsResolved.WithLabelValues("created").Inc()
		return
	}
	productsResolved.WithLabelValues("reused").Inc()
}

// RecordPrice records a price resolution.
func (m *MetricsRecorder) RecordPrice(created bool) {
	if created {
		pricesResolved.WithLabelValues("created").Inc()
		return
	}
	pricesResolved.WithLabelValues("duplicate").Inc()
}

// RecordBatch records the size of a batch and whether it aborted.
func (m *MetricsRecorder) RecordBatch(combinations int, aborted bool) {
	batchCombinations.Observe(float64(combinations))
	if aborted {
		batchAborts.Inc()
	}
}

// RecordReferenceError records a failed reference load.
func (m *MetricsRecorder) RecordReferenceError(dimension string) {
	referenceLoadErrors.WithLabelValues(dimension).Inc()
}

// RecordStore records the duration of a store call.
func (m *MetricsRecorder) RecordStore(op string, seconds float64) {
	storeDuration.WithLabelValues(op).Observe(seconds)
}
