package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the prediction API.
type Metrics struct {
	PredictRequests *prometheus.CounterVec // labels: outcome={success,bad_request,error}
	PredictDuration prometheus.Histogram
	EstimatedTons   prometheus.Histogram

	// Advisor (language-model) metrics.
	AdvisorRequests *prometheus.CounterVec   // labels: provider, outcome={success,error}
	AdvisorDuration *prometheus.HistogramVec // labels: provider
	AdvisorCache    *prometheus.CounterVec   // labels: result={hit,miss}
	AdvisorEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PredictRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oyster_api",
			Name:      "predict_requests_total",
			Help:      "Prediction requests by outcome.",
		}, []string{"outcome"}),
		PredictDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "oyster_api",
			Name:      "predict_duration_seconds",
			Help:      "Duration of a complete validate-estimate-recommend cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EstimatedTons: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "oyster_api",
			Name:      "estimated_production_tons",
			Help:      "Distribution of predicted production values in metric tons.",
			Buckets:   []float64{0, 1, 2.5, 5, 10, 15, 20, 30, 50},
		}),
		AdvisorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oyster_api",
			Name:      "advisor_requests_total",
			Help:      "Language-model completion requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		AdvisorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "oyster_api",
			Name:      "advisor_duration_seconds",
			Help:      "Language-model API request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),
		AdvisorCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oyster_api",
			Name:      "advisor_cache_total",
			Help:      "Advisor cache lookups by result.",
		}, []string{"result"}),
		AdvisorEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "oyster_api",
			Name:      "advisor_enabled",
			Help:      "1 when a language-model advisor is configured, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.PredictRequests,
		m.PredictDuration,
		m.EstimatedTons,
		m.AdvisorRequests,
		m.AdvisorDuration,
		m.AdvisorCache,
		m.AdvisorEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PredictRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "oyster_api", Name: "predict_requests_total"}, []string{"outcome"}),
		PredictDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "oyster_api", Name: "predict_duration_seconds"}),
		EstimatedTons:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "oyster_api", Name: "estimated_production_tons"}),
		AdvisorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "oyster_api", Name: "advisor_requests_total"}, []string{"provider", "outcome"}),
		AdvisorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "oyster_api", Name: "advisor_duration_seconds"}, []string{"provider"}),
		AdvisorCache:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "oyster_api", Name: "advisor_cache_total"}, []string{"result"}),
		AdvisorEnabled:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "oyster_api", Name: "advisor_enabled"}),
	}
}
