package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// risk assessment service.
type Metrics struct {
	AssessmentsTotal   prometheus.Counter
	AssessmentDuration prometheus.Histogram
	RisksDetected      *prometheus.CounterVec // labels: type, severity
	Recommendations    *prometheus.CounterVec // labels: action

	// Weather acquisition metrics.
	WeatherSourceRequests *prometheus.CounterVec   // labels: source, outcome={success,error,implausible}
	WeatherSourceDuration *prometheus.HistogramVec // labels: source
	WeatherCache          *prometheus.CounterVec   // labels: result={hit,miss,expired}

	// Hazard catalog metrics.
	HazardCatalogSize    prometheus.Gauge
	HazardCatalogRefresh *prometheus.CounterVec // labels: outcome={success,error}

	HistorySize     prometheus.Gauge
	AlertsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vessel_risk",
			Name:      "assessments_total",
			Help:      "Total vessel assessments performed.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vessel_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete assessment, weather fetch included.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		RisksDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vessel_risk",
			Name:      "risks_detected_total",
			Help:      "Risk findings by type and severity.",
		}, []string{"type", "severity"}),
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vessel_risk",
			Name:      "recommendations_total",
			Help:      "Recommendations issued by action.",
		}, []string{"action"}),
		WeatherSourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vessel_risk",
			Name:      "weather_source_requests_total",
			Help:      "Upstream weather requests by source and outcome.",
		}, []string{"source", "outcome"}),
		WeatherSourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vessel_risk",
			Name:      "weather_source_duration_seconds",
			Help:      "Upstream weather request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vessel_risk",
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		HazardCatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vessel_risk",
			Name:      "hazard_catalog_size",
			Help:      "Hazards in the current catalog snapshot.",
		}),
		HazardCatalogRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vessel_risk",
			Name:      "hazard_catalog_refresh_total",
			Help:      "Hazard catalog reload attempts by outcome.",
		}, []string{"outcome"}),
		HistorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vessel_risk",
			Name:      "history_size",
			Help:      "Recommendations currently retained in history.",
		}),
		AlertsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vessel_risk",
			Name:      "alerts_published_total",
			Help:      "Risk alerts published to Kafka by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.RisksDetected,
		m.Recommendations,
		m.WeatherSourceRequests,
		m.WeatherSourceDuration,
		m.WeatherCache,
		m.HazardCatalogSize,
		m.HazardCatalogRefresh,
		m.HistorySize,
		m.AlertsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "vessel_risk", Name: "assessments_total"}),
		AssessmentDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "vessel_risk", Name: "assessment_duration_seconds"}),
		RisksDetected:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vessel_risk", Name: "risks_detected_total"}, []string{"type", "severity"}),
		Recommendations:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vessel_risk", Name: "recommendations_total"}, []string{"action"}),
		WeatherSourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vessel_risk", Name: "weather_source_requests_total"}, []string{"source", "outcome"}),
		WeatherSourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "vessel_risk", Name: "weather_source_duration_seconds"}, []string{"source"}),
		WeatherCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vessel_risk", Name: "weather_cache_total"}, []string{"result"}),
		HazardCatalogSize:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "vessel_risk", Name: "hazard_catalog_size"}),
		HazardCatalogRefresh:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vessel_risk", Name: "hazard_catalog_refresh_total"}, []string{"outcome"}),
		HistorySize:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "vessel_risk", Name: "history_size"}),
		AlertsPublished:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vessel_risk", Name: "alerts_published_total"}, []string{"outcome"}),
	}
}
