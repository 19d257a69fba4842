package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
	"github.com/couchcryptid/vessel-risk-service/internal/observability"
)

// WeatherProvider resolves a complete observation for a position. The
// production implementation never fails; it degrades through fallbacks
// and records provenance on the result.
type WeatherProvider interface {
	GetWeather(ctx context.Context, lat, lon float64) domain.WeatherObservation
}

// HazardFinder reports catalogued hazards within radiusKm of a position.
type HazardFinder interface {
	FindNearby(lat, lon, radiusKm float64) []domain.HazardHit
}

// Recommender turns findings into prioritized recommendations and keeps
// the recommendation history.
type Recommender interface {
	Recommend(vessel domain.VesselSnapshot, risks []domain.Risk, weather domain.WeatherObservation) ([]domain.Recommendation, *domain.Recommendation, domain.ROIEstimate)
	History(limit int, mmsi string) []domain.Recommendation
}

// AlertSink receives recommendation results that produced findings.
type AlertSink interface {
	PublishAlert(ctx context.Context, result RecommendationResult) error
}

// ReadinessChecker reports whether a dependency is ready to serve.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// AssessmentResult is the complete answer for one vessel snapshot.
// Degradation shows up in the fields (weather provenance, confidence,
// DATA_LIMITATION findings), never as an error.
type AssessmentResult struct {
	Vessel     domain.VesselSnapshot     `json:"vessel"`
	Weather    domain.WeatherObservation `json:"weather"`
	Risks      []domain.Risk             `json:"risks"`
	Summary    domain.RiskSummary        `json:"summary"`
	AssessedAt time.Time                 `json:"assessed_at"`
}

// RecommendationResult extends an assessment with prioritized actions and
// the estimated impact of the primary one.
type RecommendationResult struct {
	AssessmentResult
	Recommendations []domain.Recommendation `json:"recommendations"`
	Primary         *domain.Recommendation  `json:"primary,omitempty"`
	ROI             domain.ROIEstimate      `json:"roi"`
}

// Assessor composes weather acquisition, hazard lookup, the rule passes,
// and the recommendation engine behind the service's public operations.
type Assessor struct {
	weather     WeatherProvider
	hazards     HazardFinder
	recommender Recommender
	sink        AlertSink
	readiness   ReadinessChecker
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates an Assessor. A nil sink disables alert publishing; a nil
// readiness checker reports ready immediately.
func New(weather WeatherProvider, hazards HazardFinder, recommender Recommender, sink AlertSink, readiness ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Assessor {
	return &Assessor{
		weather:     weather,
		hazards:     hazards,
		recommender: recommender,
		sink:        sink,
		readiness:   readiness,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness delegates to the configured checker, or reports ready
// when none is configured.
func (a *Assessor) CheckReadiness(ctx context.Context) error {
	if a.readiness == nil {
		return nil
	}
	return a.readiness.CheckReadiness(ctx)
}

// Assess normalizes the snapshot, resolves weather and nearby hazards, and
// runs both rule passes. Always returns a result; an unknown position skips
// the hazard scan and surfaces as a DATA_LIMITATION finding instead.
func (a *Assessor) Assess(ctx context.Context, vessel domain.VesselSnapshot) AssessmentResult {
	start := clock.Now()
	v := domain.NormalizeVessel(vessel)

	weather := a.weather.GetWeather(ctx, v.Lat, v.Lon)

	var hazards []domain.HazardHit
	if v.HasPosition() {
		hazards = a.hazards.FindNearby(v.Lat, v.Lon, domain.HazardScanRadiusKm)
	}

	risks := domain.AssessRisks(v, weather, hazards)
	summary := domain.SummarizeRisks(risks)

	a.metrics.AssessmentsTotal.Inc()
	a.metrics.AssessmentDuration.Observe(clock.Now().Sub(start).Seconds())
	for _, r := range risks {
		a.metrics.RisksDetected.WithLabelValues(string(r.Type), string(r.Severity)).Inc()
	}

	a.logger.Debug("assessment completed",
		"mmsi", v.MMSI,
		"risks", len(risks),
		"highest_severity", summary.HighestSeverity,
		"weather_source", weather.SourceName,
	)

	return AssessmentResult{
		Vessel:     v,
		Weather:    weather,
		Risks:      risks,
		Summary:    summary,
		AssessedAt: start,
	}
}

// Recommend assesses the snapshot and derives prioritized recommendations.
// Results with findings go to the alert sink when one is configured;
// publish failures are logged and counted, never propagated.
func (a *Assessor) Recommend(ctx context.Context, vessel domain.VesselSnapshot) RecommendationResult {
	assessment := a.Assess(ctx, vessel)

	recs, primary, roi := a.recommender.Recommend(assessment.Vessel, assessment.Risks, assessment.Weather)

	result := RecommendationResult{
		AssessmentResult: assessment,
		Recommendations:  recs,
		Primary:          primary,
		ROI:              roi,
	}

	a.publishAlert(ctx, result)
	return result
}

// History returns up to limit recent recommendations, newest first,
// optionally filtered by MMSI.
func (a *Assessor) History(limit int, mmsi string) []domain.Recommendation {
	return a.recommender.History(limit, mmsi)
}

func (a *Assessor) publishAlert(ctx context.Context, result RecommendationResult) {
	if a.sink == nil || len(result.Risks) == 0 {
		return
	}

	if err := a.sink.PublishAlert(ctx, result); err != nil {
		a.metrics.AlertsPublished.WithLabelValues("error").Inc()
		a.logger.Warn("alert publish failed",
			"error", err,
			"mmsi", result.Vessel.MMSI,
			"risks", len(result.Risks),
		)
		return
	}
	a.metrics.AlertsPublished.WithLabelValues("success").Inc()
}
