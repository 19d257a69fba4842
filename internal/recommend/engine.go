package recommend

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
	"github.com/couchcryptid/vessel-risk-service/internal/observability"
)

// Engine turns merged risk findings into prioritized recommendations,
// records them in history, and estimates the impact of the primary one.
type Engine struct {
	history *History
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewEngine(history *History, metrics *observability.Metrics, logger *slog.Logger) *Engine {
	return &Engine{history: history, metrics: metrics, logger: logger}
}

// Recommend builds one recommendation per risk finding, assigns IDs,
// records them in history, and returns them ordered by priority along
// with the primary recommendation and its estimated impact.
func (e *Engine) Recommend(vessel domain.VesselSnapshot, risks []domain.Risk, weather domain.WeatherObservation) ([]domain.Recommendation, *domain.Recommendation, domain.ROIEstimate) {
	recs := domain.BuildRecommendations(risks, vessel)
	for i := range recs {
		recs[i].ID = uuid.NewString()
		e.metrics.Recommendations.WithLabelValues(string(recs[i].Action)).Inc()
	}

	e.history.Add(recs...)
	e.metrics.HistorySize.Set(float64(e.history.Size()))

	primary := domain.SelectPrimary(recs)
	roi := domain.EstimateROI(vessel, primary, weather)

	e.logger.Debug("recommendations built",
		"mmsi", vessel.MMSI,
		"count", len(recs),
	)
	return recs, primary, roi
}

// History returns up to limit recent recommendations, newest first,
// optionally filtered by MMSI.
func (e *Engine) History(limit int, mmsi string) []domain.Recommendation {
	return e.history.Recent(limit, mmsi)
}
