package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
	"github.com/couchcryptid/vessel-risk-service/internal/observability"
)

// Per-source circuit breaker settings. A tripped source is skipped for the
// open interval and the chain falls through to the next one.
const (
	breakerConsecutiveFailures = 5
	breakerOpenInterval        = 30 * time.Second
)

// Acquirer resolves weather for a position: cache, then each source in
// priority order, then the synthetic seasonal estimate. GetWeather is total
// and never returns an error; degraded results are marked by provenance.
type Acquirer struct {
	sources  []domain.WeatherSource
	breakers map[string]*gobreaker.CircuitBreaker[domain.WeatherReading]
	cache    *Cache
	group    singleflight.Group
	timeout  time.Duration
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewAcquirer creates an acquirer over the given source chain. Sources are
// tried in slice order; each gets its own circuit breaker.
func NewAcquirer(sources []domain.WeatherSource, cache *Cache, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Acquirer {
	breakers := make(map[string]*gobreaker.CircuitBreaker[domain.WeatherReading], len(sources))
	for _, src := range sources {
		breakers[src.Name()] = gobreaker.NewCircuitBreaker[domain.WeatherReading](gobreaker.Settings{
			Name:    src.Name(),
			Timeout: breakerOpenInterval,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerConsecutiveFailures
			},
		})
	}
	return &Acquirer{
		sources:  sources,
		breakers: breakers,
		cache:    cache,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetWeather returns the observation for a position. Concurrent calls for
// the same grid cell share one upstream fetch.
func (a *Acquirer) GetWeather(ctx context.Context, lat, lon float64) domain.WeatherObservation {
	obs, result := a.cache.Lookup(lat, lon)
	a.metrics.WeatherCache.WithLabelValues(string(result)).Inc()
	if result == CacheHit {
		return obs
	}

	key := fmt.Sprintf("%.2f,%.2f", lat, lon)
	v, _, _ := a.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have filled the cell while we waited.
		if obs, result := a.cache.Lookup(lat, lon); result == CacheHit {
			return obs, nil
		}
		obs := a.fetch(ctx, lat, lon)
		a.cache.Put(lat, lon, obs)
		return obs, nil
	})
	return v.(domain.WeatherObservation)
}

// fetch walks the source chain and falls back to the synthetic estimate.
func (a *Acquirer) fetch(ctx context.Context, lat, lon float64) domain.WeatherObservation {
	for _, src := range a.sources {
		reading, err := a.fetchOne(ctx, src, lat, lon)
		if err != nil {
			a.logger.Warn("weather source failed", "source", src.Name(), "error", err)
			continue
		}
		if !reading.Plausible() {
			a.metrics.WeatherSourceRequests.WithLabelValues(src.Name(), "implausible").Inc()
			a.logger.Warn("weather source returned implausible reading", "source", src.Name())
			continue
		}
		a.metrics.WeatherSourceRequests.WithLabelValues(src.Name(), "success").Inc()
		return a.resolve(src.Name(), reading)
	}

	a.logger.Warn("all weather sources failed, using synthetic estimate", "lat", lat, "lon", lon)
	return Synthetic(lat, lon, clock.Now())
}

func (a *Acquirer) fetchOne(ctx context.Context, src domain.WeatherSource, lat, lon float64) (domain.WeatherReading, error) {
	start := clock.Now()
	reading, err := a.breakers[src.Name()].Execute(func() (domain.WeatherReading, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return src.Fetch(fetchCtx, lat, lon)
	})
	a.metrics.WeatherSourceDuration.WithLabelValues(src.Name()).Observe(clock.Now().Sub(start).Seconds())
	if err != nil {
		a.metrics.WeatherSourceRequests.WithLabelValues(src.Name(), "error").Inc()
		return domain.WeatherReading{}, err
	}
	return reading, nil
}

// resolve completes a raw reading into a full observation. Wave height is
// measured when the source reported one, estimated from wind otherwise;
// both end up clamped to the same band.
func (a *Acquirer) resolve(source string, reading domain.WeatherReading) domain.WeatherObservation {
	obs := domain.WeatherObservation{
		SourceName: source,
		FetchedAt:  clock.Now(),
	}
	if reading.WindSpeedMS != nil {
		obs.WindSpeedMS = *reading.WindSpeedMS
	}
	if reading.WindDirectionDeg != nil {
		obs.WindDirectionDeg = *reading.WindDirectionDeg
	}
	if reading.TemperatureC != nil {
		obs.TemperatureC = *reading.TemperatureC
	}

	if reading.WaveHeightM != nil {
		obs.WaveHeightM = domain.ClampWaveHeight(*reading.WaveHeightM)
		obs.Provenance = domain.ProvenanceMeasured
	} else {
		obs.WaveHeightM = domain.EstimateWaveHeight(obs.WindSpeedMS)
		obs.Provenance = domain.ProvenanceEstimated
	}
	obs.Confidence = domain.ConfidenceFor(obs.Provenance)
	return obs
}
