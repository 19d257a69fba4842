package hazard

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
	"github.com/couchcryptid/vessel-risk-service/internal/observability"
)

// Refresher keeps a Catalog populated from a HazardSource: one load at
// startup, then periodic reloads. A failed reload keeps the previous
// snapshot; the service degrades to stale hazards rather than none.
type Refresher struct {
	source    domain.HazardSource
	catalog   *Catalog
	interval  time.Duration
	metrics   *observability.Metrics
	logger    *slog.Logger
	attempted atomic.Bool
}

// NewRefresher creates a refresher reloading catalog from source on the
// given interval.
func NewRefresher(source domain.HazardSource, catalog *Catalog, interval time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Refresher {
	return &Refresher{
		source:   source,
		catalog:  catalog,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run loads the catalog immediately and then on every tick until the
// context is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	r.refresh(ctx)

	ticker := clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("hazard refresher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			r.refresh(ctx)
		}
	}
}

// CheckReadiness returns nil once the initial load attempt has completed,
// successfully or not. A persistently failing source leaves the catalog
// empty but does not hold the service unready; the failure is visible in
// logs and the refresh counter.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.attempted.Load() {
		return errors.New("hazard catalog has not completed an initial load")
	}
	return nil
}

func (r *Refresher) refresh(ctx context.Context) {
	defer r.attempted.Store(true)

	hazards, err := r.source.ListHazards(ctx)
	if err != nil {
		r.metrics.HazardCatalogRefresh.WithLabelValues("error").Inc()
		r.logger.Error("hazard catalog refresh failed", "error", err)
		return
	}

	r.catalog.Load(hazards)
	r.metrics.HazardCatalogSize.Set(float64(len(hazards)))
	r.metrics.HazardCatalogRefresh.WithLabelValues("success").Inc()
	r.logger.Info("hazard catalog loaded", "hazards", len(hazards))
}
