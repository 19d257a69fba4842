package hazard

import (
	"sync/atomic"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
)

// Catalog holds the current hazard snapshot. Load replaces the whole
// snapshot atomically, so queries never see a partial catalog and never
// block a reload.
type Catalog struct {
	snapshot atomic.Pointer[[]domain.HazardLocation]
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	c := &Catalog{}
	empty := make([]domain.HazardLocation, 0)
	c.snapshot.Store(&empty)
	return c
}

// Load replaces the snapshot with a copy of hazards.
func (c *Catalog) Load(hazards []domain.HazardLocation) {
	snap := make([]domain.HazardLocation, len(hazards))
	copy(snap, hazards)
	c.snapshot.Store(&snap)
}

// FindNearby returns every hazard within radiusKm of the position, with
// distance and initial bearing from it. Linear scan: catalogs are hundreds
// of entries, not millions.
func (c *Catalog) FindNearby(lat, lon, radiusKm float64) []domain.HazardHit {
	var hits []domain.HazardHit
	for _, h := range *c.snapshot.Load() {
		d := domain.DistanceKm(lat, lon, h.Lat, h.Lon)
		if d > radiusKm {
			continue
		}
		hits = append(hits, domain.HazardHit{
			Hazard:     h,
			DistanceKm: d,
			BearingDeg: domain.BearingDegrees(lat, lon, h.Lat, h.Lon),
		})
	}
	return hits
}

// Size reports the number of hazards in the current snapshot.
func (c *Catalog) Size() int {
	return len(*c.snapshot.Load())
}
