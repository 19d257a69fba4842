package weather

import (
	"math"
	"time"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
)

// monthlyClimate holds typical open-water wind and air temperature for the
// Norwegian coast around 58N, index 0 = January. Coarse on purpose: the
// fallback only has to keep assessments sane when every source is down.
var monthlyClimate = [12]struct {
	windMS float64
	tempC  float64
}{
	{9.0, -2.0},
	{8.5, -2.5},
	{7.5, 0.5},
	{6.5, 4.0},
	{5.5, 8.5},
	{5.0, 12.5},
	{4.5, 15.0},
	{5.0, 14.5},
	{6.5, 11.0},
	{7.5, 6.5},
	{8.5, 2.0},
	{9.0, -0.5},
}

// Per degree of latitude north of the reference, wind picks up and
// temperature drops.
const (
	climateReferenceLat = 58.0
	windPerDegreeNorth  = 0.15
	tempPerDegreeNorth  = 0.4
)

// Synthetic produces the deterministic seasonal fallback observation for a
// position. It always succeeds; provenance marks it for the downstream
// data-limitation rule.
func Synthetic(lat, lon float64, now time.Time) domain.WeatherObservation {
	m := monthlyClimate[now.UTC().Month()-1]
	north := math.Max(0, lat-climateReferenceLat)

	wind := m.windMS + north*windPerDegreeNorth
	return domain.WeatherObservation{
		WindSpeedMS:      wind,
		WindDirectionDeg: 225, // prevailing southwesterly
		WaveHeightM:      domain.EstimateWaveHeight(wind),
		TemperatureC:     m.tempC - north*tempPerDegreeNorth,
		Provenance:       domain.ProvenanceFallback,
		SourceName:       "synthetic",
		Confidence:       domain.ConfidenceFor(domain.ProvenanceFallback),
		FetchedAt:        now,
	}
}
