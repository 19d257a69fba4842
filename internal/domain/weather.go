package domain

import (
	"context"
	"math"
	"time"
)

// Provenance records how the wave height of an observation was obtained.
type Provenance string

const (
	ProvenanceMeasured  Provenance = "measured"  // wave height reported by the source
	ProvenanceEstimated Provenance = "estimated" // wave height derived from wind
	ProvenanceFallback  Provenance = "fallback"  // synthetic seasonal estimate
)

// Nominal confidence per provenance, attached to every observation.
const (
	confidenceMeasured  = 0.9
	confidenceEstimated = 0.7
	confidenceFallback  = 0.3
)

// Physical plausibility bounds for raw readings. Wind above the strongest
// recorded surface gust or temperature outside habitable-ocean range marks
// a corrupt payload.
const (
	maxPlausibleWindMS = 90.0
	minPlausibleTempC  = -60.0
	maxPlausibleTempC  = 60.0
)

// Wave height clamp bounds in metres. Measured and estimated heights are
// truncated into this band before any rule sees them.
const (
	MinWaveHeightM = 0.3
	MaxWaveHeightM = 8.0
)

// WeatherReading is a single provider's raw answer. Fields are optional
// because providers differ in coverage; the acquirer resolves readings into
// complete observations.
type WeatherReading struct {
	WindSpeedMS      *float64
	WindDirectionDeg *float64
	WaveHeightM      *float64
	TemperatureC     *float64
}

// Plausible reports whether the reading carries at least one anchor value
// (wind or temperature) and no present value outside its physical range.
// Implausible readings are discarded and the next source is tried.
func (r WeatherReading) Plausible() bool {
	if r.WindSpeedMS == nil && r.TemperatureC == nil {
		return false
	}
	if r.WindSpeedMS != nil && (*r.WindSpeedMS < 0 || *r.WindSpeedMS > maxPlausibleWindMS) {
		return false
	}
	if r.TemperatureC != nil && (*r.TemperatureC < minPlausibleTempC || *r.TemperatureC > maxPlausibleTempC) {
		return false
	}
	return true
}

// WeatherObservation is a fully populated weather snapshot for a position.
// Wave height is always present, measured or estimated, and already clamped.
type WeatherObservation struct {
	WindSpeedMS      float64    `json:"wind_speed_ms"`
	WindDirectionDeg float64    `json:"wind_direction_deg"`
	WaveHeightM      float64    `json:"wave_height_m"`
	TemperatureC     float64    `json:"temperature_c"`
	Provenance       Provenance `json:"provenance"`
	SourceName       string     `json:"source"`
	Confidence       float64    `json:"confidence"`
	FetchedAt        time.Time  `json:"fetched_at"`
}

// WeatherSource supplies raw weather for a position. One implementation per
// upstream provider; the acquirer tries them in priority order.
type WeatherSource interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64) (WeatherReading, error)
}

// ClampWaveHeight truncates a wave height into [MinWaveHeightM, MaxWaveHeightM].
func ClampWaveHeight(h float64) float64 {
	return math.Min(math.Max(h, MinWaveHeightM), MaxWaveHeightM)
}

// EstimateWaveHeight derives significant wave height in metres from wind
// speed using a calibrated open-water growth curve. The additive floor
// below 5 m/s models residual swell present in sheltered fjords even near
// calm wind; it ends abruptly at 5 m/s, so the curve dips there before the
// quadratic term overtakes the floor around 6.7 m/s. The result is clamped
// into [MinWaveHeightM, MaxWaveHeightM].
func EstimateWaveHeight(windSpeedMS float64) float64 {
	h := 0.0246 * windSpeedMS * windSpeedMS
	if windSpeedMS < 5 {
		h += 0.5
	}
	return ClampWaveHeight(h)
}

// EstimateWavePeriod approximates the dominant wave period in seconds from
// significant wave height, using the deep-water relation T = 3.85*sqrt(H).
func EstimateWavePeriod(waveHeightM float64) float64 {
	if waveHeightM <= 0 {
		return 0
	}
	return 3.85 * math.Sqrt(waveHeightM)
}

// beaufortSteps maps the exclusive upper wind-speed bound of each Beaufort
// force (m/s) to its label. Force 12 is open-ended.
var beaufortSteps = []struct {
	upperMS float64
	label   string
}{
	{0.5, "Calm"},
	{1.5, "Light air"},
	{3.3, "Light breeze"},
	{5.5, "Gentle breeze"},
	{8.0, "Moderate breeze"},
	{10.8, "Fresh breeze"},
	{13.9, "Strong breeze"},
	{17.2, "Near gale"},
	{20.8, "Gale"},
	{24.5, "Strong gale"},
	{28.5, "Storm"},
	{32.7, "Violent storm"},
}

// BeaufortScale classifies wind speed on the 13-step Beaufort scale,
// returning the force number (0 through 12) and its label.
func BeaufortScale(windSpeedMS float64) (int, string) {
	for force, step := range beaufortSteps {
		if windSpeedMS < step.upperMS {
			return force, step.label
		}
	}
	return 12, "Hurricane force"
}

// ConfidenceFor returns the nominal confidence score for a provenance tag.
func ConfidenceFor(p Provenance) float64 {
	switch p {
	case ProvenanceMeasured:
		return confidenceMeasured
	case ProvenanceEstimated:
		return confidenceEstimated
	default:
		return confidenceFallback
	}
}
