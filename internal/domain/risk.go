package domain

import "time"

// Severity orders risk findings: HIGH > MEDIUM > LOW, a total order.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Rank returns the numeric order of a severity for sorting and comparison.
// Unknown values rank below LOW.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// RiskType identifies the rule family that produced a finding.
type RiskType string

const (
	RiskHazardProximity RiskType = "HAZARD_PROXIMITY"
	RiskHighWinds       RiskType = "HIGH_WINDS"
	RiskHighWaves       RiskType = "HIGH_WAVES"
	RiskExcessiveSpeed  RiskType = "EXCESSIVE_SPEED"
	RiskNightOperation  RiskType = "NIGHT_OPERATION"
	RiskRouteDeviation  RiskType = "ROUTE_DEVIATION"
	RiskDataLimitation  RiskType = "DATA_LIMITATION"
)

// RiskDetails is the typed payload behind a finding. Only the fields
// relevant to the finding's type are populated; zero values are omitted
// from JSON. UTCHour is a pointer because midnight is a valid hour.
type RiskDetails struct {
	WindSpeedMS   float64 `json:"wind_speed_ms,omitempty"`
	BeaufortForce int     `json:"beaufort_force,omitempty"`
	BeaufortLabel string  `json:"beaufort_label,omitempty"`

	WaveHeightM float64 `json:"wave_height_m,omitempty"`
	WavePeriodS float64 `json:"wave_period_s,omitempty"`

	SpeedKn     float64 `json:"speed_kn,omitempty"`
	SafeSpeedKn float64 `json:"safe_speed_kn,omitempty"`
	SpeedRatio  float64 `json:"speed_ratio,omitempty"`

	HazardName       string     `json:"hazard_name,omitempty"`
	HazardType       HazardType `json:"hazard_type,omitempty"`
	HazardDistanceKm float64    `json:"hazard_distance_km,omitempty"`
	HazardBearingDeg float64    `json:"hazard_bearing_deg,omitempty"`
	HazardsInRange   int        `json:"hazards_in_range,omitempty"`

	UTCHour          *int    `json:"utc_hour,omitempty"`
	VisibilityFactor float64 `json:"visibility_factor,omitempty"`

	DeviationKm float64 `json:"deviation_km,omitempty"`

	Reason        string     `json:"reason,omitempty"`
	WeatherOrigin Provenance `json:"weather_origin,omitempty"`
}

// Risk is one immutable finding from the rule engine.
type Risk struct {
	Type       RiskType    `json:"type"`
	Severity   Severity    `json:"severity"`
	Message    string      `json:"message"`
	Details    RiskDetails `json:"details"`
	DetectedAt time.Time   `json:"detected_at"`
}

// RiskSummary is a pure reduction over a risk list.
type RiskSummary struct {
	Total           int              `json:"total"`
	BySeverity      map[Severity]int `json:"by_severity"`
	ByType          map[RiskType]int `json:"by_type"`
	HighestSeverity Severity         `json:"highest_severity,omitempty"`
}
