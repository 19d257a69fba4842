package domain

import (
	"strings"
	"time"
)

// VesselType classifies a vessel for safe-speed and dimension defaults.
type VesselType string

const (
	VesselCargo     VesselType = "cargo"
	VesselTanker    VesselType = "tanker"
	VesselPassenger VesselType = "passenger"
	VesselFishing   VesselType = "fishing"
	VesselContainer VesselType = "container"
	VesselOther     VesselType = "other"
)

// NormalizeVesselType maps a free-form AIS ship-type string onto the known
// set. Unrecognized values fall back to VesselOther rather than failing:
// an unknown type still gets the default safe-speed profile.
func NormalizeVesselType(value string) VesselType {
	switch t := VesselType(strings.ToLower(strings.TrimSpace(value))); t {
	case VesselCargo, VesselTanker, VesselPassenger, VesselFishing, VesselContainer:
		return t
	default:
		return VesselOther
	}
}

// VesselSnapshot is one vessel telemetry reading, assembled by the caller
// from AIS or manual input. Immutable for the duration of an assessment.
// Zero dimensions mean "absent": AIS static data frequently omits them, and
// NormalizeVessel substitutes per-type defaults.
type VesselSnapshot struct {
	MMSI             string     `json:"mmsi"`
	Lat              float64    `json:"lat"`
	Lon              float64    `json:"lon"`
	SpeedKn          float64    `json:"speed_kn"`
	CourseDeg        float64    `json:"course_deg"`
	Type             VesselType `json:"type"`
	LengthM          float64    `json:"length_m,omitempty"`
	DraughtM         float64    `json:"draught_m,omitempty"`
	WidthM           float64    `json:"width_m,omitempty"`
	RouteDeviationKm *float64   `json:"route_deviation_km,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
	Source           string     `json:"source,omitempty"` // "ais", "manual", "fallback"
	IsFallback       bool       `json:"is_fallback,omitempty"`
}

// defaultDimensions holds representative hull dimensions per vessel type,
// in metres. The tanker draught sits exactly on the 10 m deep-draught
// boundary so type defaults alone never trigger the draught speed cut.
var defaultDimensions = map[VesselType]struct{ length, draught, width float64 }{
	VesselCargo:     {150, 8, 22},
	VesselTanker:    {180, 10, 28},
	VesselPassenger: {160, 7, 25},
	VesselFishing:   {35, 5, 10},
	VesselContainer: {200, 10, 30},
	VesselOther:     {100, 7, 18},
}

// NormalizeVessel validates the vessel type and fills absent dimensions
// from per-type defaults.
func NormalizeVessel(v VesselSnapshot) VesselSnapshot {
	v.Type = NormalizeVesselType(string(v.Type))
	d := defaultDimensions[v.Type]
	if v.LengthM <= 0 {
		v.LengthM = d.length
	}
	if v.DraughtM <= 0 {
		v.DraughtM = d.draught
	}
	if v.WidthM <= 0 {
		v.WidthM = d.width
	}
	return v
}

// HasPosition reports whether the snapshot carries a usable fix.
func (v VesselSnapshot) HasPosition() bool {
	return !IsUnknownPosition(v.Lat, v.Lon)
}
