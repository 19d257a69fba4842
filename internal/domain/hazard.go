package domain

import "context"

// HazardType classifies a charted fixed hazard.
type HazardType string

const (
	HazardAquaculture  HazardType = "aquaculture"  // fish farms
	HazardCable        HazardType = "cable"        // submarine cable crossings
	HazardInstallation HazardType = "installation" // platforms, turbines
)

// KnownHazardType reports whether a value is one of the charted hazard types.
func KnownHazardType(t HazardType) bool {
	switch t {
	case HazardAquaculture, HazardCable, HazardInstallation:
		return true
	default:
		return false
	}
}

// HazardLocation is one charted hazard. RadiusM marks the extent of spread
// structures such as cable corridors; zero means a point hazard.
type HazardLocation struct {
	Type    HazardType `json:"type"`
	Name    string     `json:"name"`
	Lat     float64    `json:"lat"`
	Lon     float64    `json:"lon"`
	RadiusM float64    `json:"radius_m,omitempty"`
}

// HazardHit is a hazard within query range, with the distance and initial
// bearing from the queried position.
type HazardHit struct {
	Hazard     HazardLocation `json:"hazard"`
	DistanceKm float64        `json:"distance_km"`
	BearingDeg float64        `json:"bearing_deg"`
}

// HazardSource supplies a complete hazard catalog. Each successful load
// replaces the previous snapshot wholesale.
type HazardSource interface {
	ListHazards(ctx context.Context) ([]HazardLocation, error)
}
