package domain

import "math"

const (
	// earthRadiusM is the mean Earth radius used by the haversine formula.
	earthRadiusM = 6371000.0

	metersPerNauticalMile = 1852.0

	// unknownPositionEpsilon bounds the AIS "no fix" sentinel: receivers
	// report (0,0) when a vessel has no position, and float noise can leave
	// values a hair off exact zero.
	unknownPositionEpsilon = 1e-7
)

// DistanceMeters returns the great-circle distance between two WGS-84
// coordinates via the haversine formula. Accuracy degrades near the poles
// and across the antimeridian; a known limitation, acceptable for the
// coastal waters this service covers.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// DistanceKm returns the great-circle distance in kilometres.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceMeters(lat1, lon1, lat2, lon2) / 1000.0
}

// DistanceNm returns the great-circle distance in nautical miles.
func DistanceNm(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceMeters(lat1, lon1, lat2, lon2) / metersPerNauticalMile
}

// BearingDegrees returns the initial great-circle bearing from the first
// point to the second, in degrees true, normalized to [0,360).
func BearingDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLambda := radians(lon2 - lon1)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// IsUnknownPosition reports whether a coordinate pair is the AIS "no fix"
// sentinel (both values effectively zero).
func IsUnknownPosition(lat, lon float64) bool {
	return math.Abs(lat) < unknownPositionEpsilon && math.Abs(lon) < unknownPositionEpsilon
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
