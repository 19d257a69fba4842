package domain

import "fmt"

// Base safe speed in knots by vessel type.
var baseSafeSpeeds = map[VesselType]float64{
	VesselCargo:     18,
	VesselTanker:    16,
	VesselPassenger: 20,
	VesselFishing:   12,
	VesselContainer: 19,
	VesselOther:     15,
}

// Safe-speed adjustment thresholds. The adjusted speed shrinks
// multiplicatively in heavy weather and deep draught and never drops below
// the floor.
const (
	windSpeedAdjustMS   = 10.0 // above this, safe speed is cut 15%
	waveSpeedAdjustM    = 2.0  // above this, safe speed is cut 20%
	draughtSpeedAdjustM = 10.0 // above this, safe speed is cut 10%
	safeSpeedFloorKn    = 5.0

	excessSpeedRatio     = 1.10
	excessSpeedHighRatio = 1.30
)

// Wind and wave alert thresholds for the primary pass. Wind between the
// adjustment threshold and the alert threshold affects safe speed without
// producing a finding of its own.
const (
	windAlertMS = 15.0
	windHighMS  = 20.0

	waveAlertM = 3.5
	waveHighM  = 5.0
)

// Hazard proximity bands in km. Hazards between the medium band and the
// scan radius are counted but not alerted on.
const (
	HazardScanRadiusKm = 2.0
	hazardHighKm       = 0.5
	hazardMediumKm     = 1.0
)

// Route deviation thresholds in km, evaluated only when the caller tracks
// a planned route.
const (
	deviationMediumKm = 5.0
	deviationHighKm   = 10.0
)

const nightVisibilityFactor = 0.4

// BaseSafeSpeed returns the unadjusted safe speed in knots for a vessel type.
func BaseSafeSpeed(t VesselType) float64 {
	if v, ok := baseSafeSpeeds[t]; ok {
		return v
	}
	return baseSafeSpeeds[VesselOther]
}

// AdjustedSafeSpeed reduces the base safe speed for the current weather and
// the vessel's draught, with a 5 kn floor.
func AdjustedSafeSpeed(vessel VesselSnapshot, weather WeatherObservation) float64 {
	speed := BaseSafeSpeed(vessel.Type)
	if weather.WindSpeedMS > windSpeedAdjustMS {
		speed *= 0.85
	}
	if weather.WaveHeightM > waveSpeedAdjustM {
		speed *= 0.80
	}
	if vessel.DraughtM > draughtSpeedAdjustM {
		speed *= 0.90
	}
	if speed < safeSpeedFloorKn {
		return safeSpeedFloorKn
	}
	return speed
}

// AssessRisks runs both rule passes over one snapshot and merges the
// findings. Deterministic for fixed inputs and clock; missing optional
// fields degrade to defaults instead of failing.
func AssessRisks(vessel VesselSnapshot, weather WeatherObservation, hazards []HazardHit) []Risk {
	return MergeRisks(assessPrimary(vessel, weather, hazards), assessLegacy(vessel, weather))
}

// assessPrimary is the current-generation rule pass: speed, wind, waves,
// night, hazard proximity, route deviation, and data limitations.
func assessPrimary(vessel VesselSnapshot, weather WeatherObservation, hazards []HazardHit) []Risk {
	risks := make([]Risk, 0, 4)
	if r := assessSpeed(vessel, weather); r != nil {
		risks = append(risks, *r)
	}
	if r := assessWind(weather); r != nil {
		risks = append(risks, *r)
	}
	if r := assessWaves(weather); r != nil {
		risks = append(risks, *r)
	}
	if r := assessNight(); r != nil {
		risks = append(risks, *r)
	}
	if r := assessHazards(hazards); r != nil {
		risks = append(risks, *r)
	}
	if r := assessRouteDeviation(vessel); r != nil {
		risks = append(risks, *r)
	}
	return append(risks, assessDataLimitations(vessel, weather)...)
}

func assessSpeed(vessel VesselSnapshot, weather WeatherObservation) *Risk {
	safe := AdjustedSafeSpeed(vessel, weather)
	if vessel.SpeedKn <= safe*excessSpeedRatio {
		return nil
	}

	ratio := vessel.SpeedKn / safe
	severity := SeverityMedium
	if ratio > excessSpeedHighRatio {
		severity = SeverityHigh
	}

	return &Risk{
		Type:     RiskExcessiveSpeed,
		Severity: severity,
		Message: fmt.Sprintf("speed %.1f kn is %.0f%% of adjusted safe speed %.1f kn",
			vessel.SpeedKn, ratio*100, safe),
		Details: RiskDetails{
			SpeedKn:     vessel.SpeedKn,
			SafeSpeedKn: safe,
			SpeedRatio:  ratio,
		},
		DetectedAt: clock.Now(),
	}
}

func assessWind(weather WeatherObservation) *Risk {
	if weather.WindSpeedMS <= windAlertMS {
		return nil
	}

	severity := SeverityMedium
	if weather.WindSpeedMS > windHighMS {
		severity = SeverityHigh
	}
	force, label := BeaufortScale(weather.WindSpeedMS)

	return &Risk{
		Type:     RiskHighWinds,
		Severity: severity,
		Message:  fmt.Sprintf("wind %.1f m/s, Beaufort %d (%s)", weather.WindSpeedMS, force, label),
		Details: RiskDetails{
			WindSpeedMS:   weather.WindSpeedMS,
			BeaufortForce: force,
			BeaufortLabel: label,
		},
		DetectedAt: clock.Now(),
	}
}

func assessWaves(weather WeatherObservation) *Risk {
	if weather.WaveHeightM <= waveAlertM {
		return nil
	}

	severity := SeverityMedium
	if weather.WaveHeightM > waveHighM {
		severity = SeverityHigh
	}
	period := EstimateWavePeriod(weather.WaveHeightM)

	return &Risk{
		Type:     RiskHighWaves,
		Severity: severity,
		Message:  fmt.Sprintf("wave height %.1f m, period ~%.1f s", weather.WaveHeightM, period),
		Details: RiskDetails{
			WaveHeightM: weather.WaveHeightM,
			WavePeriodS: period,
		},
		DetectedAt: clock.Now(),
	}
}

// assessNight flags operation inside the primary night window, UTC hours
// 18 through 23 and 0 through 6. The legacy pass uses a narrower window;
// both are preserved (see assessLegacy).
func assessNight() *Risk {
	hour := clock.Now().UTC().Hour()
	if hour > 6 && hour < 18 {
		return nil
	}

	h := hour
	return &Risk{
		Type:     RiskNightOperation,
		Severity: SeverityLow,
		Message:  fmt.Sprintf("night operation at %02d:00 UTC, reduced visibility", hour),
		Details: RiskDetails{
			UTCHour:          &h,
			VisibilityFactor: nightVisibilityFactor,
		},
		DetectedAt: clock.Now(),
	}
}

// assessHazards alerts on the nearest hazard within the alert bands. The
// hit list covers the full scan radius; hits beyond the medium band only
// contribute to the in-range count.
func assessHazards(hits []HazardHit) *Risk {
	if len(hits) == 0 {
		return nil
	}

	nearest := hits[0]
	for _, h := range hits[1:] {
		if h.DistanceKm < nearest.DistanceKm {
			nearest = h
		}
	}

	var severity Severity
	switch {
	case nearest.DistanceKm < hazardHighKm:
		severity = SeverityHigh
	case nearest.DistanceKm < hazardMediumKm:
		severity = SeverityMedium
	default:
		return nil
	}

	return &Risk{
		Type:     RiskHazardProximity,
		Severity: severity,
		Message: fmt.Sprintf("%s %q %.2f km away, bearing %03.0f",
			nearest.Hazard.Type, nearest.Hazard.Name, nearest.DistanceKm, nearest.BearingDeg),
		Details: RiskDetails{
			HazardName:       nearest.Hazard.Name,
			HazardType:       nearest.Hazard.Type,
			HazardDistanceKm: nearest.DistanceKm,
			HazardBearingDeg: nearest.BearingDeg,
			HazardsInRange:   len(hits),
		},
		DetectedAt: clock.Now(),
	}
}

func assessRouteDeviation(vessel VesselSnapshot) *Risk {
	if vessel.RouteDeviationKm == nil {
		return nil
	}

	deviation := *vessel.RouteDeviationKm
	var severity Severity
	switch {
	case deviation > deviationHighKm:
		severity = SeverityHigh
	case deviation > deviationMediumKm:
		severity = SeverityMedium
	default:
		return nil
	}

	return &Risk{
		Type:       RiskRouteDeviation,
		Severity:   severity,
		Message:    fmt.Sprintf("%.1f km off planned route", deviation),
		Details:    RiskDetails{DeviationKm: deviation},
		DetectedAt: clock.Now(),
	}
}

// assessDataLimitations flags degraded inputs: an unknown position (hazard
// screening was skipped upstream) and weather from the synthetic fallback.
// The two findings carry different severities so the merge keeps both.
func assessDataLimitations(vessel VesselSnapshot, weather WeatherObservation) []Risk {
	var risks []Risk
	if !vessel.HasPosition() {
		risks = append(risks, Risk{
			Type:       RiskDataLimitation,
			Severity:   SeverityMedium,
			Message:    "vessel position unknown, hazard screening skipped",
			Details:    RiskDetails{Reason: "no_position"},
			DetectedAt: clock.Now(),
		})
	}
	if weather.Provenance == ProvenanceFallback {
		risks = append(risks, Risk{
			Type:       RiskDataLimitation,
			Severity:   SeverityLow,
			Message:    "weather from synthetic seasonal estimate",
			Details:    RiskDetails{Reason: "fallback_weather", WeatherOrigin: weather.Provenance},
			DetectedAt: clock.Now(),
		})
	}
	return risks
}
