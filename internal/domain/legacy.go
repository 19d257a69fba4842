package domain

import "fmt"

// Legacy pass thresholds. This pass predates the adjusted-speed model, the
// hazard catalog, and route tracking: speed is judged against the
// unadjusted base, wind and waves against absolute cutoffs, and the night
// window starts later. The drift from the primary pass looks unintentional
// but is preserved for regression parity; MergeRisks makes the overlap
// explicit.
const (
	legacySpeedMediumRatio = 1.15
	legacySpeedHighRatio   = 1.35

	legacyWindMediumMS = 12.0
	legacyWindHighMS   = 18.0

	legacyWaveMediumM = 3.0
	legacyWaveHighM   = 4.5
)

// assessLegacy is the first-generation rule pass: speed, wind, waves, and
// night only.
func assessLegacy(vessel VesselSnapshot, weather WeatherObservation) []Risk {
	risks := make([]Risk, 0, 2)
	if r := legacySpeed(vessel); r != nil {
		risks = append(risks, *r)
	}
	if r := legacyWind(weather); r != nil {
		risks = append(risks, *r)
	}
	if r := legacyWaves(weather); r != nil {
		risks = append(risks, *r)
	}
	if r := legacyNight(); r != nil {
		risks = append(risks, *r)
	}
	return risks
}

func legacySpeed(vessel VesselSnapshot) *Risk {
	base := BaseSafeSpeed(vessel.Type)
	ratio := vessel.SpeedKn / base

	var severity Severity
	switch {
	case ratio > legacySpeedHighRatio:
		severity = SeverityHigh
	case ratio > legacySpeedMediumRatio:
		severity = SeverityMedium
	default:
		return nil
	}

	return &Risk{
		Type:     RiskExcessiveSpeed,
		Severity: severity,
		Message: fmt.Sprintf("speed %.1f kn is %.0f%% of base speed %.1f kn for %s",
			vessel.SpeedKn, ratio*100, base, vessel.Type),
		Details: RiskDetails{
			SpeedKn:     vessel.SpeedKn,
			SafeSpeedKn: base,
			SpeedRatio:  ratio,
		},
		DetectedAt: clock.Now(),
	}
}

func legacyWind(weather WeatherObservation) *Risk {
	var severity Severity
	switch {
	case weather.WindSpeedMS > legacyWindHighMS:
		severity = SeverityHigh
	case weather.WindSpeedMS > legacyWindMediumMS:
		severity = SeverityMedium
	default:
		return nil
	}

	return &Risk{
		Type:       RiskHighWinds,
		Severity:   severity,
		Message:    fmt.Sprintf("strong wind %.1f m/s", weather.WindSpeedMS),
		Details:    RiskDetails{WindSpeedMS: weather.WindSpeedMS},
		DetectedAt: clock.Now(),
	}
}

func legacyWaves(weather WeatherObservation) *Risk {
	var severity Severity
	switch {
	case weather.WaveHeightM > legacyWaveHighM:
		severity = SeverityHigh
	case weather.WaveHeightM > legacyWaveMediumM:
		severity = SeverityMedium
	default:
		return nil
	}

	return &Risk{
		Type:       RiskHighWaves,
		Severity:   severity,
		Message:    fmt.Sprintf("rough sea, wave height %.1f m", weather.WaveHeightM),
		Details:    RiskDetails{WaveHeightM: weather.WaveHeightM},
		DetectedAt: clock.Now(),
	}
}

// legacyNight uses the narrower window: UTC hours 20 through 23 and 0
// through 5.
func legacyNight() *Risk {
	hour := clock.Now().UTC().Hour()
	if hour > 5 && hour < 20 {
		return nil
	}

	h := hour
	return &Risk{
		Type:       RiskNightOperation,
		Severity:   SeverityLow,
		Message:    "night passage in progress",
		Details:    RiskDetails{UTCHour: &h},
		DetectedAt: clock.Now(),
	}
}
