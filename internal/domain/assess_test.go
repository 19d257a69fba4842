package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freezeClockAt pins the package clock to the given UTC hour so the night
// rules behave deterministically regardless of when the suite runs.
func freezeClockAt(t *testing.T, hour int) time.Time {
	t.Helper()
	ts := time.Date(2026, time.March, 10, hour, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(ts))
	t.Cleanup(func() { SetClock(nil) })
	return ts
}

func risksOfType(risks []Risk, rt RiskType) []Risk {
	var out []Risk
	for _, r := range risks {
		if r.Type == rt {
			out = append(out, r)
		}
	}
	return out
}

func calmWeather() WeatherObservation {
	return WeatherObservation{
		WindSpeedMS: 4,
		WaveHeightM: 0.5,
		Provenance:  ProvenanceMeasured,
		Confidence:  0.9,
	}
}

func TestBaseSafeSpeed(t *testing.T) {
	tests := []struct {
		vesselType VesselType
		expected   float64
	}{
		{VesselCargo, 18},
		{VesselTanker, 16},
		{VesselPassenger, 20},
		{VesselFishing, 12},
		{VesselContainer, 19},
		{VesselOther, 15},
		{VesselType("hovercraft"), 15},
	}

	for _, tt := range tests {
		t.Run(string(tt.vesselType), func(t *testing.T) {
			assert.InDelta(t, tt.expected, BaseSafeSpeed(tt.vesselType), 0.001)
		})
	}
}

func TestAdjustedSafeSpeed(t *testing.T) {
	tests := []struct {
		name     string
		vessel   VesselSnapshot
		weather  WeatherObservation
		expected float64
	}{
		{"calm tanker", VesselSnapshot{Type: VesselTanker}, WeatherObservation{}, 16},
		{"wind cut", VesselSnapshot{Type: VesselTanker}, WeatherObservation{WindSpeedMS: 12}, 13.6},
		{"wind at threshold keeps base", VesselSnapshot{Type: VesselTanker}, WeatherObservation{WindSpeedMS: 10}, 16},
		{"wave cut", VesselSnapshot{Type: VesselTanker}, WeatherObservation{WaveHeightM: 2.5}, 12.8},
		{"wave at threshold keeps base", VesselSnapshot{Type: VesselTanker}, WeatherObservation{WaveHeightM: 2.0}, 16},
		{"draught cut", VesselSnapshot{Type: VesselTanker, DraughtM: 11}, WeatherObservation{}, 14.4},
		{"draught at threshold keeps base", VesselSnapshot{Type: VesselTanker, DraughtM: 10}, WeatherObservation{}, 16},
		{"wind and wave stack", VesselSnapshot{Type: VesselTanker}, WeatherObservation{WindSpeedMS: 12, WaveHeightM: 2.5}, 10.88},
		{"all cuts stack", VesselSnapshot{Type: VesselTanker, DraughtM: 12}, WeatherObservation{WindSpeedMS: 12, WaveHeightM: 2.5}, 9.792},
		{"fishing vessel heavy weather", VesselSnapshot{Type: VesselFishing}, WeatherObservation{WindSpeedMS: 14, WaveHeightM: 3.2}, 8.16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, AdjustedSafeSpeed(tt.vessel, tt.weather), 0.001)
		})
	}
}

func TestAdjustedSafeSpeed_NeverBelowFloor(t *testing.T) {
	storm := WeatherObservation{WindSpeedMS: 30, WaveHeightM: 7}
	for vt := range baseSafeSpeeds {
		v := VesselSnapshot{Type: vt, DraughtM: 15}
		assert.GreaterOrEqual(t, AdjustedSafeSpeed(v, storm), safeSpeedFloorKn, "type %s", vt)
	}
}

func TestAssessRisks_TankerWellAboveSafeSpeed(t *testing.T) {
	freezeClockAt(t, 12)

	vessel := NormalizeVessel(VesselSnapshot{
		MMSI: "257123000", Lat: 59.04, Lon: 10.55, SpeedKn: 22, Type: VesselTanker,
	})
	risks := AssessRisks(vessel, calmWeather(), nil)

	speed := risksOfType(risks, RiskExcessiveSpeed)
	require.Len(t, speed, 1)
	assert.Equal(t, SeverityHigh, speed[0].Severity)
	assert.InDelta(t, 16.0, speed[0].Details.SafeSpeedKn, 0.001)
	assert.InDelta(t, 1.375, speed[0].Details.SpeedRatio, 0.001)
	assert.Len(t, risks, 1)
}

func TestAssessRisks_SpeedPassesDisagreeOnSeverity(t *testing.T) {
	freezeClockAt(t, 12)

	// The adjusted-speed pass sees 19/13.6 and flags HIGH; the base-speed
	// pass sees 19/16 and flags MEDIUM. Both findings survive the merge.
	vessel := NormalizeVessel(VesselSnapshot{
		MMSI: "257123000", Lat: 59.04, Lon: 10.55, SpeedKn: 19, Type: VesselTanker,
	})
	weather := WeatherObservation{WindSpeedMS: 12, WaveHeightM: 1.0, Provenance: ProvenanceMeasured}

	risks := AssessRisks(vessel, weather, nil)
	speed := risksOfType(risks, RiskExcessiveSpeed)
	require.Len(t, speed, 2)
	assert.Equal(t, SeverityHigh, speed[0].Severity)
	assert.Equal(t, SeverityMedium, speed[1].Severity)
}

func TestAssessRisks_StormWind(t *testing.T) {
	freezeClockAt(t, 12)

	vessel := NormalizeVessel(VesselSnapshot{
		MMSI: "257123000", Lat: 59.04, Lon: 10.55, SpeedKn: 8, Type: VesselCargo,
	})
	weather := WeatherObservation{WindSpeedMS: 25, WaveHeightM: 1.0, Provenance: ProvenanceMeasured}

	risks := AssessRisks(vessel, weather, nil)
	wind := risksOfType(risks, RiskHighWinds)
	require.Len(t, wind, 1)
	assert.Equal(t, SeverityHigh, wind[0].Severity)
	assert.Contains(t, wind[0].Message, "Beaufort 10 (Storm)")
	assert.Equal(t, 10, wind[0].Details.BeaufortForce)
	assert.Equal(t, "Storm", wind[0].Details.BeaufortLabel)
}

func TestAssessRisks_WaveBands(t *testing.T) {
	freezeClockAt(t, 12)

	vessel := NormalizeVessel(VesselSnapshot{
		MMSI: "257123000", Lat: 59.04, Lon: 10.55, SpeedKn: 5, Type: VesselCargo,
	})

	tests := []struct {
		name       string
		waveM      float64
		severities []Severity
	}{
		{"below both cutoffs", 2.8, nil},
		{"legacy only", 3.2, []Severity{SeverityMedium}},
		{"both medium dedup", 4.0, []Severity{SeverityMedium}},
		{"passes disagree", 4.8, []Severity{SeverityHigh, SeverityMedium}},
		{"both high dedup", 6.0, []Severity{SeverityHigh}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weather := WeatherObservation{WindSpeedMS: 4, WaveHeightM: tt.waveM, Provenance: ProvenanceMeasured}
			waves := risksOfType(AssessRisks(vessel, weather, nil), RiskHighWaves)
			require.Len(t, waves, len(tt.severities))
			for i, want := range tt.severities {
				assert.Equal(t, want, waves[i].Severity)
			}
		})
	}
}

func TestNightWindows(t *testing.T) {
	tests := []struct {
		hour         int
		primaryFires bool
		legacyFires  bool
	}{
		{hour: 12, primaryFires: false, legacyFires: false},
		{hour: 17, primaryFires: false, legacyFires: false},
		{hour: 18, primaryFires: true, legacyFires: false},
		{hour: 19, primaryFires: true, legacyFires: false},
		{hour: 20, primaryFires: true, legacyFires: true},
		{hour: 23, primaryFires: true, legacyFires: true},
		{hour: 0, primaryFires: true, legacyFires: true},
		{hour: 5, primaryFires: true, legacyFires: true},
		{hour: 6, primaryFires: true, legacyFires: false},
		{hour: 7, primaryFires: false, legacyFires: false},
	}

	for _, tt := range tests {
		t.Run(time.Date(2026, 3, 10, tt.hour, 0, 0, 0, time.UTC).Format("15:04"), func(t *testing.T) {
			freezeClockAt(t, tt.hour)
			assert.Equal(t, tt.primaryFires, assessNight() != nil, "primary window")
			assert.Equal(t, tt.legacyFires, legacyNight() != nil, "legacy window")
		})
	}
}

func TestAssessNight_Details(t *testing.T) {
	freezeClockAt(t, 22)

	r := assessNight()
	require.NotNil(t, r)
	assert.Equal(t, SeverityLow, r.Severity)
	require.NotNil(t, r.Details.UTCHour)
	assert.Equal(t, 22, *r.Details.UTCHour)
	assert.InDelta(t, 0.4, r.Details.VisibilityFactor, 0.001)
}

func TestAssessRisks_NightMergesToSingleFinding(t *testing.T) {
	freezeClockAt(t, 21)

	vessel := NormalizeVessel(VesselSnapshot{
		MMSI: "257123000", Lat: 59.04, Lon: 10.55, SpeedKn: 8, Type: VesselCargo,
	})
	risks := AssessRisks(vessel, calmWeather(), nil)

	night := risksOfType(risks, RiskNightOperation)
	require.Len(t, night, 1)
	assert.Contains(t, night[0].Message, "night operation at 21:00 UTC")
}

func TestAssessHazards(t *testing.T) {
	freezeClockAt(t, 12)

	farm := HazardLocation{Type: HazardAquaculture, Name: "Breivik Nord", Lat: 59.05, Lon: 10.55}
	cable := HazardLocation{Type: HazardCable, Name: "Skagerrak 4", Lat: 59.02, Lon: 10.60}

	t.Run("no hits", func(t *testing.T) {
		assert.Nil(t, assessHazards(nil))
	})

	t.Run("inside high band", func(t *testing.T) {
		r := assessHazards([]HazardHit{{Hazard: farm, DistanceKm: 0.3, BearingDeg: 45}})
		require.NotNil(t, r)
		assert.Equal(t, SeverityHigh, r.Severity)
		assert.Equal(t, "Breivik Nord", r.Details.HazardName)
		assert.InDelta(t, 0.3, r.Details.HazardDistanceKm, 0.001)
	})

	t.Run("inside medium band", func(t *testing.T) {
		r := assessHazards([]HazardHit{{Hazard: farm, DistanceKm: 0.7, BearingDeg: 45}})
		require.NotNil(t, r)
		assert.Equal(t, SeverityMedium, r.Severity)
	})

	t.Run("in scan range but beyond alert bands", func(t *testing.T) {
		assert.Nil(t, assessHazards([]HazardHit{{Hazard: farm, DistanceKm: 1.5, BearingDeg: 45}}))
	})

	t.Run("nearest of several wins", func(t *testing.T) {
		r := assessHazards([]HazardHit{
			{Hazard: farm, DistanceKm: 1.5, BearingDeg: 10},
			{Hazard: cable, DistanceKm: 0.4, BearingDeg: 120},
			{Hazard: farm, DistanceKm: 0.8, BearingDeg: 200},
		})
		require.NotNil(t, r)
		assert.Equal(t, SeverityHigh, r.Severity)
		assert.Equal(t, "Skagerrak 4", r.Details.HazardName)
		assert.Equal(t, 3, r.Details.HazardsInRange)
	})
}

func TestAssessRouteDeviation(t *testing.T) {
	freezeClockAt(t, 12)

	tests := []struct {
		name        string
		deviationKm *float64
		expected    Severity
	}{
		{"not tracked", nil, ""},
		{"on route", f64(1.2), ""},
		{"at medium threshold", f64(5.0), ""},
		{"medium", f64(7.0), SeverityMedium},
		{"high", f64(12.0), SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := assessRouteDeviation(VesselSnapshot{RouteDeviationKm: tt.deviationKm})
			if tt.expected == "" {
				assert.Nil(t, r)
				return
			}
			require.NotNil(t, r)
			assert.Equal(t, RiskRouteDeviation, r.Type)
			assert.Equal(t, tt.expected, r.Severity)
		})
	}
}

func TestAssessRisks_DataLimitations(t *testing.T) {
	freezeClockAt(t, 12)

	t.Run("unknown position", func(t *testing.T) {
		vessel := NormalizeVessel(VesselSnapshot{MMSI: "257123000", SpeedKn: 8, Type: VesselCargo})
		risks := AssessRisks(vessel, calmWeather(), nil)

		lim := risksOfType(risks, RiskDataLimitation)
		require.Len(t, lim, 1)
		assert.Equal(t, SeverityMedium, lim[0].Severity)
		assert.Equal(t, "no_position", lim[0].Details.Reason)
	})

	t.Run("fallback weather", func(t *testing.T) {
		vessel := NormalizeVessel(VesselSnapshot{
			MMSI: "257123000", Lat: 59.04, Lon: 10.55, SpeedKn: 8, Type: VesselCargo,
		})
		weather := WeatherObservation{WindSpeedMS: 4, WaveHeightM: 0.8, Provenance: ProvenanceFallback}
		risks := AssessRisks(vessel, weather, nil)

		lim := risksOfType(risks, RiskDataLimitation)
		require.Len(t, lim, 1)
		assert.Equal(t, SeverityLow, lim[0].Severity)
		assert.Equal(t, "fallback_weather", lim[0].Details.Reason)
		assert.Equal(t, ProvenanceFallback, lim[0].Details.WeatherOrigin)
	})

	t.Run("both limitations kept", func(t *testing.T) {
		vessel := NormalizeVessel(VesselSnapshot{MMSI: "257123000", SpeedKn: 8, Type: VesselCargo})
		weather := WeatherObservation{WindSpeedMS: 4, WaveHeightM: 0.8, Provenance: ProvenanceFallback}
		risks := AssessRisks(vessel, weather, nil)

		lim := risksOfType(risks, RiskDataLimitation)
		require.Len(t, lim, 2)
		assert.Equal(t, SeverityMedium, lim[0].Severity)
		assert.Equal(t, SeverityLow, lim[1].Severity)
	})
}

func TestAssessRisks_NominalPassageIsQuiet(t *testing.T) {
	freezeClockAt(t, 12)

	vessel := NormalizeVessel(VesselSnapshot{
		MMSI: "257123000", Lat: 59.04, Lon: 10.55, SpeedKn: 10, CourseDeg: 180,
		Type: VesselCargo, RouteDeviationKm: f64(0.5),
	})
	risks := AssessRisks(vessel, calmWeather(), nil)
	assert.Empty(t, risks)
}
