package domain

import "fmt"

// ROI model constants. The burn model is a deliberately coarse fleet
// average: hourly fuel in tonnes is length/10/24, so a 240 m vessel burns
// about one tonne per hour at service speed.
const (
	fuelPriceUSDPerKg = 0.65 // VLSFO at roughly 650 USD per tonne

	windBurnFactor = 0.015 // relative burn increase per m/s of wind
	waveBurnFactor = 0.08  // relative burn increase per metre of wave
)

// Fraction of hourly burn saved (positive) or added (negative) per action
// family, and the time impact in minutes. Positive minutes are saved.
const (
	reduceSpeedFuelPct   = 0.20
	reduceSpeedMinutes   = -45
	changeCourseFuelPct  = -0.10
	changeCourseMinutes  = 25
	returnToRouteFuelPct = 0.15
	returnToRouteMinutes = 10
	seekShelterFuelPct   = 0.50
	seekShelterMinutes   = -120
)

// ROIEstimate quantifies the impact of following a recommendation over one
// hour of operation. TimeSavingsMinutes is signed: negative means the
// action costs time.
type ROIEstimate struct {
	FuelSavingsKg      float64 `json:"fuel_savings_kg"`
	TimeSavingsMinutes float64 `json:"time_savings_minutes"`
	CostSavingsUSD     float64 `json:"cost_savings_usd"`
	Confidence         string  `json:"confidence"` // "low", "medium", "high"
	Basis              string  `json:"basis,omitempty"`
}

// EstimateROI derives the fuel, time, and cost impact of the primary
// recommendation. A nil primary yields the zero estimate at low confidence.
// Monitoring and vigilance actions change nothing about the voyage, so
// their estimate is zero at the usual confidence.
func EstimateROI(vessel VesselSnapshot, primary *Recommendation, weather WeatherObservation) ROIEstimate {
	if primary == nil {
		return ROIEstimate{Confidence: "low"}
	}

	hourlyBurnKg := vessel.LengthM / 10.0 / 24.0 * 1000.0
	weatherMult := (1 + weather.WindSpeedMS*windBurnFactor) * (1 + weather.WaveHeightM*waveBurnFactor)
	windMult := 1 + weather.WindSpeedMS*windBurnFactor

	var fuelKg, minutes float64
	switch {
	case actionHasPrefix(primary.Action, "reduce_speed"):
		fuelKg = hourlyBurnKg * reduceSpeedFuelPct * weatherMult
		minutes = reduceSpeedMinutes
	case actionHasPrefix(primary.Action, "change_course"):
		// Extra distance burns more fuel; the wind multiplier captures the
		// added resistance on the new heading.
		fuelKg = hourlyBurnKg * changeCourseFuelPct * windMult
		minutes = changeCourseMinutes
	case actionHasPrefix(primary.Action, "return_to_route"):
		fuelKg = hourlyBurnKg * returnToRouteFuelPct
		minutes = returnToRouteMinutes
	case actionHasPrefix(primary.Action, "seek_shelter"):
		fuelKg = hourlyBurnKg * seekShelterFuelPct
		minutes = seekShelterMinutes
	}

	confidence := "medium"
	if weather.Provenance == ProvenanceMeasured && !vessel.IsFallback {
		confidence = "high"
	}

	return ROIEstimate{
		FuelSavingsKg:      fuelKg,
		TimeSavingsMinutes: minutes,
		CostSavingsUSD:     fuelKg * fuelPriceUSDPerKg,
		Confidence:         confidence,
		Basis: fmt.Sprintf("hourly burn %.0f kg, weather multiplier %.2f, action %s",
			hourlyBurnKg, weatherMult, primary.Action),
	}
}
