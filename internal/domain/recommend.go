package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Action is a navigation recommendation drawn from the static action table.
type Action string

const (
	ActionChangeCourseImmediate    Action = "change_course_immediate"
	ActionReduceSpeedAndMonitor    Action = "reduce_speed_and_monitor"
	ActionIncreaseVigilance        Action = "increase_vigilance"
	ActionSeekShelterOrReduceSpeed Action = "seek_shelter_or_reduce_speed"
	ActionReduceSpeed              Action = "reduce_speed"
	ActionMonitorConditions        Action = "monitor_conditions"
	ActionReturnToRouteImmediate   Action = "return_to_route_immediate"
	ActionReturnToRoute            Action = "return_to_route"
	ActionReduceSpeedImmediate     Action = "reduce_speed_immediate"
	ActionReduceSpeedToSafe        Action = "reduce_speed_to_safe"
	ActionMonitorSpeed             Action = "monitor_speed"
	ActionExerciseCaution          Action = "exercise_caution"
)

// Recommendation is derived 1:1 from a Risk. Priority 1 is most urgent.
// The ID is assigned by the engine that records the recommendation.
type Recommendation struct {
	ID        string      `json:"id"`
	MMSI      string      `json:"mmsi"`
	RiskType  RiskType    `json:"risk_type"`
	Severity  Severity    `json:"severity"`
	Action    Action      `json:"action"`
	Priority  int         `json:"priority"`
	Message   string      `json:"message"`
	Details   RiskDetails `json:"details"`
	CreatedAt time.Time   `json:"created_at"`
}

type actionRule struct {
	action   Action
	priority int
}

// actionTable is the static (risk type, severity) to (action, priority)
// mapping. Combinations outside the table, including severities a rule
// never emits today, fall back to exercise_caution at the lowest priority.
var actionTable = map[RiskType]map[Severity]actionRule{
	RiskHazardProximity: {
		SeverityHigh:   {ActionChangeCourseImmediate, 1},
		SeverityMedium: {ActionReduceSpeedAndMonitor, 2},
		SeverityLow:    {ActionIncreaseVigilance, 4},
	},
	RiskHighWaves: {
		SeverityHigh:   {ActionSeekShelterOrReduceSpeed, 1},
		SeverityMedium: {ActionReduceSpeed, 2},
		SeverityLow:    {ActionMonitorConditions, 4},
	},
	RiskHighWinds: {
		SeverityHigh:   {ActionSeekShelterOrReduceSpeed, 1},
		SeverityMedium: {ActionReduceSpeed, 2},
		SeverityLow:    {ActionMonitorConditions, 4},
	},
	RiskRouteDeviation: {
		SeverityHigh:   {ActionReturnToRouteImmediate, 1},
		SeverityMedium: {ActionReturnToRoute, 3},
	},
	RiskNightOperation: {
		SeverityLow: {ActionIncreaseVigilance, 4},
	},
	RiskExcessiveSpeed: {
		SeverityHigh:   {ActionReduceSpeedImmediate, 1},
		SeverityMedium: {ActionReduceSpeedToSafe, 2},
		SeverityLow:    {ActionMonitorSpeed, 4},
	},
}

const (
	fallbackAction   = ActionExerciseCaution
	fallbackPriority = 5
)

// ActionFor resolves the action and priority for a finding.
func ActionFor(t RiskType, s Severity) (Action, int) {
	if rule, ok := actionTable[t][s]; ok {
		return rule.action, rule.priority
	}
	return fallbackAction, fallbackPriority
}

// BuildRecommendations derives one recommendation per risk and sorts by
// priority, most urgent first. The sort is stable, so equal priorities keep
// the merged risk order (highest severity first).
func BuildRecommendations(risks []Risk, vessel VesselSnapshot) []Recommendation {
	recs := make([]Recommendation, 0, len(risks))
	for _, r := range risks {
		action, priority := ActionFor(r.Type, r.Severity)
		recs = append(recs, Recommendation{
			MMSI:      vessel.MMSI,
			RiskType:  r.Type,
			Severity:  r.Severity,
			Action:    action,
			Priority:  priority,
			Message:   recommendationMessage(action, r),
			Details:   r.Details,
			CreatedAt: clock.Now(),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority < recs[j].Priority
	})
	return recs
}

// SelectPrimary returns the lowest-priority-number recommendation, or nil
// for an empty list. Ties keep the earliest entry.
func SelectPrimary(recs []Recommendation) *Recommendation {
	if len(recs) == 0 {
		return nil
	}
	primary := recs[0]
	for _, r := range recs[1:] {
		if r.Priority < primary.Priority {
			primary = r
		}
	}
	return &primary
}

// recommendationMessage renders a per-action message from the risk details.
// When the template's field is absent the raw risk message is used instead,
// never an error.
func recommendationMessage(action Action, r Risk) string {
	d := r.Details
	switch action {
	case ActionChangeCourseImmediate:
		if d.HazardName != "" {
			return fmt.Sprintf("change course immediately: %s %q %.2f km away, bearing %03.0f",
				d.HazardType, d.HazardName, d.HazardDistanceKm, d.HazardBearingDeg)
		}
	case ActionReduceSpeedAndMonitor:
		if d.HazardName != "" {
			return fmt.Sprintf("reduce speed and monitor: %s %q %.2f km away",
				d.HazardType, d.HazardName, d.HazardDistanceKm)
		}
	case ActionSeekShelterOrReduceSpeed:
		if d.WaveHeightM > 0 {
			return fmt.Sprintf("seek shelter or reduce speed: wave height %.1f m", d.WaveHeightM)
		}
		if d.WindSpeedMS > 0 {
			return fmt.Sprintf("seek shelter or reduce speed: wind %.1f m/s", d.WindSpeedMS)
		}
	case ActionReduceSpeed:
		if d.WaveHeightM > 0 {
			return fmt.Sprintf("reduce speed: wave height %.1f m", d.WaveHeightM)
		}
		if d.WindSpeedMS > 0 {
			return fmt.Sprintf("reduce speed: wind %.1f m/s", d.WindSpeedMS)
		}
	case ActionReturnToRouteImmediate:
		if d.DeviationKm > 0 {
			return fmt.Sprintf("return to route immediately: %.1f km off track", d.DeviationKm)
		}
	case ActionReturnToRoute:
		if d.DeviationKm > 0 {
			return fmt.Sprintf("return to planned route: %.1f km off track", d.DeviationKm)
		}
	case ActionReduceSpeedImmediate:
		if d.SafeSpeedKn > 0 {
			return fmt.Sprintf("reduce speed immediately to %.1f kn or below", d.SafeSpeedKn)
		}
	case ActionReduceSpeedToSafe:
		if d.SafeSpeedKn > 0 {
			return fmt.Sprintf("reduce speed to the safe %.1f kn", d.SafeSpeedKn)
		}
	case ActionMonitorSpeed:
		if d.SafeSpeedKn > 0 {
			return fmt.Sprintf("monitor speed: %.1f kn against safe %.1f kn", d.SpeedKn, d.SafeSpeedKn)
		}
	case ActionIncreaseVigilance:
		if d.UTCHour != nil {
			return "increase vigilance: operating in darkness"
		}
		if d.HazardName != "" {
			return fmt.Sprintf("increase vigilance: %s %q in the area", d.HazardType, d.HazardName)
		}
	}
	return r.Message
}

func actionHasPrefix(a Action, prefix string) bool {
	return strings.HasPrefix(string(a), prefix)
}
