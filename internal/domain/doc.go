// Package domain models vessel telemetry, marine weather, charted hazards,
// and the risk and recommendation rules evaluated over them.
//
// # Units and Conventions
//
// Positions are WGS-84 decimal degrees. Distances use the haversine formula
// with Earth radius 6,371,000 m; one nautical mile is 1852 m. Bearings are
// degrees true in [0,360). Vessel speed is knots, wind speed m/s, wave
// height metres. All rule evaluation happens in UTC via the package clock.
//
// # Safe Speed Model
//
// Each vessel type has a base safe speed in knots:
//
//	cargo 18 | tanker 16 | passenger 20 | fishing 12 | container 19 | other 15
//
// The base is reduced multiplicatively for conditions: wind above 10 m/s
// cuts 15%, waves above 2.0 m cut 20%, draught above 10 m cuts 10%. The
// adjusted speed never drops below 5 kn. Speed above 1.10x the adjusted
// value is EXCESSIVE_SPEED; above 1.30x it is HIGH.
//
// # Wave Estimation
//
// Providers that report wind but not sea state get a derived wave height:
//
//	wave = clamp(0.0246 * wind^2 + (wind < 5 ? 0.5 : 0), 0.3, 8.0)
//
// The quadratic term is a fetch-limited growth curve calibrated for coastal
// waters; the additive floor models residual swell present even near calm
// wind. All wave heights, measured or estimated, are clamped to [0.3, 8.0] m
// before any rule sees them. The dominant wave period is approximated by
// the deep-water relation T = 3.85 * sqrt(H) seconds.
//
// # Two Rule Passes
//
// Risk assessment runs two independently evolved passes and merges them:
//
//	primary: adjusted-speed check, wind > 15 m/s, waves > 3.5 m, night
//	         window 18:00-06:59 UTC, hazard proximity, route deviation,
//	         data limitations.
//	legacy:  unadjusted-speed ratios (1.15/1.35), wind > 12 m/s, waves
//	         > 3.0 m, night window 20:00-05:59 UTC.
//
// The passes use different constants and night windows. That drift predates
// this codebase and is preserved for regression parity rather than unified;
// [MergeRisks] dedups by (type, severity) with the primary pass winning
// ties, then orders findings HIGH to LOW.
//
// # Severity and Actions
//
// Severity is a total order: HIGH > MEDIUM > LOW. Each (risk type,
// severity) pair maps through a static table to a recommended action with a
// priority, 1 most urgent; unmapped pairs fall back to exercise_caution.
// The primary recommendation is the lowest priority number. ROI estimates
// fuel, time, and cost impact of the primary action against an
// hourly-burn model of length/10/24 tonnes per hour.
package domain
