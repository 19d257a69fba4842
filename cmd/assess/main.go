// Command assess runs a single vessel risk assessment from the command line,
// without starting the HTTP service. Weather comes from the configured
// sources (or is estimated from defaults with -offline), hazards come from an
// optional GeoJSON file, and the full recommendation result is printed to
// stdout as indented JSON.
//
// Usage:
//
//	go run ./cmd/assess \
//	  -mmsi 257123456 -lat 59.04 -lon 10.55 -speed 14.5 -course 182 \
//	  -type cargo -draught 9.5 -hazards data/hazards.geojson
//
// The exit code is 1 when the assessment finds any HIGH severity risk, so the
// command can gate scripted checks.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/vessel-risk-service/internal/adapter/hazardfile"
	"github.com/couchcryptid/vessel-risk-service/internal/adapter/metno"
	"github.com/couchcryptid/vessel-risk-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/vessel-risk-service/internal/config"
	"github.com/couchcryptid/vessel-risk-service/internal/domain"
	"github.com/couchcryptid/vessel-risk-service/internal/hazard"
	"github.com/couchcryptid/vessel-risk-service/internal/observability"
	"github.com/couchcryptid/vessel-risk-service/internal/pipeline"
	"github.com/couchcryptid/vessel-risk-service/internal/recommend"
	"github.com/couchcryptid/vessel-risk-service/internal/weather"
)

func main() {
	mmsi := flag.String("mmsi", "", "vessel MMSI (required)")
	lat := flag.Float64("lat", 0, "latitude in decimal degrees (0,0 means unknown position)")
	lon := flag.Float64("lon", 0, "longitude in decimal degrees")
	speed := flag.Float64("speed", 0, "speed over ground in knots")
	course := flag.Float64("course", 0, "course over ground in degrees")
	vesselType := flag.String("type", "", "vessel type: cargo, tanker, passenger, fishing, container or other")
	length := flag.Float64("length", 0, "length overall in metres (0 uses the type default)")
	draught := flag.Float64("draught", 0, "draught in metres (0 uses the type default)")
	routeDeviation := flag.Float64("route-deviation", -1, "deviation from planned route in km (negative means unknown)")
	hazards := flag.String("hazards", "", "path to a GeoJSON hazard catalog (optional)")
	offline := flag.Bool("offline", false, "skip live weather sources and rely on estimated conditions")
	flag.Parse()

	if *mmsi == "" {
		flag.Usage()
		os.Exit(1)
	}

	vessel := domain.VesselSnapshot{
		MMSI:      strings.TrimSpace(*mmsi),
		Lat:       *lat,
		Lon:       *lon,
		SpeedKn:   *speed,
		CourseDeg: *course,
		Type:      domain.VesselType(strings.ToLower(strings.TrimSpace(*vesselType))),
		LengthM:   *length,
		DraughtM:  *draught,
		Timestamp: time.Now().UTC(),
		Source:    "manual",
	}
	if *routeDeviation >= 0 {
		vessel.RouteDeviationKm = routeDeviation
	}

	if code := run(vessel, *hazards, *offline); code != 0 {
		os.Exit(code)
	}
}

func run(vessel domain.VesselSnapshot, hazardPath string, offline bool) int {
	// Keep stdout clean for the JSON result; diagnostics go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetrics()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var sources []domain.WeatherSource
	sourceTimeout := 10 * time.Second
	cacheTTL := 15 * time.Minute
	if !offline {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
			return 1
		}
		sourceTimeout = cfg.WeatherSourceTimeout
		cacheTTL = cfg.WeatherCacheTTL
		if cfg.MetNoEnabled {
			sources = append(sources, metno.NewClient(cfg.MetNoBaseURL, cfg.MetNoUserAgent, cfg.WeatherSourceTimeout, logger))
		}
		if cfg.OpenMeteoEnabled {
			sources = append(sources, openmeteo.NewClient(cfg.OpenMeteoBaseURL, cfg.OpenMeteoMarine, cfg.WeatherSourceTimeout, logger))
		}
	}
	acquirer := weather.NewAcquirer(sources, weather.NewCache(cacheTTL), sourceTimeout, metrics, logger)

	catalog := hazard.NewCatalog()
	if hazardPath != "" {
		locations, err := hazardfile.NewSource(hazardPath, logger).ListHazards(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load hazards: %v\n", err)
			return 1
		}
		catalog.Load(locations)
	}

	engine := recommend.NewEngine(recommend.NewHistory(0), metrics, logger)
	assessor := pipeline.New(acquirer, catalog, engine, nil, nil, logger, metrics)

	result := assessor.Recommend(ctx, vessel)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: encode result: %v\n", err)
		return 1
	}
	fmt.Println(string(out))

	if result.Summary.HighestSeverity == domain.SeverityHigh {
		return 1
	}
	return 0
}
