// Command genhazards writes a synthetic hazard catalog as GeoJSON for demos
// and local testing. Positions are scattered around a centre point with a
// seeded generator, so the same flags always produce the same file. After
// writing, the file is loaded back through the same reader the service uses
// to confirm every feature survives the round trip.
//
// Usage:
//
//	go run ./cmd/genhazards -out data/hazards.geojson -count 30 -seed 7
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/couchcryptid/vessel-risk-service/internal/adapter/hazardfile"
	"github.com/couchcryptid/vessel-risk-service/internal/domain"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const kmPerDegreeLat = 111.32

// namePools holds plausible Norwegian coastal names per hazard type. When
// count exceeds the pool, names get a numeric suffix.
var namePools = map[domain.HazardType][]string{
	domain.HazardAquaculture:  {"Breivik Nord", "Fleinvaer", "Storholmen", "Kvitsoey Soer", "Maaloey Vest"},
	domain.HazardCable:        {"Skagerrak 4", "Oslofjord Link", "Hvaler Kabel", "Lista Crossing"},
	domain.HazardInstallation: {"Torbjoernskjaer fyr", "Faerder fyr", "Svenner fyr", "Jomfruland stake"},
}

// radius bounds per type, metres.
var radiusBounds = map[domain.HazardType][2]float64{
	domain.HazardAquaculture:  {80, 250},
	domain.HazardCable:        {30, 100},
	domain.HazardInstallation: {100, 500},
}

var hazardTypes = []domain.HazardType{domain.HazardAquaculture, domain.HazardCable, domain.HazardInstallation}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the GeoJSON catalog")
	count := flag.Int("count", 24, "number of hazards to generate")
	seed := flag.Int64("seed", 1, "random seed for reproducible output")
	centerLat := flag.Float64("center-lat", 59.0, "centre latitude of the scatter area")
	centerLon := flag.Float64("center-lon", 10.5, "centre longitude of the scatter area")
	spreadKm := flag.Float64("spread-km", 40, "half-width of the scatter area in km")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *count <= 0 {
		return fmt.Errorf("-count must be positive, got %d", *count)
	}

	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // reproducible fixtures, not security

	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, *count)}
	typeCounts := map[domain.HazardType]int{}
	for i := 0; i < *count; i++ {
		typ := hazardTypes[i%len(hazardTypes)]
		typeCounts[typ]++

		lat := *centerLat + (rng.Float64()*2-1)*(*spreadKm)/kmPerDegreeLat
		lon := *centerLon + (rng.Float64()*2-1)*(*spreadKm)/(kmPerDegreeLat*math.Cos(lat*math.Pi/180))
		bounds := radiusBounds[typ]
		radius := bounds[0] + rng.Float64()*(bounds[1]-bounds[0])

		fc.Features = append(fc.Features, &geojson.Feature{
			// GeoJSON positions are [lon, lat].
			Geometry: geom.NewPointFlat(geom.XY, []float64{lon, lat}),
			Properties: map[string]interface{}{
				"type":     string(typ),
				"name":     poolName(typ, typeCounts[typ]),
				"radius_m": math.Round(radius),
			},
		})
	}

	if err := writeGeoJSON(*out, fc); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	for _, typ := range hazardTypes {
		log.Printf("%s: %d hazards", typ, typeCounts[typ])
	}
	log.Printf("wrote catalog: %s", *out)

	// Round-trip check with the production reader.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	locations, err := hazardfile.NewSource(*out, logger).ListHazards(context.Background())
	if err != nil {
		return fmt.Errorf("reading catalog back: %w", err)
	}
	if len(locations) != *count {
		return fmt.Errorf("round trip dropped features: wrote %d, read %d", *count, len(locations))
	}
	log.Printf("verified: all %d hazards load cleanly", len(locations))
	return nil
}

func poolName(typ domain.HazardType, n int) string {
	pool := namePools[typ]
	name := pool[(n-1)%len(pool)]
	if n > len(pool) {
		return fmt.Sprintf("%s %d", name, (n-1)/len(pool)+1)
	}
	return name
}

func writeGeoJSON(path string, fc *geojson.FeatureCollection) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
