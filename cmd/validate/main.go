// Command validate checks a hazard catalog GeoJSON file before it is handed
// to the service. The service reader deliberately skips features it cannot
// use and keeps going; this command reports every such feature as an error
// instead, plus integrity problems the reader does not look for, so operators
// can fix a catalog before deploying it.
//
// Usage:
//
//	go run ./cmd/validate -catalog data/hazards.geojson
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/vessel-risk-service/internal/adapter/hazardfile"
	"github.com/couchcryptid/vessel-risk-service/internal/domain"
	"github.com/couchcryptid/vessel-risk-service/internal/hazard"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	catalogPath := flag.String("catalog", "", "path to the hazard catalog GeoJSON file")
	flag.Parse()

	if *catalogPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*catalogPath); code != 0 {
		os.Exit(code)
	}
}

func run(catalogPath string) int {
	fmt.Println("=== Hazard Catalog Validation ===")
	fmt.Println()

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read catalog: %v\n", err)
		return 1
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse GeoJSON: %v\n", err)
		return 1
	}

	// Load through the production reader to see what the service would keep.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	kept, err := hazardfile.NewSource(catalogPath, quiet).ListHazards(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load catalog: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateFeatures(&fc, len(kept)),
		validateFields(kept),
		validateLookup(kept),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	typeCounts := map[domain.HazardType]int{}
	for _, h := range kept {
		typeCounts[h.Type]++
	}
	fmt.Println()
	fmt.Printf("Hazards: %d features, %d loadable (aquaculture=%d, cable=%d, installation=%d)\n",
		len(fc.Features), len(kept),
		typeCounts[domain.HazardAquaculture], typeCounts[domain.HazardCable], typeCounts[domain.HazardInstallation])

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Feature parsing ──
// Every raw feature must survive the reader: point geometry, known type.

func validateFeatures(fc *geojson.FeatureCollection, keptCount int) *phase {
	p := &phase{name: "Phase 1: Feature Parsing"}

	for i, f := range fc.Features {
		if _, ok := f.Geometry.(*geom.Point); !ok {
			p.errorf("feature %d: geometry is %T, the service only accepts points", i, f.Geometry)
			continue
		}
		typ := domain.HazardType(stringProp(f.Properties, "type"))
		if typ == "" {
			p.errorf("feature %d: missing \"type\" property", i)
		} else if !domain.KnownHazardType(typ) {
			p.errorf("feature %d: unknown hazard type %q", i, typ)
		}
	}

	if keptCount != len(fc.Features) {
		p.errorf("service keeps %d of %d features, the rest would be silently dropped", keptCount, len(fc.Features))
	}
	return p
}

// ── Phase 2: Field integrity ──
// Checks the reader does not perform: names, coordinate ranges, radii.

func validateFields(kept []domain.HazardLocation) *phase {
	p := &phase{name: "Phase 2: Field Integrity"}

	for i, h := range kept {
		if h.Name == "" {
			p.errorf("hazard %d (%s): missing \"name\" property", i, h.Type)
		}
		if h.Lat < -90 || h.Lat > 90 {
			p.errorf("hazard %d (%s): latitude %g out of range", i, displayName(h), h.Lat)
		}
		if h.Lon < -180 || h.Lon > 180 {
			p.errorf("hazard %d (%s): longitude %g out of range", i, displayName(h), h.Lon)
		}
		if h.Lat == 0 && h.Lon == 0 {
			p.errorf("hazard %d (%s): position is (0,0), likely a missing coordinate", i, displayName(h))
		}
		if h.RadiusM < 0 {
			p.errorf("hazard %d (%s): negative radius %g m", i, displayName(h), h.RadiusM)
		}
	}
	return p
}

// ── Phase 3: Catalog lookup ──
// Loads the production catalog and confirms each hazard is discoverable at
// its own position, then looks for likely duplicates.

func validateLookup(kept []domain.HazardLocation) *phase {
	p := &phase{name: "Phase 3: Catalog Lookup"}

	catalog := hazard.NewCatalog()
	catalog.Load(kept)

	for i, h := range kept {
		found := false
		for _, hit := range catalog.FindNearby(h.Lat, h.Lon, 0.1) {
			if hit.Hazard.Name == h.Name && hit.Hazard.Type == h.Type {
				found = true
				break
			}
		}
		if !found {
			p.errorf("hazard %d (%s): not found by lookup at its own position", i, displayName(h))
		}
	}

	seen := map[string]int{}
	for i, h := range kept {
		key := string(h.Type) + "|" + h.Name
		if j, dup := seen[key]; dup {
			p.errorf("hazard %d duplicates hazard %d: %s %q", i, j, h.Type, h.Name)
			continue
		}
		seen[key] = i
	}

	// Same-type hazards under 50 m apart are almost always the same feature
	// exported twice.
	for i := range kept {
		for j := i + 1; j < len(kept); j++ {
			if kept[i].Type != kept[j].Type {
				continue
			}
			if domain.DistanceKm(kept[i].Lat, kept[i].Lon, kept[j].Lat, kept[j].Lon) < 0.05 {
				p.errorf("hazards %d and %d (%s %q / %q) are under 50 m apart", i, j, kept[i].Type, kept[i].Name, kept[j].Name)
			}
		}
	}
	return p
}

func displayName(h domain.HazardLocation) string {
	if h.Name != "" {
		return h.Name
	}
	return string(h.Type)
}

func stringProp(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
