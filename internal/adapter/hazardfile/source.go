package hazardfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
)

// Source implements domain.HazardSource by reading a GeoJSON
// FeatureCollection of Point features from a local file. The file is
// re-read on every call, so the periodic refresher picks up edits
// without a restart.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource creates a hazard source backed by the file at path.
func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

// ListHazards parses the hazard file. Features with an unknown hazard type
// or a non-point geometry are skipped with a log line rather than failing
// the whole catalog.
func (s *Source) ListHazards(_ context.Context) ([]domain.HazardLocation, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read hazard file: %w", err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse hazard file %s: %w", s.path, err)
	}

	hazards := make([]domain.HazardLocation, 0, len(fc.Features))
	for i, f := range fc.Features {
		h, ok := s.hazardFromFeature(i, f)
		if !ok {
			continue
		}
		hazards = append(hazards, h)
	}
	return hazards, nil
}

func (s *Source) hazardFromFeature(index int, f *geojson.Feature) (domain.HazardLocation, bool) {
	point, ok := f.Geometry.(*geom.Point)
	if !ok {
		s.logger.Warn("skipping hazard feature with non-point geometry", "index", index)
		return domain.HazardLocation{}, false
	}

	typ := domain.HazardType(stringProp(f.Properties, "type"))
	if !domain.KnownHazardType(typ) {
		s.logger.Warn("skipping hazard feature with unknown type",
			"index", index,
			"type", string(typ),
		)
		return domain.HazardLocation{}, false
	}

	// GeoJSON positions are [lon, lat].
	coords := point.Coords()
	return domain.HazardLocation{
		Type:    typ,
		Name:    stringProp(f.Properties, "name"),
		Lon:     coords.X(),
		Lat:     coords.Y(),
		RadiusM: floatProp(f.Properties, "radius_m"),
	}, true
}

func stringProp(props map[string]interface{}, key string) string {
	v, _ := props[key].(string)
	return v
}

func floatProp(props map[string]interface{}, key string) float64 {
	v, _ := props[key].(float64)
	return v
}
