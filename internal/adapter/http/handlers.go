package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
)

// validate caches struct metadata and is safe for concurrent use. Field
// names in validation errors are reported by their json tags.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// AssessRequest is one vessel telemetry snapshot as posted by callers.
// Unknown vessel types are rejected here rather than silently defaulted;
// the core would accept them, but the API surfaces the typo.
type AssessRequest struct {
	MMSI             string   `json:"mmsi" validate:"required"`
	Lat              float64  `json:"lat" validate:"min=-90,max=90"`
	Lon              float64  `json:"lon" validate:"min=-180,max=180"`
	SpeedKn          float64  `json:"speed_kn" validate:"min=0"`
	CourseDeg        float64  `json:"course_deg" validate:"min=0,max=360"`
	Type             string   `json:"type" validate:"omitempty,oneof=cargo tanker passenger fishing container other"`
	LengthM          float64  `json:"length_m" validate:"min=0"`
	DraughtM         float64  `json:"draught_m" validate:"min=0"`
	WidthM           float64  `json:"width_m" validate:"min=0"`
	RouteDeviationKm *float64 `json:"route_deviation_km" validate:"omitempty,min=0"`
	Source           string   `json:"source"`
	IsFallback       bool     `json:"is_fallback"`
}

func (req AssessRequest) snapshot() domain.VesselSnapshot {
	return domain.VesselSnapshot{
		MMSI:             req.MMSI,
		Lat:              req.Lat,
		Lon:              req.Lon,
		SpeedKn:          req.SpeedKn,
		CourseDeg:        req.CourseDeg,
		Type:             domain.VesselType(req.Type),
		LengthM:          req.LengthM,
		DraughtM:         req.DraughtM,
		WidthM:           req.WidthM,
		RouteDeviationKm: req.RouteDeviationKm,
		Source:           req.Source,
		IsFallback:       req.IsFallback,
	}
}

func decodeVessel(r *http.Request) (domain.VesselSnapshot, error) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.VesselSnapshot{}, errors.New("malformed request body")
	}
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))

	if err := validate.Struct(&req); err != nil {
		return domain.VesselSnapshot{}, errors.New(validationMessage(err))
	}
	return req.snapshot(), nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is out of range", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	vessel, err := decodeVessel(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.service.Assess(r.Context(), vessel))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	vessel, err := decodeVessel(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.service.Recommend(r.Context(), vessel))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs := s.service.History(limit, r.URL.Query().Get("mmsi"))
	writeJSON(w, http.StatusOK, map[string]any{
		"count":           len(recs),
		"recommendations": recs,
	})
}
