package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/vessel-risk-service/internal/adapter/http"
	"github.com/couchcryptid/vessel-risk-service/internal/domain"
	"github.com/couchcryptid/vessel-risk-service/internal/pipeline"
)

type mockService struct {
	readyErr  error
	assessed  []domain.VesselSnapshot
	history   []domain.Recommendation
	lastLimit int
	lastMMSI  string
}

func (m *mockService) Assess(_ context.Context, v domain.VesselSnapshot) pipeline.AssessmentResult {
	m.assessed = append(m.assessed, v)
	return pipeline.AssessmentResult{Vessel: domain.NormalizeVessel(v)}
}

func (m *mockService) Recommend(_ context.Context, v domain.VesselSnapshot) pipeline.RecommendationResult {
	m.assessed = append(m.assessed, v)
	primary := domain.Recommendation{ID: "rec-1", MMSI: v.MMSI, Action: domain.ActionReduceSpeed}
	return pipeline.RecommendationResult{
		AssessmentResult: pipeline.AssessmentResult{Vessel: domain.NormalizeVessel(v)},
		Recommendations:  []domain.Recommendation{primary},
		Primary:          &primary,
		ROI:              domain.ROIEstimate{Confidence: "high", Basis: "test"},
	}
}

func (m *mockService) History(limit int, mmsi string) []domain.Recommendation {
	m.lastLimit, m.lastMMSI = limit, mmsi
	return m.history
}

func (m *mockService) CheckReadiness(_ context.Context) error { return m.readyErr }

func newTestServer(svc *mockService) *httpadapter.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", svc, logger)
}

func postJSON(srv *httpadapter.Server, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	return rec
}

const validAssessBody = `{
	"mmsi": "257123456",
	"lat": 59.04,
	"lon": 10.55,
	"speed_kn": 14.5,
	"course_deg": 182,
	"type": "cargo",
	"draught_m": 9.5
}`

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockService{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockService{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockService{readyErr: fmt.Errorf("hazard catalog has not completed an initial load")})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Contains(t, body["error"], "initial load")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockService{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAssessReturnsResult(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)

	rec := postJSON(srv, "/v1/assess", validAssessBody)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Vessel domain.VesselSnapshot `json:"vessel"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "257123456", body.Vessel.MMSI)

	require.Len(t, svc.assessed, 1)
	assert.Equal(t, domain.VesselCargo, svc.assessed[0].Type)
	assert.Equal(t, 14.5, svc.assessed[0].SpeedKn)
	assert.Equal(t, 9.5, svc.assessed[0].DraughtM)
}

func TestAssessNormalizesTypeCase(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)

	body := strings.Replace(validAssessBody, `"cargo"`, `"  Tanker "`, 1)
	rec := postJSON(srv, "/v1/assess", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.assessed, 1)
	assert.Equal(t, domain.VesselTanker, svc.assessed[0].Type)
}

func TestAssessValidation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing mmsi",
			body:    `{"lat": 59.0, "lon": 10.5, "speed_kn": 10}`,
			wantErr: "mmsi is required",
		},
		{
			name:    "latitude out of range",
			body:    `{"mmsi": "257123456", "lat": 95.0, "lon": 10.5, "speed_kn": 10}`,
			wantErr: "lat is out of range",
		},
		{
			name:    "longitude out of range",
			body:    `{"mmsi": "257123456", "lat": 59.0, "lon": -200.0, "speed_kn": 10}`,
			wantErr: "lon is out of range",
		},
		{
			name:    "negative speed",
			body:    `{"mmsi": "257123456", "lat": 59.0, "lon": 10.5, "speed_kn": -3}`,
			wantErr: "speed_kn is out of range",
		},
		{
			name:    "unknown vessel type",
			body:    `{"mmsi": "257123456", "lat": 59.0, "lon": 10.5, "speed_kn": 10, "type": "sailboat"}`,
			wantErr: "type must be one of",
		},
		{
			name:    "negative route deviation",
			body:    `{"mmsi": "257123456", "lat": 59.0, "lon": 10.5, "speed_kn": 10, "route_deviation_km": -2}`,
			wantErr: "route_deviation_km is out of range",
		},
		{
			name:    "malformed json",
			body:    `{"mmsi": `,
			wantErr: "malformed request body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			srv := newTestServer(svc)

			rec := postJSON(srv, "/v1/assess", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tc.wantErr)
			assert.Empty(t, svc.assessed, "invalid requests must not reach the service")
		})
	}
}

func TestRecommendReturnsRecommendations(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)

	rec := postJSON(srv, "/v1/recommend", validAssessBody)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
		Primary         *domain.Recommendation  `json:"primary"`
		ROI             domain.ROIEstimate      `json:"roi"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Recommendations, 1)
	require.NotNil(t, body.Primary)
	assert.Equal(t, domain.ActionReduceSpeed, body.Primary.Action)
	assert.Equal(t, "high", body.ROI.Confidence)
}

func TestRecommendRejectsInvalidBody(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)

	rec := postJSON(srv, "/v1/recommend", `{"lat": 59.0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.assessed)
}

func TestHistoryEndpoint(t *testing.T) {
	svc := &mockService{history: []domain.Recommendation{
		{ID: "rec-2", MMSI: "257123456"},
		{ID: "rec-1", MMSI: "257123456"},
	}}
	srv := newTestServer(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/history?limit=5&mmsi=257123456", nil)
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.lastLimit)
	assert.Equal(t, "257123456", svc.lastMMSI)

	var body struct {
		Count           int                     `json:"count"`
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Recommendations, 2)
	assert.Equal(t, "rec-2", body.Recommendations[0].ID)
}

func TestHistoryDefaultsLimit(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, svc.lastLimit, "absent limit is passed through for the engine default")
	assert.Empty(t, svc.lastMMSI)
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	for _, limit := range []string{"abc", "-1", "0", "1.5"} {
		t.Run(limit, func(t *testing.T) {
			srv := newTestServer(&mockService{})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/history?limit="+limit, nil)
			srv.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
