package metno

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
)

// Politeness limit for api.met.no, well below the documented traffic
// ceiling. The TOS additionally requires an identifying User-Agent;
// anonymous requests are rejected with 403.
const (
	requestsPerSecond = 10
	requestBurst      = 2
)

// Client implements domain.WeatherSource against the MET Norway
// locationforecast 2.0 compact endpoint.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a MET Norway client. userAgent must identify the
// deployment per the met.no terms of service.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		logger:  logger,
	}
}

// Name implements domain.WeatherSource.
func (c *Client) Name() string { return "metno" }

// Fetch returns the current instant forecast details for a position. The
// compact product carries no wave height; it is estimated downstream.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (domain.WeatherReading, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.WeatherReading{}, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{
		"lat": {fmt.Sprintf("%.4f", lat)},
		"lon": {fmt.Sprintf("%.4f", lon)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("locationforecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.WeatherReading{}, fmt.Errorf("met.no API error: status %d: %s", resp.StatusCode, body)
	}

	var forecast response
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return domain.WeatherReading{}, fmt.Errorf("decode response: %w", err)
	}

	if len(forecast.Properties.Timeseries) == 0 {
		return domain.WeatherReading{}, errors.New("met.no response has no timeseries")
	}

	details := forecast.Properties.Timeseries[0].Data.Instant.Details
	return domain.WeatherReading{
		WindSpeedMS:      details.WindSpeed,
		WindDirectionDeg: details.WindFromDirection,
		TemperatureC:     details.AirTemperature,
	}, nil
}

// MET Norway locationforecast response types, reduced to the fields used.

type response struct {
	Properties properties `json:"properties"`
}

type properties struct {
	Timeseries []timestep `json:"timeseries"`
}

type timestep struct {
	Time time.Time `json:"time"`
	Data stepData  `json:"data"`
}

type stepData struct {
	Instant instant `json:"instant"`
}

type instant struct {
	Details details `json:"details"`
}

type details struct {
	AirTemperature    *float64 `json:"air_temperature"`
	WindSpeed         *float64 `json:"wind_speed"`
	WindFromDirection *float64 `json:"wind_from_direction"`
}
