package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
)

const defaultMarineBaseURL = "https://marine.api.open-meteo.com/v1/marine"

// Client implements domain.WeatherSource against the Open-Meteo forecast
// API, optionally enriched with measured wave height from the marine API.
// No authentication is required.
type Client struct {
	baseURL       string
	marineBaseURL string
	marine        bool
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates an Open-Meteo client. With marine enabled, each fetch
// also queries the marine API for wave height; a marine failure degrades
// to an estimate downstream instead of failing the reading.
func NewClient(baseURL string, marine bool, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		marineBaseURL: defaultMarineBaseURL,
		marine:        marine,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name implements domain.WeatherSource.
func (c *Client) Name() string { return "openmeteo" }

// Fetch returns current conditions for a position. Wind speed is requested
// in m/s; the API default is km/h.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (domain.WeatherReading, error) {
	params := url.Values{
		"latitude":        {fmt.Sprintf("%.4f", lat)},
		"longitude":       {fmt.Sprintf("%.4f", lon)},
		"current":         {"temperature_2m,wind_speed_10m,wind_direction_10m"},
		"wind_speed_unit": {"ms"},
	}

	var forecast forecastResponse
	if err := c.getJSON(ctx, c.baseURL+"?"+params.Encode(), &forecast); err != nil {
		return domain.WeatherReading{}, err
	}

	reading := domain.WeatherReading{
		WindSpeedMS:      forecast.Current.WindSpeed10m,
		WindDirectionDeg: forecast.Current.WindDirection10m,
		TemperatureC:     forecast.Current.Temperature2m,
	}

	if c.marine {
		reading.WaveHeightM = c.fetchWaveHeight(ctx, lat, lon)
	}
	return reading, nil
}

// fetchWaveHeight queries the marine API. Returns nil on any failure;
// the caller treats a missing wave height as estimable.
func (c *Client) fetchWaveHeight(ctx context.Context, lat, lon float64) *float64 {
	params := url.Values{
		"latitude":  {fmt.Sprintf("%.4f", lat)},
		"longitude": {fmt.Sprintf("%.4f", lon)},
		"current":   {"wave_height"},
	}

	var marine marineResponse
	if err := c.getJSON(ctx, c.marineBaseURL+"?"+params.Encode(), &marine); err != nil {
		c.logger.Warn("open-meteo marine request failed, wave height will be estimated", "error", err)
		return nil
	}
	return marine.Current.WaveHeight
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("open-meteo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Open-Meteo response types, reduced to the fields used.

type forecastResponse struct {
	Current forecastCurrent `json:"current"`
}

type forecastCurrent struct {
	Temperature2m    *float64 `json:"temperature_2m"`
	WindSpeed10m     *float64 `json:"wind_speed_10m"`
	WindDirection10m *float64 `json:"wind_direction_10m"`
}

type marineResponse struct {
	Current marineCurrent `json:"current"`
}

type marineCurrent struct {
	WaveHeight *float64 `json:"wave_height"`
}
