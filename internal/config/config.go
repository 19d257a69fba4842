package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Weather acquisition configuration.
	WeatherSourceTimeout time.Duration
	WeatherCacheTTL      time.Duration
	MetNoBaseURL         string
	MetNoUserAgent       string
	MetNoEnabled         bool
	OpenMeteoBaseURL     string
	OpenMeteoEnabled     bool
	OpenMeteoMarine      bool

	// Hazard catalog configuration.
	HazardFile            string
	HazardRefreshInterval time.Duration

	HistoryCapacity int

	// Kafka alert publishing configuration.
	AlertsEnabled   bool
	KafkaBrokers    []string
	KafkaAlertTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	sourceTimeout, err := parseDurationEnv("WEATHER_SOURCE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parseDurationEnv("WEATHER_CACHE_TTL", "15m")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseDurationEnv("HAZARD_REFRESH_INTERVAL", "6h")
	if err != nil {
		return nil, err
	}

	historyCapacity, err := parsePositiveIntEnv("HISTORY_CAPACITY", 1000)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	alertsEnabled := len(brokers) > 0
	if v := os.Getenv("ALERTS_ENABLED"); v != "" {
		alertsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		WeatherSourceTimeout: sourceTimeout,
		WeatherCacheTTL:      cacheTTL,
		MetNoBaseURL:         envOrDefault("METNO_BASE_URL", "https://api.met.no/weatherapi/locationforecast/2.0/compact"),
		MetNoUserAgent:       os.Getenv("METNO_USER_AGENT"),
		MetNoEnabled:         envBool("METNO_ENABLED", true),
		OpenMeteoBaseURL:     envOrDefault("OPENMETEO_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		OpenMeteoEnabled:     envBool("OPENMETEO_ENABLED", true),
		OpenMeteoMarine:      envBool("OPENMETEO_MARINE", true),

		HazardFile:            os.Getenv("HAZARD_FILE"),
		HazardRefreshInterval: refreshInterval,

		HistoryCapacity: historyCapacity,

		AlertsEnabled:   alertsEnabled,
		KafkaBrokers:    brokers,
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "vessel-risk-alerts"),
	}

	if cfg.MetNoEnabled && cfg.MetNoUserAgent == "" {
		return nil, errors.New("METNO_ENABLED is true but METNO_USER_AGENT is not set")
	}
	if cfg.AlertsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.AlertsEnabled && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ALERT_TOPIC is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
