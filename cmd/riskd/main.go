package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/vessel-risk-service/internal/adapter/hazardfile"
	httpadapter "github.com/couchcryptid/vessel-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/vessel-risk-service/internal/adapter/kafka"
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
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Weather sources in priority order (feature-flagged via
	// METNO_ENABLED / OPENMETEO_ENABLED).
	var sources []domain.WeatherSource
	if cfg.MetNoEnabled {
		sources = append(sources, metno.NewClient(cfg.MetNoBaseURL, cfg.MetNoUserAgent, cfg.WeatherSourceTimeout, logger))
		logger.Info("met.no weather source enabled")
	}
	if cfg.OpenMeteoEnabled {
		sources = append(sources, openmeteo.NewClient(cfg.OpenMeteoBaseURL, cfg.OpenMeteoMarine, cfg.WeatherSourceTimeout, logger))
		logger.Info("open-meteo weather source enabled", "marine", cfg.OpenMeteoMarine)
	}
	if len(sources) == 0 {
		logger.Warn("no weather sources enabled, every observation will be synthetic")
	}

	cache := weather.NewCache(cfg.WeatherCacheTTL)
	acquirer := weather.NewAcquirer(sources, cache, cfg.WeatherSourceTimeout, metrics, logger)

	// Hazard screening is optional; without a file the catalog stays empty
	// and the service is ready immediately.
	catalog := hazard.NewCatalog()
	var refresher *hazard.Refresher
	var readiness pipeline.ReadinessChecker
	if cfg.HazardFile != "" {
		source := hazardfile.NewSource(cfg.HazardFile, logger)
		refresher = hazard.NewRefresher(source, catalog, cfg.HazardRefreshInterval, metrics, logger)
		readiness = refresher
		logger.Info("hazard catalog enabled", "file", cfg.HazardFile, "refresh_interval", cfg.HazardRefreshInterval)
	} else {
		logger.Info("hazard catalog disabled")
	}

	engine := recommend.NewEngine(recommend.NewHistory(cfg.HistoryCapacity), metrics, logger)

	var sink pipeline.AlertSink
	var alertWriter *kafkaadapter.AlertWriter
	if cfg.AlertsEnabled {
		alertWriter = kafkaadapter.NewAlertWriter(cfg, logger)
		sink = alertWriter
		logger.Info("kafka alerts enabled", "topic", cfg.KafkaAlertTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka alerts disabled")
	}

	assessor := pipeline.New(acquirer, catalog, engine, sink, readiness, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, assessor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start hazard catalog refresher.
	if refresher != nil {
		go func() {
			if err := refresher.Run(ctx); err != nil {
				logger.Error("hazard refresher error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if alertWriter != nil {
		if err := alertWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
