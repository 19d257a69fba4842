package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/vessel-risk-service/internal/config"
	"github.com/couchcryptid/vessel-risk-service/internal/pipeline"
)

// AlertWriter publishes recommendation results that carried findings to
// the alert topic. It implements pipeline.AlertSink.
type AlertWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewAlertWriter creates a Kafka producer for the configured alert topic.
func NewAlertWriter(cfg *config.Config, logger *slog.Logger) *AlertWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &AlertWriter{writer: w, logger: logger}
}

// PublishAlert serializes and publishes one result, keyed by MMSI so each
// vessel's alerts stay ordered within a partition.
func (w *AlertWriter) PublishAlert(ctx context.Context, result pipeline.RecommendationResult) error {
	msg, err := serializeToMessage(result)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *AlertWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a recommendation result into a Kafka message
// with routing headers for consumers that filter without parsing the body.
func serializeToMessage(result pipeline.RecommendationResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.Vessel.MMSI),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "mmsi", Value: []byte(result.Vessel.MMSI)},
			{Key: "highest_severity", Value: []byte(result.Summary.HighestSeverity)},
			{Key: "risk_count", Value: []byte(strconv.Itoa(len(result.Risks)))},
			{Key: "assessed_at", Value: []byte(result.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}
