package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/snow-report-service/internal/config"
	"github.com/couchcryptid/snow-report-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// AlertWriter publishes powder alerts to a Kafka topic.
// It implements refresh.AlertPublisher.
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

// PublishPowderAlert serializes and publishes one powder alert. The snapshot
// date keys the message so downstream consumers can compact by day.
func (w *AlertWriter) PublishPowderAlert(ctx context.Context, alert domain.PowderAlert) error {
	msg, err := serializeToMessage(alert)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *AlertWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a PowderAlert into a Kafka message.
func serializeToMessage(alert domain.PowderAlert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize powder alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(alert.SnapshotDate),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "resort_count", Value: []byte(fmt.Sprintf("%d", alert.Count))},
			{Key: "generated_at", Value: []byte(alert.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
