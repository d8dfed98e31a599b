//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/snow-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/snow-report-service/internal/config"
	"github.com/couchcryptid/snow-report-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testAlertTopic = "test-powder-alerts"

// startKafka runs a single-node broker in a container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic provisions a topic up front so the first publish does not race
// topic auto-creation.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	admin, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer admin.Close()

	require.NoError(t, admin.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// consumedAlert holds a deserialized message read from the alert topic.
type consumedAlert struct {
	Alert   domain.PowderAlert
	Key     string
	Headers map[string]string
}

// readAlert reads a single message from the alert consumer and deserializes it.
func readAlert(ctx context.Context, t *testing.T, consumer *kafkago.Reader) consumedAlert {
	t.Helper()

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from alert topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var alert domain.PowderAlert
	require.NoError(t, json.Unmarshal(msg.Value, &alert), "unmarshal alert message")

	return consumedAlert{Alert: alert, Key: string(msg.Key), Headers: headers}
}

func newAlertConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAlertTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// loadFixtureDocs reads the checked-in collector fixture.
func loadFixtureDocs(t *testing.T) []domain.RawDoc {
	t.Helper()

	path := filepath.Join("..", "..", "data", "mock", "snow_reports_250115_window.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var docs []domain.RawDoc
	require.NoError(t, json.Unmarshal(data, &docs))
	return docs
}

// TestAlertWriterRoundTrip verifies the adapter layer: a published powder
// alert comes back off the topic with its key, headers, and payload intact.
func TestAlertWriterRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	cfg := &config.Config{
		KafkaBrokers:    []string{broker},
		KafkaAlertTopic: testAlertTopic,
	}
	writer := kafka.NewAlertWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	generated := time.Date(2025, time.January, 15, 17, 0, 0, 0, time.UTC)
	alert := domain.PowderAlert{
		SnapshotDate: "2025-01-15",
		Count:        2,
		Resorts: []domain.PowderResort{
			{Name: "Bridger Bowl", Snow: 8},
			{Name: "Snowbowl", Snow: 6.5},
		},
		GeneratedAt: generated,
	}
	require.NoError(t, writer.PublishPowderAlert(ctx, alert))

	got := readAlert(ctx, t, newAlertConsumer(t, broker))

	assert.Equal(t, "2025-01-15", got.Key, "snapshot date keys the message")
	assert.Equal(t, "2", got.Headers["resort_count"])
	headerTime, err := time.Parse(time.RFC3339, got.Headers["generated_at"])
	require.NoError(t, err, "generated_at should be valid RFC3339")
	assert.True(t, headerTime.Equal(generated))

	assert.Equal(t, alert.SnapshotDate, got.Alert.SnapshotDate)
	assert.Equal(t, alert.Count, got.Alert.Count)
	assert.Equal(t, alert.Resorts, got.Alert.Resorts)
	assert.True(t, got.Alert.GeneratedAt.Equal(generated))
}

// TestPowderAlertEndToEnd reconciles the checked-in fixture's storm morning
// and pushes the resulting alert through a real broker: the powder list a
// consumer sees must match what the conditions table showed.
func TestPowderAlertEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	zone, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, zone)

	var latest []domain.Report
	for _, doc := range loadFixtureDocs(t) {
		rep := domain.NormalizeReport(doc, zone)
		if rep.Date == "2025-01-15" {
			latest = append(latest, rep)
		}
	}
	require.NotEmpty(t, latest)

	rows, _ := domain.BuildConditions(latest, now, domain.Freshness{
		Policy:   domain.PolicyCalendarDay,
		Location: zone,
	})
	alert := domain.BuildPowderAlert(rows, "2025-01-15", now)
	require.Equal(t, 4, alert.Count, "fixture storm morning has four powder resorts")

	cfg := &config.Config{
		KafkaBrokers:    []string{broker},
		KafkaAlertTopic: testAlertTopic,
	}
	writer := kafka.NewAlertWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.PublishPowderAlert(ctx, alert))

	got := readAlert(ctx, t, newAlertConsumer(t, broker))

	assert.Equal(t, "2025-01-15", got.Key)
	assert.Equal(t, "4", got.Headers["resort_count"])
	assert.Equal(t, 4, got.Alert.Count)

	want := []domain.PowderResort{
		{Name: "Schweitzer", Snow: 11},
		{Name: "Lookout Pass", Snow: 9},
		{Name: "Bridger Bowl", Snow: 8},
		{Name: "Snowbowl", Snow: 6.5},
	}
	assert.Equal(t, want, got.Alert.Resorts, "alert preserves table order")
}
