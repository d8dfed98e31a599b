package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProjectID = "snow-report-test"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.FirestoreProjectID)
	assert.Empty(t, cfg.FirestoreCredentialsFile)
	assert.Equal(t, "snow_reports", cfg.FirestoreCollection)
	assert.Equal(t, "America/Denver", cfg.ReportTimezone)
	assert.Equal(t, "calendar", cfg.FreshnessPolicy)
	assert.Equal(t, 18*time.Hour, cfg.FreshnessTolerance)
	assert.Equal(t, 5, cfg.TrendDays)
	assert.Equal(t, 10*time.Minute, cfg.SnapshotTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "powder-alerts", cfg.KafkaAlertTopic)
	assert.False(t, cfg.AlertsEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FIRESTORE_PROJECT_ID", testProjectID)
	t.Setenv("FIRESTORE_CREDENTIALS_FILE", "/etc/snow/sa.json")
	t.Setenv("FIRESTORE_COLLECTION", "snow_reports_staging")
	t.Setenv("REPORT_TIMEZONE", "America/Boise")
	t.Setenv("FRESHNESS_POLICY", "rolling")
	t.Setenv("FRESHNESS_TOLERANCE", "30h")
	t.Setenv("TREND_DAYS", "7")
	t.Setenv("SNAPSHOT_TTL", "5m")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_ALERT_TOPIC", "custom-alerts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testProjectID, cfg.FirestoreProjectID)
	assert.Equal(t, "/etc/snow/sa.json", cfg.FirestoreCredentialsFile)
	assert.Equal(t, "snow_reports_staging", cfg.FirestoreCollection)
	assert.Equal(t, "America/Boise", cfg.ReportTimezone)
	assert.Equal(t, "rolling", cfg.FreshnessPolicy)
	assert.Equal(t, 30*time.Hour, cfg.FreshnessTolerance)
	assert.Equal(t, 7, cfg.TrendDays)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotTTL)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-alerts", cfg.KafkaAlertTopic)
	assert.True(t, cfg.AlertsEnabled)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "Mars/Olympus_Mons")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPORT_TIMEZONE")
}

func TestLoad_InvalidFreshnessPolicy(t *testing.T) {
	t.Setenv("FRESHNESS_POLICY", "psychic")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FRESHNESS_POLICY")
}

func TestLoad_InvalidFreshnessTolerance(t *testing.T) {
	t.Setenv("FRESHNESS_TOLERANCE", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FRESHNESS_TOLERANCE")
}

func TestLoad_TrendDaysOutOfRange(t *testing.T) {
	for _, v := range []string{"0", "32", "-5", "five"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("TREND_DAYS", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "TREND_DAYS")
		})
	}
}

func TestLoad_InvalidSnapshotTTL(t *testing.T) {
	t.Setenv("SNAPSHOT_TTL", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SNAPSHOT_TTL")
}

func TestLoad_BrokersImplyAlerts(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AlertsEnabled)
}

func TestLoad_AlertsExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("ALERTS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.AlertsEnabled)
}

func TestLoad_AlertsEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("ALERTS_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_BlankBrokerEntriesDropped(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,, ,broker2:9092,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}
