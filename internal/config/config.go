package config

import (
	"errors"
	"fmt"
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

	// Firestore document store configuration. An empty project ID disables
	// the store; the service then serves default tables.
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirestoreCollection      string

	// Reconciliation knobs.
	ReportTimezone     string
	FreshnessPolicy    string
	FreshnessTolerance time.Duration
	TrendDays          int
	SnapshotTTL        time.Duration

	// Kafka powder-alert configuration. Alerts are optional; setting
	// KAFKA_BROKERS turns them on.
	KafkaBrokers    []string
	KafkaAlertTopic string
	AlertsEnabled   bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	tolerance, err := parsePositiveDuration("FRESHNESS_TOLERANCE", 18*time.Hour)
	if err != nil {
		return nil, err
	}

	snapshotTTL, err := parsePositiveDuration("SNAPSHOT_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	trendDays, err := parseBoundedInt("TREND_DAYS", 5, 1, 31)
	if err != nil {
		return nil, err
	}

	timezone := envOrDefault("REPORT_TIMEZONE", "America/Denver")
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", timezone, err)
	}

	policy := envOrDefault("FRESHNESS_POLICY", "calendar")
	if policy != "calendar" && policy != "rolling" {
		return nil, fmt.Errorf("invalid FRESHNESS_POLICY %q: must be calendar or rolling", policy)
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

		FirestoreProjectID:       os.Getenv("FIRESTORE_PROJECT_ID"),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirestoreCollection:      envOrDefault("FIRESTORE_COLLECTION", "snow_reports"),

		ReportTimezone:     timezone,
		FreshnessPolicy:    policy,
		FreshnessTolerance: tolerance,
		TrendDays:          trendDays,
		SnapshotTTL:        snapshotTTL,

		KafkaBrokers:    brokers,
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "powder-alerts"),
		AlertsEnabled:   alertsEnabled,
	}

	if cfg.FirestoreCollection == "" {
		return nil, errors.New("FIRESTORE_COLLECTION is required")
	}
	if cfg.AlertsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.AlertsEnabled && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ALERT_TOPIC is required when alerts are enabled")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, dropping blanks.
func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parsePositiveDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseBoundedInt(key string, def, min, max int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("invalid %s: must be an integer between %d and %d", key, min, max)
	}
	return n, nil
}
