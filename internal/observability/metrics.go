package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// snapshot refresh loop and its adapters.
type Metrics struct {
	SnapshotLookups  *prometheus.CounterVec // labels: result={hit,miss}
	RefreshTotal     *prometheus.CounterVec // labels: outcome={success,degraded}
	RefreshDuration  prometheus.Histogram
	StoreErrors      prometheus.Counter
	StaleReports     *prometheus.CounterVec // labels: rule={season,new_snow}
	ResortsReporting prometheus.Gauge
	PowderResorts    prometheus.Gauge
	LastRefreshTime  prometheus.Gauge

	// Powder alert publishing metrics.
	AlertsPublished prometheus.Counter
	AlertErrors     prometheus.Counter
	AlertsEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SnapshotLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snow_report",
			Name:      "snapshot_lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snow_report",
			Name:      "refresh_total",
			Help:      "Completed snapshot rebuilds by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "snow_report",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete snapshot rebuild including store queries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snow_report",
			Name:      "store_errors_total",
			Help:      "Document store queries that failed.",
		}),
		StaleReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snow_report",
			Name:      "stale_reports_total",
			Help:      "Reports zeroed by a staleness rule, by rule.",
		}, []string{"rule"}),
		ResortsReporting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snow_report",
			Name:      "resorts_reporting",
			Help:      "Resorts with a usable report in the current snapshot.",
		}),
		PowderResorts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snow_report",
			Name:      "powder_resorts",
			Help:      "Resorts at or above the powder threshold in the current snapshot.",
		}),
		LastRefreshTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snow_report",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful snapshot rebuild.",
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snow_report",
			Name:      "alerts_published_total",
			Help:      "Powder alerts written to Kafka.",
		}),
		AlertErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snow_report",
			Name:      "alert_errors_total",
			Help:      "Powder alert publish failures.",
		}),
		AlertsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snow_report",
			Name:      "alerts_enabled",
			Help:      "1 when powder alert publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.SnapshotLookups,
		m.RefreshTotal,
		m.RefreshDuration,
		m.StoreErrors,
		m.StaleReports,
		m.ResortsReporting,
		m.PowderResorts,
		m.LastRefreshTime,
		m.AlertsPublished,
		m.AlertErrors,
		m.AlertsEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SnapshotLookups:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "snow_report", Name: "snapshot_lookups_total"}, []string{"result"}),
		RefreshTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "snow_report", Name: "refresh_total"}, []string{"outcome"}),
		RefreshDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "snow_report", Name: "refresh_duration_seconds"}),
		StoreErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "snow_report", Name: "store_errors_total"}),
		StaleReports:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "snow_report", Name: "stale_reports_total"}, []string{"rule"}),
		ResortsReporting: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "snow_report", Name: "resorts_reporting"}),
		PowderResorts:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "snow_report", Name: "powder_resorts"}),
		LastRefreshTime:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "snow_report", Name: "last_refresh_timestamp_seconds"}),
		AlertsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "snow_report", Name: "alerts_published_total"}),
		AlertErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "snow_report", Name: "alert_errors_total"}),
		AlertsEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "snow_report", Name: "alerts_enabled"}),
	}
}
