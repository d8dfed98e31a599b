// Package refresh builds and caches the reconciled snow-report snapshot.
//
// The snapshot is demand-driven: requests read the cached copy until its TTL
// lapses, and the first request past the deadline rebuilds it while later
// requests wait on the same rebuild. Store failures never surface to
// callers; they produce a degraded snapshot of default rows instead.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/snow-report-service/internal/domain"
	"github.com/couchcryptid/snow-report-service/internal/observability"
)

// AlertPublisher pushes a powder alert to the alerting transport.
type AlertPublisher interface {
	PublishPowderAlert(ctx context.Context, alert domain.PowderAlert) error
}

// Snapshot is one fully reconciled view of the feed: the current-conditions
// table, the trailing snowfall series, and the powder alert derived from
// them. Snapshots are immutable once published; readers share them freely.
type Snapshot struct {
	// Date is the snapshot date the conditions table was built from, "" when
	// the store had no reports.
	Date        string
	Conditions  []domain.ConditionsRow
	DailySnow   []domain.DailySnowPoint
	PowderAlert domain.PowderAlert

	// Degraded marks a snapshot assembled after a store failure. Its rows
	// are defaults and Notices says what went wrong.
	Degraded bool
	Notices  []string

	BuiltAt time.Time
}

// Settings carries the reconciliation knobs from configuration.
type Settings struct {
	Freshness domain.Freshness
	TrendDays int
	TTL       time.Duration
}

// Refresher serves the cached snapshot, rebuilding it when the TTL lapses.
type Refresher struct {
	source    domain.ReportSource
	publisher AlertPublisher // nil when alerts are disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
	settings  Settings

	mu            sync.Mutex // serializes rebuilds
	lastAlertDate string     // guarded by mu
	current       atomic.Pointer[Snapshot]
	ready         atomic.Bool
}

// New creates a Refresher. publisher may be nil to disable powder alerts.
func New(source domain.ReportSource, publisher AlertPublisher, logger *slog.Logger, metrics *observability.Metrics, settings Settings) *Refresher {
	return &Refresher{
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		settings:  settings,
	}
}

// CheckReadiness returns nil once a snapshot has been built (a degraded one
// counts; the service can serve defaults), or an error describing why the
// service is not yet ready.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no snapshot has been built yet")
	}
	return nil
}

// Current returns the cached snapshot, rebuilding it first when the TTL has
// lapsed or nothing has been built yet. The only error it returns is the
// context's; every store failure degrades into a default snapshot instead.
func (r *Refresher) Current(ctx context.Context) (*Snapshot, error) {
	if snap := r.current.Load(); snap != nil && r.freshSnapshot(snap) {
		r.metrics.SnapshotLookups.WithLabelValues("hit").Inc()
		return snap, nil
	}
	r.metrics.SnapshotLookups.WithLabelValues("miss").Inc()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another request may have rebuilt while we waited on the lock.
	if snap := r.current.Load(); snap != nil && r.freshSnapshot(snap) {
		return snap, nil
	}

	start := time.Now()
	snap, err := r.rebuild(ctx)
	if err != nil {
		return nil, err
	}
	r.metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	r.current.Store(snap)
	r.ready.Store(true)
	if snap.Degraded {
		r.metrics.RefreshTotal.WithLabelValues("degraded").Inc()
	} else {
		r.metrics.RefreshTotal.WithLabelValues("success").Inc()
		r.metrics.LastRefreshTime.Set(float64(snap.BuiltAt.Unix()))
	}
	return snap, nil
}

func (r *Refresher) freshSnapshot(s *Snapshot) bool {
	return domain.Now().Sub(s.BuiltAt) < r.settings.TTL
}
