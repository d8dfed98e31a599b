package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/couchcryptid/snow-report-service/internal/domain"
)

// rebuild assembles a fresh snapshot. Callers hold r.mu. The only error it
// returns is the context's; store failures degrade to default rows so the
// dashboards always have a table to draw.
func (r *Refresher) rebuild(ctx context.Context) (*Snapshot, error) {
	now := domain.Now()
	loc := r.reportLocation(now)

	date, err := r.source.LatestReportDate(ctx)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		r.metrics.StoreErrors.Inc()
		r.logger.Error("latest report date query failed", "error", err)
		return r.defaultSnapshot(now, loc, "report store unavailable", true), nil
	}
	if date == "" {
		r.logger.Warn("report store has no documents")
		return r.defaultSnapshot(now, loc, "no reports in store", false), nil
	}

	docs, err := r.source.ReportsByDate(ctx, date)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		r.metrics.StoreErrors.Inc()
		r.logger.Error("conditions query failed", "date", date, "error", err)
		snap := r.defaultSnapshot(now, loc, fmt.Sprintf("conditions for %s unavailable", date), true)
		snap.Date = date
		return snap, nil
	}

	reports := normalizeDocs(docs, date, loc)
	conditions, stats := domain.BuildConditions(reports, now, r.settings.Freshness)
	r.metrics.StaleReports.WithLabelValues("season").Add(float64(stats.SeasonStale))
	r.metrics.StaleReports.WithLabelValues("new_snow").Add(float64(stats.NewSnowStale))
	r.metrics.ResortsReporting.Set(float64(stats.Reporting))
	r.metrics.PowderResorts.Set(float64(stats.Powder))

	snap := &Snapshot{
		Date:       date,
		Conditions: conditions,
		Notices:    []string{},
		BuiltAt:    now,
	}

	resorts := rowNames(conditions)
	history := make([]domain.Report, 0, len(docs))
	for _, day := range domain.TrendWindow(now, r.settings.TrendDays, loc) {
		dayDocs := docs
		if day != date {
			dayDocs, err = r.source.ReportsByDate(ctx, day)
			if err != nil {
				if cerr := ctx.Err(); cerr != nil {
					return nil, cerr
				}
				r.metrics.StoreErrors.Inc()
				r.logger.Warn("snowfall history query failed", "date", day, "error", err)
				snap.Degraded = true
				snap.Notices = append(snap.Notices, fmt.Sprintf("snowfall history for %s unavailable", day))
				continue
			}
		}
		history = append(history, normalizeDocs(dayDocs, day, loc)...)
	}
	snap.DailySnow = domain.BuildDailySeries(history, resorts, now, r.settings.TrendDays, loc)

	snap.PowderAlert = domain.BuildPowderAlert(conditions, date, now)
	r.publishAlert(ctx, snap.PowderAlert)

	r.logger.Info("snapshot rebuilt",
		"date", date,
		"matched", stats.Matched,
		"reporting", stats.Reporting,
		"powder", stats.Powder,
		"season_stale", stats.SeasonStale,
		"new_snow_stale", stats.NewSnowStale,
		"degraded", snap.Degraded,
	)
	return snap, nil
}

// defaultSnapshot is the all-default view served when the store has nothing
// usable: every resort row present with has_report=false, an all-zero
// snowfall series, and an empty alert.
func (r *Refresher) defaultSnapshot(now time.Time, loc *time.Location, notice string, degraded bool) *Snapshot {
	conditions, _ := domain.BuildConditions(nil, now, r.settings.Freshness)
	return &Snapshot{
		Conditions:  conditions,
		DailySnow:   domain.BuildDailySeries(nil, rowNames(conditions), now, r.settings.TrendDays, loc),
		PowderAlert: domain.BuildPowderAlert(conditions, "", now),
		Degraded:    degraded,
		Notices:     []string{notice},
		BuiltAt:     now,
	}
}

// publishAlert sends the powder alert at most once per snapshot date.
// Publish failures are logged and counted, never fatal to the build.
func (r *Refresher) publishAlert(ctx context.Context, alert domain.PowderAlert) {
	if r.publisher == nil || alert.Count == 0 {
		return
	}
	if alert.SnapshotDate == r.lastAlertDate {
		return
	}
	if err := r.publisher.PublishPowderAlert(ctx, alert); err != nil {
		r.metrics.AlertErrors.Inc()
		r.logger.Error("powder alert publish failed", "date", alert.SnapshotDate, "error", err)
		return
	}
	r.lastAlertDate = alert.SnapshotDate
	r.metrics.AlertsPublished.Inc()
	r.logger.Info("powder alert published", "date", alert.SnapshotDate, "resorts", alert.Count)
}

func (r *Refresher) reportLocation(now time.Time) *time.Location {
	if r.settings.Freshness.Location != nil {
		return r.settings.Freshness.Location
	}
	return now.Location()
}

func normalizeDocs(docs []domain.RawDoc, day string, loc *time.Location) []domain.Report {
	reports := make([]domain.Report, 0, len(docs))
	for _, doc := range docs {
		rep := domain.NormalizeReport(doc, loc)
		if rep.Date == "" {
			rep.Date = day
		}
		reports = append(reports, rep)
	}
	return reports
}

func rowNames(rows []domain.ConditionsRow) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.DisplayName
	}
	return names
}
