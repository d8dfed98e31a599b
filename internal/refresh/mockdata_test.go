package refresh_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/snow-report-service/internal/domain"
	"github.com/couchcryptid/snow-report-service/internal/observability"
	"github.com/couchcryptid/snow-report-service/internal/refresh"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadReportWindow reads the checked-in collector fixture and groups its
// documents by snapshot date.
func loadReportWindow(t *testing.T) (map[string][]domain.RawDoc, string) {
	t.Helper()

	path := filepath.Join("..", "..", "data", "mock", "snow_reports_250115_window.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var docs []domain.RawDoc
	require.NoError(t, json.Unmarshal(data, &docs))

	byDate := map[string][]domain.RawDoc{}
	var latest string
	for _, doc := range docs {
		date, _ := doc["date"].(string)
		require.NotEmpty(t, date, "fixture document without a date")
		byDate[date] = append(byDate[date], doc)
		if date > latest {
			latest = date
		}
	}
	return byDate, latest
}

func rowByName(t *testing.T, rows []domain.ConditionsRow, name string) domain.ConditionsRow {
	t.Helper()
	for _, row := range rows {
		if row.DisplayName == name {
			return row
		}
	}
	t.Fatalf("no conditions row for %q", name)
	return domain.ConditionsRow{}
}

func seriesFor(points []domain.DailySnowPoint, name string) []domain.DailySnowPoint {
	var out []domain.DailySnowPoint
	for _, p := range points {
		if p.Resort == name {
			out = append(out, p)
		}
	}
	return out
}

// TestRefresher_WithMockReportData drives a full snapshot build from the
// checked-in fixture window and pins down the reconciled table, the alert,
// and the snowfall series. The fixture deliberately carries the feed's
// quirks, so this is the closest thing to a replay of a real storm morning.
func TestRefresher_WithMockReportData(t *testing.T) {
	zone := reportZone(t)
	freeze(t, time.Date(2025, 1, 15, 10, 0, 0, 0, zone))

	byDate, latest := loadReportWindow(t)
	require.Equal(t, "2025-01-15", latest)

	pub := &mockPublisher{}
	src := &mockSource{latestDate: latest, docsByDate: byDate}
	r := refresh.New(src, pub, slog.Default(), observability.NewMetricsForTesting(), testSettings(zone))

	snap, err := r.Current(context.Background())
	require.NoError(t, err)

	require.False(t, snap.Degraded)
	require.Empty(t, snap.Notices)
	assert.Equal(t, "2025-01-15", snap.Date)
	require.Len(t, snap.Conditions, 17)
	require.Len(t, snap.DailySnow, 17*5)

	t.Run("table order", func(t *testing.T) {
		want := []string{
			"Schweitzer",         // 11 in, powder
			"Lookout Pass",       // 9 in, powder
			"Bridger Bowl",       // 8 in, powder
			"Snowbowl",           // 6.5 in, powder
			"Big Sky",            // 4 in
			"Great Divide",       // 3 in, second collection wins
			"Blacktail",          // 2 in, ties break by name
			"Red Lodge Mountain", // 2 in
			"Silver Mountain",    // 2 in
			"Discovery",          // 1 in
			"Turner Mountain",    // 1 in
			"Maverick",           // 0 in, still fresh
			"Big Mountain",       // yesterday's stamp sorts after today's
			"Showdown",           // March stamp, but still a report
			"Bear Paw",           // silent resorts last, by name
			"Lost Trail",
			"Teton Pass",
		}
		got := make([]string, len(snap.Conditions))
		for i, row := range snap.Conditions {
			got[i] = row.DisplayName
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("table order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("string-typed numbers", func(t *testing.T) {
		row := rowByName(t, snap.Conditions, "Snowbowl")
		assert.Equal(t, 6.5, row.DisplaySnow)
		assert.Equal(t, 6.5, row.Snow24hSummit)
		assert.Equal(t, 44.0, row.BaseDepth)
		assert.Equal(t, 59.0, row.SummitDepth)
		assert.True(t, row.IsPowder)
		assert.True(t, row.HasReport)
	})

	t.Run("newest duplicate wins", func(t *testing.T) {
		row := rowByName(t, snap.Conditions, "Great Divide")
		assert.Equal(t, 3.0, row.DisplaySnow)
		assert.Equal(t, "6/6", row.LiftsOpen)
		assert.Equal(t, "Upper mountain opened at nine.", row.Comments)
		assert.Equal(t, "2025-01-15 09:05:00", row.LastUpdated)
	})

	t.Run("snotel readings", func(t *testing.T) {
		blacktail := rowByName(t, snap.Conditions, "Blacktail")
		assert.Equal(t, 92.0, blacktail.Snotel["percent_of_median"])
		assert.Equal(t, 63.0, blacktail.Snotel["snow_depth"])
		assert.Equal(t, 17.4, blacktail.Snotel["swe"])
		assert.Equal(t, "Noisy Basin", blacktail.Snotel["station"])
		assert.Len(t, blacktail.NWSForecast, 2)

		schweitzer := rowByName(t, snap.Conditions, "Schweitzer")
		assert.Equal(t, 118.0, schweitzer.Snotel["percent_of_median"])
		assert.Equal(t, 102.0, schweitzer.Snotel["snow_depth"])
		assert.Equal(t, 31.2, schweitzer.Snotel["swe"])
	})

	t.Run("carried-forward stamp", func(t *testing.T) {
		row := rowByName(t, snap.Conditions, "Big Mountain")
		assert.True(t, row.HasReport)
		assert.Equal(t, "2025-01-14 17:30:00", row.LastUpdated)
		// New snow is yesterday's news; the standing pack is not.
		assert.Equal(t, 0.0, row.DisplaySnow)
		assert.Equal(t, 0.0, row.Snow24hSummit)
		assert.Equal(t, 63.0, row.BaseDepth)
		assert.Equal(t, 91.0, row.SummitDepth)
	})

	t.Run("prior-season page", func(t *testing.T) {
		row := rowByName(t, snap.Conditions, "Showdown")
		assert.True(t, row.HasReport)
		assert.Equal(t, 0.0, row.DisplaySnow)
		assert.Equal(t, 0.0, row.BaseDepth)
		assert.Equal(t, 0.0, row.SummitDepth)
		assert.Equal(t, "4/4", row.LiftsOpen)
	})

	t.Run("unparseable stamp", func(t *testing.T) {
		row := rowByName(t, snap.Conditions, "Teton Pass")
		assert.False(t, row.HasReport)
		assert.Nil(t, row.LastUpdatedAt)
		assert.Equal(t, "Updated this morning", row.LastUpdated)
		assert.Equal(t, 0.0, row.DisplaySnow)
		assert.Equal(t, 0.0, row.BaseDepth)
		// The document still matched, so its text fields survive.
		assert.Equal(t, "3/3", row.LiftsOpen)
	})

	t.Run("silent resorts", func(t *testing.T) {
		for _, name := range []string{"Bear Paw", "Lost Trail"} {
			row := rowByName(t, snap.Conditions, name)
			assert.False(t, row.HasReport)
			assert.Equal(t, domain.NotAvailable, row.LastUpdated)
			assert.Equal(t, domain.NotAvailable, row.LiftsOpen)
			assert.Equal(t, 0.0, row.DisplaySnow)
		}
	})

	t.Run("negative artifact", func(t *testing.T) {
		row := rowByName(t, snap.Conditions, "Silver Mountain")
		assert.Equal(t, 0.0, row.Snow24hSummit)
		assert.Equal(t, 2.0, row.Snow24hBase)
		assert.Equal(t, 2.0, row.DisplaySnow)
		// Temperatures keep their sign; only snow clamps.
		assert.Equal(t, -12.5, row.TempSummit)
	})

	t.Run("unknown resort stays out", func(t *testing.T) {
		for _, row := range snap.Conditions {
			assert.NotEqual(t, "MysteryRidge", row.DisplayName)
		}
	})

	t.Run("powder alert", func(t *testing.T) {
		want := []domain.PowderResort{
			{Name: "Schweitzer", Snow: 11},
			{Name: "Lookout Pass", Snow: 9},
			{Name: "Bridger Bowl", Snow: 8},
			{Name: "Snowbowl", Snow: 6.5},
		}
		assert.Equal(t, 4, snap.PowderAlert.Count)
		assert.Equal(t, "2025-01-15", snap.PowderAlert.SnapshotDate)
		if diff := cmp.Diff(want, snap.PowderAlert.Resorts); diff != "" {
			t.Errorf("alert resorts mismatch (-want +got):\n%s", diff)
		}

		require.Len(t, pub.alerts, 1)
		assert.Equal(t, 4, pub.alerts[0].Count)
	})

	t.Run("daily series", func(t *testing.T) {
		// Schweitzer heads the table, so it owns the first five points.
		want := []domain.DailySnowPoint{
			{Resort: "Schweitzer", Date: "2025-01-11", Snow: 2, WindowTotal: 20},
			{Resort: "Schweitzer", Date: "2025-01-12", Snow: 4, WindowTotal: 20},
			{Resort: "Schweitzer", Date: "2025-01-13", Snow: 0, WindowTotal: 20},
			{Resort: "Schweitzer", Date: "2025-01-14", Snow: 3, WindowTotal: 20},
			{Resort: "Schweitzer", Date: "2025-01-15", Snow: 11, WindowTotal: 20},
		}
		if diff := cmp.Diff(want, snap.DailySnow[:5]); diff != "" {
			t.Errorf("schweitzer series mismatch (-want +got):\n%s", diff)
		}

		// Big Sky's day-4 document re-served day-3 numbers under the day-3
		// stamp, so the 14th charts as zero even though a document exists.
		bigSky := seriesFor(snap.DailySnow, "Big Sky")
		wantBigSky := []domain.DailySnowPoint{
			{Resort: "Big Sky", Date: "2025-01-11", Snow: 3, WindowTotal: 18},
			{Resort: "Big Sky", Date: "2025-01-12", Snow: 5, WindowTotal: 18},
			{Resort: "Big Sky", Date: "2025-01-13", Snow: 6, WindowTotal: 18},
			{Resort: "Big Sky", Date: "2025-01-14", Snow: 0, WindowTotal: 18},
			{Resort: "Big Sky", Date: "2025-01-15", Snow: 4, WindowTotal: 18},
		}
		if diff := cmp.Diff(wantBigSky, bigSky); diff != "" {
			t.Errorf("big sky series mismatch (-want +got):\n%s", diff)
		}

		// Same rule on the other side: Big Mountain's 14th counts (stamped
		// that evening), the 15th does not (same stamp, next day's document).
		bigMountain := seriesFor(snap.DailySnow, "Big Mountain")
		wantBigMountain := []domain.DailySnowPoint{
			{Resort: "Big Mountain", Date: "2025-01-11", Snow: 2, WindowTotal: 8},
			{Resort: "Big Mountain", Date: "2025-01-12", Snow: 1, WindowTotal: 8},
			{Resort: "Big Mountain", Date: "2025-01-13", Snow: 0, WindowTotal: 8},
			{Resort: "Big Mountain", Date: "2025-01-14", Snow: 5, WindowTotal: 8},
			{Resort: "Big Mountain", Date: "2025-01-15", Snow: 0, WindowTotal: 8},
		}
		if diff := cmp.Diff(wantBigMountain, bigMountain); diff != "" {
			t.Errorf("big mountain series mismatch (-want +got):\n%s", diff)
		}

		totals := map[string]float64{}
		for _, p := range snap.DailySnow {
			totals[p.Resort] = p.WindowTotal
		}
		assert.Equal(t, 21.0, totals["Lookout Pass"])
		assert.Equal(t, 17.0, totals["Bridger Bowl"])
		assert.Equal(t, 8.5, totals["Snowbowl"])
		assert.Equal(t, 8.0, totals["Discovery"])
		assert.Equal(t, 6.0, totals["Red Lodge Mountain"])
		assert.Equal(t, 5.0, totals["Blacktail"])
		assert.Equal(t, 5.0, totals["Silver Mountain"])
		assert.Equal(t, 4.0, totals["Great Divide"])
		assert.Equal(t, 3.0, totals["Turner Mountain"])
		assert.Equal(t, 1.0, totals["Maverick"])
		// History counts even when today's table row is silent.
		assert.Equal(t, 6.0, totals["Lost Trail"])
		assert.Equal(t, 0.0, totals["Showdown"])
		assert.Equal(t, 0.0, totals["Teton Pass"])
		assert.Equal(t, 0.0, totals["Bear Paw"])
	})
}
