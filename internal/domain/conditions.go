package domain

import (
	"sort"
	"time"
)

// BuildStats summarizes one conditions build for logging and metrics.
type BuildStats struct {
	Matched      int // raw reports that joined a known location
	SeasonStale  int // rows zeroed by the season rule
	NewSnowStale int // rows whose new-snow fields were zeroed
	Reporting    int // rows with has_report set
	Powder       int // rows at or above the powder threshold
}

// BuildConditions left-joins the fixed location list with one snapshot's
// reports and derives the display fields. The result always has exactly one
// row per location, sorted for presentation; locations without a report get
// default rows. When several reports resolve to the same display name the
// one with the latest update stamp wins.
func BuildConditions(reports []Report, now time.Time, f Freshness) ([]ConditionsRow, BuildStats) {
	loc := f.Location
	if loc == nil {
		loc = now.Location()
	}

	byName := make(map[string]Report, len(reports))
	for _, rep := range reports {
		name := ResolveDisplayName(rep.ResortID)
		if cur, ok := byName[name]; !ok || updatedAfter(rep, cur) {
			byName[name] = rep
		}
	}

	var stats BuildStats
	rows := make([]ConditionsRow, 0, len(locations))
	for _, entry := range Locations() {
		row := ConditionsRow{
			DisplayName: entry.DisplayName,
			Lat:         entry.Lat,
			Lon:         entry.Lon,
			Report:      defaultReport(),
		}
		if rep, ok := byName[entry.DisplayName]; ok {
			stats.Matched++
			adjusted, rule := AdjustForStaleness(rep, now, f)
			switch rule {
			case StaleSeason:
				stats.SeasonStale++
			case StaleNewSnow:
				stats.NewSnowStale++
			}
			row.Report = adjusted
			row.HasReport = adjusted.LastUpdatedAt != nil
		}
		row.DisplaySnow = DisplaySnowAmount(row.Report)
		row.IsPowder = row.DisplaySnow >= PowderThresholdInches
		if row.HasReport {
			stats.Reporting++
		}
		if row.IsPowder {
			stats.Powder++
		}
		rows = append(rows, row)
	}

	sortConditions(rows, loc)
	return rows, stats
}

// defaultReport is the row body for a location with no matching document:
// zero metrics, N/A text, empty nested maps.
func defaultReport() Report {
	return Report{
		LastUpdated: NotAvailable,
		LiftsOpen:   NotAvailable,
		RunsOpen:    NotAvailable,
		Surface:     NotAvailable,
		Comments:    NotAvailable,
		NWSForecast: map[string]any{},
		Snotel:      map[string]any{},
	}
}

// updatedAfter reports whether a carries a strictly newer update stamp than b.
func updatedAfter(a, b Report) bool {
	if a.LastUpdatedAt == nil {
		return false
	}
	if b.LastUpdatedAt == nil {
		return true
	}
	return a.LastUpdatedAt.After(*b.LastUpdatedAt)
}

// sortConditions orders rows for presentation: reporting resorts first, then
// newest report calendar date, most display snow, and display name as the
// final tie-break. The name tie-break makes output order a pure function of
// the input set.
func sortConditions(rows []ConditionsRow, loc *time.Location) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.HasReport != b.HasReport {
			return a.HasReport
		}
		ad, bd := reportDay(a, loc), reportDay(b, loc)
		if ad != bd {
			return ad > bd
		}
		if a.DisplaySnow != b.DisplaySnow {
			return a.DisplaySnow > b.DisplaySnow
		}
		return a.DisplayName < b.DisplayName
	})
}

func reportDay(row ConditionsRow, loc *time.Location) string {
	if row.LastUpdatedAt == nil {
		return ""
	}
	return CivilDate(*row.LastUpdatedAt, loc)
}

// BuildPowderAlert collects the powder-flagged rows of a conditions table
// into an alert payload. Count is zero with an empty (non-nil) resort list
// when nothing qualifies, so consumers can always range.
func BuildPowderAlert(rows []ConditionsRow, snapshotDate string, now time.Time) PowderAlert {
	alert := PowderAlert{
		SnapshotDate: snapshotDate,
		Resorts:      []PowderResort{},
		GeneratedAt:  now,
	}
	for _, row := range rows {
		if !row.IsPowder {
			continue
		}
		alert.Resorts = append(alert.Resorts, PowderResort{
			Name: row.DisplayName,
			Snow: row.DisplaySnow,
		})
	}
	alert.Count = len(alert.Resorts)
	return alert
}
