// Command validate checks the checked-in snow-report fixture end to end: raw
// document shape, schema-coercion totality, the conditions-table join, and
// the trailing snowfall series. It re-runs the actual reconciliation code, so
// a drifted fixture and a behavior change in the domain package both surface
// here.
//
// Usage:
//
//	go run ./cmd/validate -fixture data/mock/snow_reports_250115_window.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/snow-report-service/internal/domain"
)

const (
	reportTimezone = "America/Denver"
	windowDays     = 5
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	fixture := flag.String("fixture", "", "path to the raw snow-report JSON fixture")
	flag.Parse()

	if *fixture == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*fixture); code != 0 {
		os.Exit(code)
	}
}

func run(fixturePath string) int {
	fmt.Println("=== Snow Report Fixture Validation ===")
	fmt.Println()

	docs, err := loadJSON[domain.RawDoc](fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	zone, err := time.LoadLocation(reportTimezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load report timezone: %v\n", err)
		return 1
	}

	latest := latestDate(docs)
	if latest == "" {
		fmt.Fprintln(os.Stderr, "FATAL: no document carries a date")
		return 1
	}
	end, err := time.ParseInLocation(domain.DateLayout, latest, zone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: latest date %q: %v\n", latest, err)
		return 1
	}

	// Reconcile as a mid-morning query on the newest fixture day, the same
	// vantage genmock prints its stats from.
	now := end.Add(10 * time.Hour)
	window := domain.TrendWindow(now, windowDays, zone)
	freshness := domain.Freshness{Policy: domain.PolicyCalendarDay, Location: zone}

	history := normalize(docs, zone)
	var latestReports []domain.Report
	for _, rep := range history {
		if rep.Date == latest {
			latestReports = append(latestReports, rep)
		}
	}

	rows, stats := domain.BuildConditions(latestReports, now, freshness)
	points := domain.BuildDailySeries(history, rowNames(rows), now, windowDays, zone)

	// ── Run validation phases ──
	phases := []*phase{
		validateFixtureShape(docs, window),
		validateCoercion(docs, zone),
		validateConditions(rows, stats, latestReports, zone),
		validateTrendSeries(points, rows, history, window, zone),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Documents: %d raw (%d on %s), %d conditions rows, %d trend points\n",
		len(docs), len(latestReports), latest, len(rows), len(points))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// latestDate finds the newest document date; ISO dates order lexically.
func latestDate(docs []domain.RawDoc) string {
	var latest string
	for _, doc := range docs {
		if d, _ := doc["date"].(string); d > latest {
			latest = d
		}
	}
	return latest
}

func normalize(docs []domain.RawDoc, zone *time.Location) []domain.Report {
	reports := make([]domain.Report, 0, len(docs))
	for _, doc := range docs {
		reports = append(reports, domain.NormalizeReport(doc, zone))
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

// ── Phase 1: Fixture Shape ──
// Every document carries the keys the reconciler joins on, and every date
// falls inside the trailing window the fixture is supposed to cover.

func validateFixtureShape(docs []domain.RawDoc, window []string) *phase {
	p := &phase{name: "Phase 1: Fixture Shape (raw documents)"}

	inWindow := make(map[string]bool, len(window))
	for _, d := range window {
		inWindow[d] = true
	}

	for i, doc := range docs {
		resort, _ := doc["resort"].(string)
		if resort == "" {
			p.errorf("doc %d: missing resort key", i)
		}

		date, _ := doc["date"].(string)
		if date == "" {
			p.errorf("doc %d (%s): missing date", i, resort)
			continue
		}
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			p.errorf("doc %d (%s): date %q is not %s", i, resort, date, domain.DateLayout)
			continue
		}
		if !inWindow[date] {
			p.errorf("doc %d (%s): date %q outside the window %v", i, resort, date, window)
		}

		if _, ok := doc["last_updated"]; !ok {
			p.errorf("doc %d (%s %s): missing last_updated", i, resort, date)
		}
	}
	return p
}

// ── Phase 2: Coercion Totality ──
// NormalizeReport must absorb whatever shape a document has: no negative
// depths, no empty text, no nil maps, no unparsed numeric SNOTEL readings.

func validateCoercion(docs []domain.RawDoc, zone *time.Location) *phase {
	p := &phase{name: "Phase 2: Coercion Totality (normalization)"}

	for i, doc := range docs {
		rep := domain.NormalizeReport(doc, zone)
		id := fmt.Sprintf("doc %d (%s %s)", i, rep.ResortID, rep.Date)

		for name, v := range map[string]float64{
			"snow_24h_summit": rep.Snow24hSummit,
			"snow_24h_base":   rep.Snow24hBase,
			"snow_overnight":  rep.SnowOvernight,
			"base_depth":      rep.BaseDepth,
			"summit_depth":    rep.SummitDepth,
		} {
			if v < 0 {
				p.errorf("%s: %s is negative after coercion: %g", id, name, v)
			}
		}

		for name, v := range map[string]string{
			"last_updated":       rep.LastUpdated,
			"lifts_open":         rep.LiftsOpen,
			"runs_open":          rep.RunsOpen,
			"conditions_surface": rep.Surface,
			"comments":           rep.Comments,
		} {
			if v == "" {
				p.errorf("%s: %s coerced to empty string (want a value or %q)", id, name, domain.NotAvailable)
			}
		}

		if rep.NWSForecast == nil || rep.Snotel == nil {
			p.errorf("%s: nested maps must never be nil", id)
		}
		if rep.LastUpdatedAt != nil && rep.LastUpdatedAt.IsZero() {
			p.errorf("%s: parsed stamp is the zero time", id)
		}

		if v, ok := rep.Snotel["percent_of_median"]; ok {
			if _, isNum := v.(float64); !isNum {
				if _, parseable := domain.ParsePercent(v); parseable {
					p.errorf("%s: snotel percent_of_median %v left unparsed", id, v)
				}
			}
		}
	}
	return p
}

// ── Phase 3: Conditions Reconciliation ──
// The join must yield exactly one row per fixed location, in presentation
// order, with the derived fields consistent with the row's own numbers.

func validateConditions(rows []domain.ConditionsRow, stats domain.BuildStats, latest []domain.Report, zone *time.Location) *phase {
	p := &phase{name: "Phase 3: Conditions Reconciliation (join)"}

	locs := domain.Locations()
	if len(rows) != len(locs) {
		p.errorf("row count: expected %d (one per location), got %d", len(locs), len(rows))
	}

	known := make(map[string]bool, len(locs))
	for _, l := range locs {
		known[l.DisplayName] = true
	}
	seen := map[string]int{}
	for i := range rows {
		seen[rows[i].DisplayName]++
		if !known[rows[i].DisplayName] {
			p.errorf("row %q does not correspond to any fixed location", rows[i].DisplayName)
		}
	}
	for _, l := range locs {
		if seen[l.DisplayName] != 1 {
			p.errorf("location %q appears %d times (want exactly once)", l.DisplayName, seen[l.DisplayName])
		}
	}

	reported := map[string]bool{}
	for _, rep := range latest {
		reported[domain.ResolveDisplayName(rep.ResortID)] = true
	}

	var matched, reporting, powder int
	for i := range rows {
		row := &rows[i]
		if reported[row.DisplayName] {
			matched++
		}
		if row.HasReport {
			reporting++
		}
		if row.IsPowder {
			powder++
		}

		if !floatEq(row.DisplaySnow, math.Max(row.Snow24hSummit, row.Snow24hBase)) {
			p.errorf("%s: display snow %g is not max(summit %g, base %g)",
				row.DisplayName, row.DisplaySnow, row.Snow24hSummit, row.Snow24hBase)
		}
		if row.IsPowder != (row.DisplaySnow >= domain.PowderThresholdInches) {
			p.errorf("%s: powder flag %v disagrees with display snow %g (threshold %g)",
				row.DisplayName, row.IsPowder, row.DisplaySnow, domain.PowderThresholdInches)
		}
		if row.HasReport != (row.LastUpdatedAt != nil) {
			p.errorf("%s: has_report is %v but parsed stamp says otherwise", row.DisplayName, row.HasReport)
		}

		// Rows without a usable stamp fall under the season rule: no standing
		// snow may survive, whatever the document claimed.
		if !row.HasReport {
			for name, v := range map[string]float64{
				"snow_24h_summit": row.Snow24hSummit,
				"snow_24h_base":   row.Snow24hBase,
				"snow_overnight":  row.SnowOvernight,
				"base_depth":      row.BaseDepth,
				"summit_depth":    row.SummitDepth,
			} {
				if v != 0 {
					p.errorf("%s: no usable stamp but %s=%g", row.DisplayName, name, v)
				}
			}
		}

		// Rows with no document at all must be pure defaults.
		if !reported[row.DisplayName] {
			if row.LastUpdated != domain.NotAvailable || row.LiftsOpen != domain.NotAvailable {
				p.errorf("%s: no document this day but row is not the default (last_updated=%q, lifts_open=%q)",
					row.DisplayName, row.LastUpdated, row.LiftsOpen)
			}
			if row.DisplaySnow != 0 {
				p.errorf("%s: no document this day but display snow is %g", row.DisplayName, row.DisplaySnow)
			}
		}
	}

	if stats.Matched != matched {
		p.errorf("stats: matched %d, recomputed %d", stats.Matched, matched)
	}
	if stats.Reporting != reporting {
		p.errorf("stats: reporting %d, recomputed %d", stats.Reporting, reporting)
	}
	if stats.Powder != powder {
		p.errorf("stats: powder %d, recomputed %d", stats.Powder, powder)
	}
	if stats.SeasonStale+stats.NewSnowStale > stats.Matched {
		p.errorf("stats: %d stale rows exceed %d matched", stats.SeasonStale+stats.NewSnowStale, stats.Matched)
	}

	for i := 1; i < len(rows); i++ {
		if rankedBefore(&rows[i], &rows[i-1], zone) {
			p.errorf("presentation order: %q sorts before %q but is listed after it",
				rows[i].DisplayName, rows[i-1].DisplayName)
		}
	}
	return p
}

// rankedBefore mirrors the conditions-table comparator: reporting resorts
// first, then newest report day, most display snow, name ascending.
func rankedBefore(a, b *domain.ConditionsRow, zone *time.Location) bool {
	if a.HasReport != b.HasReport {
		return a.HasReport
	}
	ad, bd := reportDay(a, zone), reportDay(b, zone)
	if ad != bd {
		return ad > bd
	}
	if a.DisplaySnow != b.DisplaySnow {
		return a.DisplaySnow > b.DisplaySnow
	}
	return a.DisplayName < b.DisplayName
}

func reportDay(row *domain.ConditionsRow, zone *time.Location) string {
	if row.LastUpdatedAt == nil {
		return ""
	}
	return domain.CivilDate(*row.LastUpdatedAt, zone)
}

// ── Phase 4: Trend Series ──
// One point per (table row, window day), resort-major and chronological,
// window totals consistent, and every charted amount backed by a document
// actually stamped on its day.

func validateTrendSeries(points []domain.DailySnowPoint, rows []domain.ConditionsRow, history []domain.Report, window []string, zone *time.Location) *phase {
	p := &phase{name: "Phase 4: Trend Series (trailing window)"}

	names := rowNames(rows)
	if len(points) != len(names)*len(window) {
		p.errorf("point count: expected %d (%d resorts x %d days), got %d",
			len(names)*len(window), len(names), len(window), len(points))
		return p
	}

	for j, name := range names {
		for k, day := range window {
			pt := points[j*len(window)+k]
			if pt.Resort != name || pt.Date != day {
				p.errorf("point %d: expected (%s, %s), got (%s, %s)",
					j*len(window)+k, name, day, pt.Resort, pt.Date)
			}
		}
	}

	totals := map[string]float64{}
	for _, pt := range points {
		if pt.Snow < 0 {
			p.errorf("%s %s: negative snow %g", pt.Resort, pt.Date, pt.Snow)
		}
		totals[pt.Resort] += pt.Snow
	}
	for _, pt := range points {
		if !floatEq(pt.WindowTotal, totals[pt.Resort]) {
			p.errorf("%s %s: window total %g, points sum to %g",
				pt.Resort, pt.Date, pt.WindowTotal, totals[pt.Resort])
		}
	}

	backed := map[string]bool{}
	for i := range history {
		rep := &history[i]
		if rep.LastUpdatedAt == nil || domain.DisplaySnowAmount(*rep) <= 0 {
			continue
		}
		if domain.CivilDate(*rep.LastUpdatedAt, zone) != rep.Date {
			continue
		}
		backed[domain.ResolveDisplayName(rep.ResortID)+"|"+rep.Date] = true
	}
	for _, pt := range points {
		if pt.Snow > 0 && !backed[pt.Resort+"|"+pt.Date] {
			p.errorf("%s %s: charts %g inches with no same-day-stamped document",
				pt.Resort, pt.Date, pt.Snow)
		}
	}
	return p
}

// ── Helpers ──

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
