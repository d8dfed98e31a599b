package domain

import "time"

// TrendWindow returns the trailing n local calendar dates ending today,
// oldest first.
func TrendWindow(now time.Time, n int, loc *time.Location) []string {
	if n <= 0 {
		return nil
	}
	local := now.In(loc)
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, local.AddDate(0, 0, -i).Format(DateLayout))
	}
	return days
}

// BuildDailySeries assembles the trailing-window snowfall series: one point
// per resort per window day, in resort order then chronological order, with
// the resort's window total repeated on every point.
//
// A day's snow counts only when the report for that day was actually stamped
// on that day; carried-forward numbers from an earlier stamp chart as zero.
// This check is independent of the conditions-table staleness rules because
// it compares against the point's own date, not against now. Days without a
// document chart as zero, so every series has exactly len(resorts)×days
// points.
func BuildDailySeries(history []Report, resorts []string, now time.Time, days int, loc *time.Location) []DailySnowPoint {
	window := TrendWindow(now, days, loc)
	if len(window) == 0 {
		return []DailySnowPoint{}
	}

	type cell struct{ name, date string }
	byDay := make(map[cell]Report, len(history))
	for _, rep := range history {
		k := cell{ResolveDisplayName(rep.ResortID), rep.Date}
		if cur, ok := byDay[k]; !ok || updatedAfter(rep, cur) {
			byDay[k] = rep
		}
	}

	points := make([]DailySnowPoint, 0, len(resorts)*len(window))
	totals := make(map[string]float64, len(resorts))
	for _, name := range resorts {
		for _, day := range window {
			var snow float64
			if rep, ok := byDay[cell{name, day}]; ok {
				amount := DisplaySnowAmount(rep)
				if amount > 0 && rep.LastUpdatedAt != nil && CivilDate(*rep.LastUpdatedAt, loc) == day {
					snow = amount
				}
			}
			totals[name] += snow
			points = append(points, DailySnowPoint{Resort: name, Date: day, Snow: snow})
		}
	}
	for i := range points {
		points[i].WindowTotal = totals[points[i].Resort]
	}
	return points
}
