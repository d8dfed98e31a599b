package domain

import (
	"math"
	"time"
)

// FreshnessPolicy selects how the new-snow staleness rule decides whether a
// report's 24h fields are still trustworthy.
type FreshnessPolicy string

const (
	// PolicyCalendarDay trusts new-snow fields only when the report was
	// stamped on today's local calendar date.
	PolicyCalendarDay FreshnessPolicy = "calendar"
	// PolicyRollingWindow trusts new-snow fields while the report's age is
	// within a fixed tolerance.
	PolicyRollingWindow FreshnessPolicy = "rolling"
)

// DefaultFreshnessTolerance bounds report age under PolicyRollingWindow when
// no tolerance is configured.
const DefaultFreshnessTolerance = 18 * time.Hour

// PowderThresholdInches is the display-snow amount at which a resort counts
// as reporting powder.
const PowderThresholdInches = 6.0

// Freshness carries the staleness-policy knobs. The zero value behaves as
// PolicyCalendarDay in the now argument's location.
type Freshness struct {
	Policy    FreshnessPolicy
	Tolerance time.Duration
	Location  *time.Location
}

// StalenessRule identifies which rule, if any, zeroed a report's snow fields.
type StalenessRule string

const (
	StaleNone    StalenessRule = "none"
	StaleSeason  StalenessRule = "season"
	StaleNewSnow StalenessRule = "new_snow"
)

// SeasonStart returns October 1 (midnight, now's location) of the snow
// season containing now: the current year from October on, otherwise the
// previous year.
func SeasonStart(now time.Time) time.Time {
	year := now.Year()
	if now.Month() < time.October {
		year--
	}
	return time.Date(year, time.October, 1, 0, 0, 0, 0, now.Location())
}

// AdjustForStaleness applies the two staleness rules to a report and returns
// the adjusted copy plus the rule that fired.
//
// Season rule: a report stamped before the current season's start, or never
// stamped at all, zeroes every depth metric (new snow and standing pack).
// New-snow rule: an in-season report that is stale under the policy zeroes
// only the three new-snow fields; base and summit depth survive.
func AdjustForStaleness(r Report, now time.Time, f Freshness) (Report, StalenessRule) {
	loc := f.Location
	if loc == nil {
		loc = now.Location()
	}
	if r.LastUpdatedAt == nil || r.LastUpdatedAt.Before(SeasonStart(now.In(loc))) {
		r.Snow24hSummit, r.Snow24hBase, r.SnowOvernight = 0, 0, 0
		r.BaseDepth, r.SummitDepth = 0, 0
		return r, StaleSeason
	}
	if !freshForNewSnow(*r.LastUpdatedAt, now, f, loc) {
		r.Snow24hSummit, r.Snow24hBase, r.SnowOvernight = 0, 0, 0
		return r, StaleNewSnow
	}
	return r, StaleNone
}

func freshForNewSnow(updated, now time.Time, f Freshness, loc *time.Location) bool {
	switch f.Policy {
	case PolicyRollingWindow:
		tolerance := f.Tolerance
		if tolerance <= 0 {
			tolerance = DefaultFreshnessTolerance
		}
		return now.Sub(updated) <= tolerance
	default:
		// ISO dates compare lexicographically; >= keeps same-day reports
		// fresh even when the stamp is a few minutes ahead of the clock.
		return CivilDate(updated, loc) >= CivilDate(now, loc)
	}
}

// CivilDate renders t's calendar date (YYYY-MM-DD) in loc.
func CivilDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// DisplaySnowAmount is the single new-snow number shown for a report: the
// larger of the summit and base 24h readings.
func DisplaySnowAmount(r Report) float64 {
	return math.Max(r.Snow24hSummit, r.Snow24hBase)
}
