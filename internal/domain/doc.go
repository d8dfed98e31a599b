// Package domain models ski-resort snow-condition reports and the
// reconciliation rules that turn them into display-ready tables.
//
// # Data Source
//
// Reports originate from an upstream collector that scrapes each resort's
// public snow-report page once per day (sometimes more often) and writes one
// document per resort per snapshot date into the "snow_reports" collection.
// Resorts self-report, so the feed is ragged: fields go missing, numbers
// arrive as strings, and a resort that stops grooming its page in March keeps
// serving February's numbers indefinitely.
//
// # Feed Conventions
//
// Snapshot date ("date" field):
//
//	YYYY-MM-DD, the calendar date the collector queried the resort. Documents
//	are fetched with exact-match date queries, never ranges.
//
// Self-reported update time ("last_updated" field):
//
//	Free-form. Observed layouts: "2006-01-02 15:04:05", "2006-01-02 15:04",
//	"2006-01-02T15:04:05", RFC 3339, and bare "2006-01-02". Timestamps without
//	an offset are resort wall-clock time and are interpreted in the report
//	time zone (America/Denver for the northern Rockies feed). Unparseable or
//	missing values mean the resort never stamped its report; such rows keep
//	zeroed snow metrics and has_report=false.
//
// Snow metrics (inches): snow_24h_summit, snow_24h_base, snow_overnight are
// new-snow readings; base_depth and summit_depth are standing snowpack.
// Negative values are collector artifacts and clamp to zero during coercion.
// Temperatures (temp_base, temp_summit, °F) and wind_speed (mph) keep sign.
//
// Operational text (lifts_open, runs_open, conditions_surface, comments)
// defaults to the "N/A" sentinel the dashboards already key on.
//
// SNOTEL payload ("snotel_data"): nested map from the nearest NRCS SNOTEL
// station. percent_of_median may arrive as 92, "92" or "92%"; snow_depth and
// swe may arrive as numeric strings. All are normalized to numbers when they
// parse; everything else is preserved untouched.
//
// # Seasons and Freshness
//
// A season runs October 1 through September 30. A report stamped before the
// current season's October 1 (or never stamped) is prior-season noise: all
// five depth metrics are zeroed. In-season reports additionally lose their
// new-snow fields (24h summit, 24h base, overnight) once stale under the
// configured policy:
//
//	calendar (default): fresh only when stamped on today's local calendar
//	date. A 23:50 report goes stale at midnight.
//	rolling: fresh while age ≤ tolerance (18h default; 30h suits feeds that
//	update in the evening). Age exactly at the tolerance is fresh.
//
// Standing snowpack depths survive the new-snow rule; a three-day-old base
// depth is still the base depth.
//
// # Derived Values
//
// Display snow is max(snow_24h_summit, snow_24h_base) after staleness
// adjustment. It drives table ordering, map labels, and the powder flag
// (display snow ≥ 6 inches). Sorting is has_report desc, report calendar date
// desc, display snow desc, display name asc, so output order is stable across
// refreshes.
//
// # Name Resolution
//
// The collector keys documents by compact identifiers ("BridgerBowl",
// "RedLodge"). ResolveDisplayName maps them to the display names the fixed
// location list uses as its join key; unknown identifiers pass through
// unchanged, so a newly scraped resort surfaces under its raw key until the
// location table catches up.
package domain
