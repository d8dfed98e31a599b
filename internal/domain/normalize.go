package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts lists the last_updated formats observed in the feed, most
// common first. Layouts without an offset are parsed in the report time zone.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	DateLayout,
}

// snotelNumericKeys are the SNOTEL readings coerced to numbers when they
// arrive as numeric strings. Other keys are passed through untouched.
var snotelNumericKeys = []string{"snow_depth", "swe"}

// NormalizeReport coerces one raw document into a Report. It is total:
// whatever shape the document has, the result is a fully populated Report
// with zeroes, N/A sentinels, and empty maps standing in for anything
// missing or malformed.
func NormalizeReport(doc RawDoc, loc *time.Location) Report {
	r := Report{
		ResortID:    textOr(doc["resort"], ""),
		Date:        textOr(doc["date"], ""),
		LastUpdated: textOr(doc["last_updated"], NotAvailable),

		Snow24hSummit: snowAmount(doc["snow_24h_summit"]),
		Snow24hBase:   snowAmount(doc["snow_24h_base"]),
		SnowOvernight: snowAmount(doc["snow_overnight"]),
		BaseDepth:     snowAmount(doc["base_depth"]),
		SummitDepth:   snowAmount(doc["summit_depth"]),
		TempBase:      numberOr(doc["temp_base"], 0),
		TempSummit:    numberOr(doc["temp_summit"], 0),
		WindSpeed:     numberOr(doc["wind_speed"], 0),

		LiftsOpen: textOr(doc["lifts_open"], NotAvailable),
		RunsOpen:  textOr(doc["runs_open"], NotAvailable),
		Surface:   textOr(doc["conditions_surface"], NotAvailable),
		Comments:  textOr(doc["comments"], NotAvailable),

		NWSForecast: mapOrEmpty(doc["nws_forecast"]),
		Snotel:      normalizeSnotel(mapOrEmpty(doc["snotel_data"])),
	}
	r.LastUpdatedAt = ParseReportTime(r.LastUpdated, loc)
	return r
}

// ParseReportTime parses a feed last_updated value. Layouts carrying an
// offset convert into loc; naive layouts are read as loc wall-clock time.
// Empty, N/A, and unparseable values return nil.
func ParseReportTime(s string, loc *time.Location) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NotAvailable) {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(loc)
		return &t
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	return nil
}

// snowAmount coerces a depth or new-snow value. Negative readings are
// collector artifacts and clamp to zero.
func snowAmount(v any) float64 {
	n := numberOr(v, 0)
	if n < 0 {
		return 0
	}
	return n
}

// numberOr coerces feed numbers that arrive as floats, ints, json.Number, or
// numeric strings. Anything else yields def.
func numberOr(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		s := strings.TrimSpace(n)
		if s == "" || strings.EqualFold(s, NotAvailable) {
			return def
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return def
}

// textOr coerces a text field. Numbers are rendered (some resorts report
// lifts_open as a bare count); blanks and unsupported types yield def.
func textOr(v any, def string) string {
	switch s := v.(type) {
	case string:
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	}
	return def
}

// mapOrEmpty returns the value as a map, or an empty map when it is missing
// or has any other shape. Callers can always range and index the result.
func mapOrEmpty(v any) map[string]any {
	if m, ok := v.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

// normalizeSnotel coerces the numeric-ish SNOTEL readings in place on a
// copy: percent_of_median loses a trailing percent sign, snow_depth and swe
// parse when they arrive as strings. Keys that do not parse keep their raw
// value.
func normalizeSnotel(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	if v, ok := m["percent_of_median"]; ok {
		if p, ok := ParsePercent(v); ok {
			out["percent_of_median"] = p
		}
	}
	for _, k := range snotelNumericKeys {
		if s, ok := m[k].(string); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				out[k] = f
			}
		}
	}
	return out
}

// ParsePercent parses a percent-of-median value that may arrive as a number,
// "92", or "92%".
func ParsePercent(v any) (float64, bool) {
	switch p := v.(type) {
	case float64:
		return p, true
	case int:
		return float64(p), true
	case int64:
		return float64(p), true
	case json.Number:
		if f, err := p.Float64(); err == nil {
			return f, true
		}
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(p), "%")
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
