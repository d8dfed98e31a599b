package domain

import "time"

// NotAvailable is the sentinel the dashboards render for missing text fields.
const NotAvailable = "N/A"

// DateLayout is the snapshot-date format used throughout the feed.
const DateLayout = "2006-01-02"

// Report is one resort's conditions for a single snapshot date after schema
// coercion. Every field is total: missing or malformed feed values land as
// zero, the N/A sentinel, or an empty map, never as an error.
type Report struct {
	ResortID      string     `json:"resort"`
	Date          string     `json:"date"`
	LastUpdated   string     `json:"last_updated"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`

	Snow24hSummit float64 `json:"snow_24h_summit"`
	Snow24hBase   float64 `json:"snow_24h_base"`
	SnowOvernight float64 `json:"snow_overnight"`
	BaseDepth     float64 `json:"base_depth"`
	SummitDepth   float64 `json:"summit_depth"`
	TempBase      float64 `json:"temp_base"`
	TempSummit    float64 `json:"temp_summit"`
	WindSpeed     float64 `json:"wind_speed"`

	LiftsOpen string `json:"lifts_open"`
	RunsOpen  string `json:"runs_open"`
	Surface   string `json:"conditions_surface"`
	Comments  string `json:"comments"`

	NWSForecast map[string]any `json:"nws_forecast"`
	Snotel      map[string]any `json:"snotel_data"`
}

// ResortLocation is one entry in the fixed resort reference list.
type ResortLocation struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ConditionsRow is one resort's line in the current-conditions table: the
// fixed location joined with its latest report (or defaults when none
// matched) plus the derived display fields.
type ConditionsRow struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`

	Report

	DisplaySnow float64 `json:"display_snow"`
	IsPowder    bool    `json:"is_powder"`
	HasReport   bool    `json:"has_report"`
}

// DailySnowPoint is one (resort, day) cell of the trailing snowfall series.
// WindowTotal repeats the resort's window sum on every point so chart
// tooltips can show it without a second lookup.
type DailySnowPoint struct {
	Resort      string  `json:"display_name"`
	Date        string  `json:"date"`
	Snow        float64 `json:"snow"`
	WindowTotal float64 `json:"total_snow"`
}

// PowderResort is one powder-reporting resort inside a PowderAlert.
type PowderResort struct {
	Name string  `json:"display_name"`
	Snow float64 `json:"display_snow"`
}

// PowderAlert summarizes the resorts whose display snow crossed the powder
// threshold in one snapshot. Resorts inherit the conditions-table order.
type PowderAlert struct {
	SnapshotDate string         `json:"snapshot_date"`
	Count        int            `json:"count"`
	Resorts      []PowderResort `json:"resorts"`
	GeneratedAt  time.Time      `json:"generated_at"`
}
