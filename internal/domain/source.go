package domain

import "context"

// RawDoc is one unprocessed report document exactly as the store returned it.
type RawDoc map[string]any

// ReportSource is the read-only query surface the refresher consumes. The
// Firestore adapter implements it in production; tests supply fakes.
type ReportSource interface {
	// LatestReportDate returns the most recent snapshot date present in the
	// collection, or "" when the collection is empty.
	LatestReportDate(ctx context.Context) (string, error)

	// ReportsByDate returns every document whose snapshot date equals date
	// (YYYY-MM-DD) exactly. A date with no documents yields an empty slice.
	ReportsByDate(ctx context.Context, date string) ([]RawDoc, error)
}
