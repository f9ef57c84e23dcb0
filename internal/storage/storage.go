package storage

import "clmScope/internal/batch"

// ValuationSink persists valuation batch results.
type ValuationSink interface {
	PutValuations(results []batch.ValuationResult) error
}

// AnalyticsSink persists analytics batch results.
type AnalyticsSink interface {
	PutAnalytics(results []batch.AnalyticsResult) error
}
