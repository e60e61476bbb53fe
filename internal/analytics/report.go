package analytics

import (
	"time"

	"github.com/tradelens/analytics-engine/internal/model"
)

// WindowDays is the trailing analysis window applied to every report.
// Fixed by design — not configurable through the API.
const WindowDays = 30

// WindowStart returns the lower bound on trade dates for a report built at
// the given instant. There is no upper bound: same-day and future-dated
// trades are included.
func WindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -WindowDays)
}

// BuildReport runs the full compute sequence — aggregate, correlate,
// suggest, assemble — over one immutable trade set. The caller is
// responsible for querying the window; passing an empty set yields the
// fully degenerate report (empty lists, nil correlation, zero totals)
// rather than an error. GeneratedAt is stamped here, at assembly time.
func BuildReport(userID string, trades []model.Trade) model.OptimizationReport {
	stats := AggregateStrategies(trades)
	under := Underperforming(stats)
	buckets := AggregateRiskBuckets(trades)
	corr := RiskOutcomeCorrelation(trades)

	return model.OptimizationReport{
		UserID:                    userID,
		WindowDays:                WindowDays,
		UnderperformingStrategies: under,
		RiskAverages:              buckets,
		RiskOutcomeCorrelation:    corr,
		Suggestions:               Suggestions(under, buckets, corr),
		Meta: model.ReportMeta{
			TotalTradesAnalyzed: len(trades),
			GeneratedAt:         time.Now().UTC(),
		},
	}
}
