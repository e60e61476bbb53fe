package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/tradelens/analytics-engine/internal/model"
)

// Advisory policy thresholds. These defaults are load-bearing: clients and
// downstream tooling expect the exact suggestion strings and trigger points
// below, so changing any of them is an API change.
const (
	// UnderperformWinRate is the exclusive win-rate ceiling below which a
	// strategy is flagged. Exactly 0.5 is not underperforming.
	UnderperformWinRate = 0.5

	// MinLowRiskSample is the inclusive minimum trade count before the
	// low-risk bucket is considered statistically worth acting on.
	MinLowRiskSample = 3

	// HighRiskCorrelationAlert is the exclusive correlation floor: only a
	// coefficient strictly below it triggers the exposure warning.
	HighRiskCorrelationAlert = -0.2
)

// Suggestions applies the advisory rules in fixed order and returns the
// resulting lines. Rule order defines output order:
//
//  1. one "refine" line per underperforming strategy, win rate ascending;
//  2. one size-increase line when the low-risk bucket has enough samples
//     and a strictly positive average outcome;
//  3. one exposure-reduction line when risk and outcome are meaningfully
//     negatively correlated.
//
// Pure function: zero matches yield an empty (non-nil) slice.
func Suggestions(under []model.UnderperformingStrategy, buckets []model.RiskBucketStat, corr *float64) []string {
	suggestions := make([]string, 0)

	for _, s := range under {
		suggestions = append(suggestions, "Refine entry criteria for strategy "+s.StrategyID)
	}

	for _, b := range buckets {
		if b.RiskLevel != model.RiskLow {
			continue
		}
		if b.Count >= MinLowRiskSample && b.AvgOutcome.GreaterThan(decimal.Zero) {
			suggestions = append(suggestions, "Increase position size for low-risk trades")
		}
		break // at most one low bucket exists
	}

	if corr != nil && *corr < HighRiskCorrelationAlert {
		suggestions = append(suggestions, "Reduce exposure to high-risk trades")
	}

	return suggestions
}
