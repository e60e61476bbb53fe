package analytics

import (
	"math"

	"github.com/tradelens/analytics-engine/internal/model"
)

// RiskOutcomeCorrelation computes the Pearson product-moment correlation
// coefficient between each trade's ordinal risk score and its outcome:
//
//	r = (n·ΣXY − ΣX·ΣY) / sqrt((n·ΣX² − (ΣX)²)·(n·ΣY² − (ΣY)²))
//
// Single pass, five running sums, O(1) extra space. Returns nil when the
// coefficient is undefined: fewer than two trades, or zero variance in
// either series (all risk scores identical, or all outcomes identical).
// Floating-point rounding may place the result marginally outside [-1, 1];
// callers treat that as benign.
func RiskOutcomeCorrelation(trades []model.Trade) *float64 {
	n := len(trades)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for _, t := range trades {
		x := float64(t.RiskLevel.Score())
		y := t.Outcome.InexactFloat64()
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
		sumY2 += y * y
	}

	nf := float64(n)
	varX := nf*sumX2 - sumX*sumX
	varY := nf*sumY2 - sumY*sumY

	// Guard each variance term separately: rounding can leave a true-zero
	// term slightly negative, and sqrt of a negative would poison the
	// result with NaN.
	if varX <= 0 || varY <= 0 {
		return nil
	}

	r := (nf*sumXY - sumX*sumY) / math.Sqrt(varX*varY)
	return &r
}
