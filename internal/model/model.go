// Package model defines the core domain types shared across the analytics
// engine. All monetary values use shopspring/decimal — never float64 for
// money. Ratios (win rates, correlation coefficients) are plain float64.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// The API contract serializes outcome values as JSON numbers, not quoted
// strings. Setting this here, in the package that owns every decimal-bearing
// type, guarantees the behavior for any encoder — handlers and tests alike.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// RiskLevel is the closed risk classification attached to every trade.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Score maps a risk level to the ordinal score used by the correlation
// computation: low=1, medium=2, high=3. Unrecognized or missing levels
// score as medium — the mapping is total, so malformed stored data never
// introduces an error path.
func (r RiskLevel) Score() int {
	switch r {
	case RiskLow:
		return 1
	case RiskHigh:
		return 3
	default:
		return 2
	}
}

// Trade is a normalized trade record as delivered by broker sync or direct
// entry. Once ingested these are never modified.
type Trade struct {
	ID         string          `json:"id" db:"id"`
	UserID     string          `json:"userId" db:"user_id"`
	StrategyID string          `json:"strategyId" db:"strategy_id"`
	RiskLevel  RiskLevel       `json:"riskLevel" db:"risk_level"`
	Outcome    decimal.Decimal `json:"outcome" db:"outcome"` // signed profit/loss
	Win        bool            `json:"win" db:"win"`         // caller-defined, independent of outcome sign
	TradeDate  time.Time       `json:"tradeDate" db:"trade_date"`
}

// StrategyStat holds per-strategy win/loss totals for one analysis window.
type StrategyStat struct {
	StrategyID string  `json:"strategyId"`
	Total      int     `json:"total"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"winRate"` // wins/total, 0 when total == 0
}

// UnderperformingStrategy is the trimmed strategy view included in reports.
type UnderperformingStrategy struct {
	StrategyID string  `json:"strategyId"`
	WinRate    float64 `json:"winRate"`
}

// RiskBucketStat holds the average outcome for one risk level.
type RiskBucketStat struct {
	RiskLevel  RiskLevel       `json:"riskLevel"`
	AvgOutcome decimal.Decimal `json:"avgOutcome"`
	Count      int             `json:"count"`
}

// ReportMeta carries bookkeeping for one generated report.
type ReportMeta struct {
	TotalTradesAnalyzed int       `json:"totalTradesAnalyzed"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

// OptimizationReport is the full strategy-optimization response for one
// user. Reports are request-scoped: built fresh per call, never persisted.
// RiskOutcomeCorrelation is nil (JSON null) when the coefficient is
// undefined for the window's trade set.
type OptimizationReport struct {
	UserID                    string                    `json:"userId"`
	WindowDays                int                       `json:"windowDays"`
	UnderperformingStrategies []UnderperformingStrategy `json:"underperformingStrategies"`
	RiskAverages              []RiskBucketStat          `json:"riskAverages"`
	RiskOutcomeCorrelation    *float64                  `json:"riskOutcomeCorrelation"`
	Suggestions               []string                  `json:"suggestions"`
	Meta                      ReportMeta                `json:"meta"`
}
