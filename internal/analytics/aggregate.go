// Package analytics implements the strategy-optimization core: grouped
// aggregation of trade history, the risk/outcome correlation, and the
// rule-based suggestion generator. Everything here is pure computation over
// an immutable trade set — no I/O, no shared state, total over its inputs.
// Degenerate inputs (empty windows, single trades, zero variance) produce
// empty lists or nil coefficients, never errors.
//
// All monetary values use shopspring/decimal — never float64 for money.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tradelens/analytics-engine/internal/model"
)

// AggregateStrategies groups trades by strategy and computes win/loss
// totals. The result is sorted ascending by win rate so low performers
// surface first; ties keep first-encounter order.
func AggregateStrategies(trades []model.Trade) []model.StrategyStat {
	type agg struct {
		total int
		wins  int
	}

	byStrategy := make(map[string]*agg)
	var order []string // encounter order, keeps tie-breaking stable

	for _, t := range trades {
		a, ok := byStrategy[t.StrategyID]
		if !ok {
			a = &agg{}
			byStrategy[t.StrategyID] = a
			order = append(order, t.StrategyID)
		}
		a.total++
		if t.Win {
			a.wins++
		}
	}

	stats := make([]model.StrategyStat, 0, len(order))
	for _, id := range order {
		a := byStrategy[id]
		winRate := 0.0
		if a.total > 0 {
			winRate = float64(a.wins) / float64(a.total)
		}
		stats = append(stats, model.StrategyStat{
			StrategyID: id,
			Total:      a.total,
			Wins:       a.wins,
			WinRate:    winRate,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].WinRate < stats[j].WinRate
	})
	return stats
}

// Underperforming filters strategy stats down to those with at least one
// trade and a win rate strictly below UnderperformWinRate. Input order
// (win rate ascending) is preserved.
func Underperforming(stats []model.StrategyStat) []model.UnderperformingStrategy {
	under := make([]model.UnderperformingStrategy, 0)
	for _, s := range stats {
		if s.Total > 0 && s.WinRate < UnderperformWinRate {
			under = append(under, model.UnderperformingStrategy{
				StrategyID: s.StrategyID,
				WinRate:    s.WinRate,
			})
		}
	}
	return under
}

// AggregateRiskBuckets groups trades by risk level and computes the mean
// outcome per bucket. Levels with zero trades are omitted entirely rather
// than emitted with count=0. Buckets are sorted ascending by the level's
// string value, which yields high, low, medium — this lexical ordering is
// long-standing observable API behavior, do not "fix" it to severity order.
func AggregateRiskBuckets(trades []model.Trade) []model.RiskBucketStat {
	type bucket struct {
		sum   decimal.Decimal
		count int
	}

	byLevel := make(map[model.RiskLevel]*bucket)
	for _, t := range trades {
		b, ok := byLevel[t.RiskLevel]
		if !ok {
			b = &bucket{}
			byLevel[t.RiskLevel] = b
		}
		b.sum = b.sum.Add(t.Outcome)
		b.count++
	}

	stats := make([]model.RiskBucketStat, 0, len(byLevel))
	for level, b := range byLevel {
		stats = append(stats, model.RiskBucketStat{
			RiskLevel:  level,
			AvgOutcome: b.sum.Div(decimal.NewFromInt(int64(b.count))),
			Count:      b.count,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].RiskLevel < stats[j].RiskLevel
	})
	return stats
}
