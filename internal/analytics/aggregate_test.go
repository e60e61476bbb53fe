package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradelens/analytics-engine/internal/model"
)

// tr is a test helper for building trades; the user and dates don't matter
// to aggregation, so only the analytic fields vary.
func tr(strategy string, risk model.RiskLevel, outcome float64, win bool) model.Trade {
	return model.Trade{
		ID:         "t",
		UserID:     "64f1c2a9e3b8d4f5a6b7c8d9",
		StrategyID: strategy,
		RiskLevel:  risk,
		Outcome:    decimal.NewFromFloat(outcome),
		Win:        win,
		TradeDate:  time.Now().UTC(),
	}
}

// --- Strategy aggregation ---

func TestAggregateStrategies_GroupsAndCounts(t *testing.T) {
	trades := []model.Trade{
		tr("momentum", model.RiskLow, 10, true),
		tr("momentum", model.RiskLow, -5, false),
		tr("momentum", model.RiskLow, 3, true),
		tr("breakout", model.RiskHigh, -20, false),
	}

	stats := AggregateStrategies(trades)
	if len(stats) != 2 {
		t.Fatalf("expected 2 strategies, got %d", len(stats))
	}

	// breakout (0.0) sorts before momentum (0.667).
	if stats[0].StrategyID != "breakout" || stats[0].Total != 1 || stats[0].Wins != 0 {
		t.Errorf("unexpected first stat: %+v", stats[0])
	}
	if stats[1].StrategyID != "momentum" || stats[1].Total != 3 || stats[1].Wins != 2 {
		t.Errorf("unexpected second stat: %+v", stats[1])
	}
	want := 2.0 / 3.0
	if stats[1].WinRate != want {
		t.Errorf("expected winRate %v, got %v", want, stats[1].WinRate)
	}
}

func TestAggregateStrategies_TiesKeepEncounterOrder(t *testing.T) {
	trades := []model.Trade{
		tr("alpha", model.RiskLow, 1, false),
		tr("beta", model.RiskLow, 1, false),
		tr("gamma", model.RiskLow, 1, false),
	}

	stats := AggregateStrategies(trades)
	got := []string{stats[0].StrategyID, stats[1].StrategyID, stats[2].StrategyID}
	want := []string{"alpha", "beta", "gamma"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order not stable: got %v, want %v", got, want)
		}
	}
}

func TestAggregateStrategies_WinRateBounds(t *testing.T) {
	trades := []model.Trade{
		tr("a", model.RiskLow, 1, true),
		tr("a", model.RiskLow, 1, true),
		tr("b", model.RiskLow, 1, false),
		tr("c", model.RiskLow, 1, true),
		tr("c", model.RiskLow, 1, false),
	}
	for _, s := range AggregateStrategies(trades) {
		if s.WinRate < 0 || s.WinRate > 1 {
			t.Errorf("winRate out of bounds for %s: %v", s.StrategyID, s.WinRate)
		}
	}
}

func TestAggregateStrategies_Empty(t *testing.T) {
	stats := AggregateStrategies(nil)
	if stats == nil || len(stats) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", stats)
	}
}

// --- Underperforming filter ---

func TestUnderperforming_StrictThreshold(t *testing.T) {
	stats := []model.StrategyStat{
		{StrategyID: "losing", Total: 10, Wins: 4, WinRate: 0.4},
		{StrategyID: "coin-flip", Total: 10, Wins: 5, WinRate: 0.5},
		{StrategyID: "winning", Total: 10, Wins: 6, WinRate: 0.6},
	}

	under := Underperforming(stats)
	if len(under) != 1 {
		t.Fatalf("expected 1 underperformer, got %d", len(under))
	}
	if under[0].StrategyID != "losing" {
		t.Errorf("expected losing flagged, got %s", under[0].StrategyID)
	}
	// Exactly 0.5 must not be flagged.
	for _, u := range under {
		if u.StrategyID == "coin-flip" {
			t.Error("winRate of exactly 0.5 should not be underperforming")
		}
	}
}

func TestUnderperforming_AllWins(t *testing.T) {
	trades := []model.Trade{
		tr("a", model.RiskLow, -10, true), // win flag independent of outcome sign
		tr("b", model.RiskHigh, -50, true),
	}
	under := Underperforming(AggregateStrategies(trades))
	if len(under) != 0 {
		t.Errorf("all-wins set should have no underperformers, got %d", len(under))
	}
}

func TestUnderperforming_MatchesThresholdMembership(t *testing.T) {
	trades := []model.Trade{
		tr("a", model.RiskLow, 1, false),
		tr("a", model.RiskLow, 1, false),
		tr("a", model.RiskLow, 1, true),
		tr("b", model.RiskLow, 1, true),
		tr("b", model.RiskLow, 1, false),
	}
	stats := AggregateStrategies(trades)
	under := Underperforming(stats)

	flagged := make(map[string]bool)
	for _, u := range under {
		flagged[u.StrategyID] = true
	}
	for _, s := range stats {
		want := s.Total > 0 && s.WinRate < UnderperformWinRate
		if flagged[s.StrategyID] != want {
			t.Errorf("membership mismatch for %s: flagged=%v want=%v (rate %v)",
				s.StrategyID, flagged[s.StrategyID], want, s.WinRate)
		}
	}
}

// --- Risk bucket aggregation ---

func TestAggregateRiskBuckets_MeansAndCounts(t *testing.T) {
	trades := []model.Trade{
		tr("a", model.RiskLow, 10, true),
		tr("a", model.RiskLow, 20, true),
		tr("b", model.RiskHigh, -30, false),
	}

	buckets := AggregateRiskBuckets(trades)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	// Lexical ordering: "high" sorts before "low".
	if buckets[0].RiskLevel != model.RiskHigh {
		t.Errorf("expected high first, got %s", buckets[0].RiskLevel)
	}
	if !buckets[0].AvgOutcome.Equal(decimal.NewFromInt(-30)) || buckets[0].Count != 1 {
		t.Errorf("unexpected high bucket: %+v", buckets[0])
	}
	if buckets[1].RiskLevel != model.RiskLow {
		t.Errorf("expected low second, got %s", buckets[1].RiskLevel)
	}
	if !buckets[1].AvgOutcome.Equal(decimal.NewFromInt(15)) || buckets[1].Count != 2 {
		t.Errorf("unexpected low bucket: %+v", buckets[1])
	}
}

func TestAggregateRiskBuckets_LexicalOrder(t *testing.T) {
	trades := []model.Trade{
		tr("a", model.RiskMedium, 1, true),
		tr("a", model.RiskLow, 1, true),
		tr("a", model.RiskHigh, 1, true),
	}

	buckets := AggregateRiskBuckets(trades)
	want := []model.RiskLevel{model.RiskHigh, model.RiskLow, model.RiskMedium}
	for i, b := range buckets {
		if b.RiskLevel != want[i] {
			t.Fatalf("expected lexical order %v, got position %d = %s", want, i, b.RiskLevel)
		}
	}
}

func TestAggregateRiskBuckets_EmptyBucketsOmitted(t *testing.T) {
	trades := []model.Trade{
		tr("a", model.RiskMedium, 5, true),
	}

	buckets := AggregateRiskBuckets(trades)
	if len(buckets) != 1 {
		t.Fatalf("expected only populated buckets, got %d", len(buckets))
	}
	if buckets[0].RiskLevel != model.RiskMedium {
		t.Errorf("expected medium bucket, got %s", buckets[0].RiskLevel)
	}
}

func TestAggregateRiskBuckets_Empty(t *testing.T) {
	buckets := AggregateRiskBuckets(nil)
	if buckets == nil || len(buckets) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", buckets)
	}
}
