package stats

import (
	"reflect"
	"testing"

	"tradejournal/internal/domain"
)

func closedTrade(date, pnl string) *domain.Trade {
	return &domain.Trade{ID: date + pnl, EntryDate: date, Asset: "BTCUSDT", Direction: domain.Long, PnL: pnl}
}

// The four-trade scenario used across the aggregate tests:
// +100, -50, +75, -25 on consecutive days.
func scenarioTrades() []*domain.Trade {
	return []*domain.Trade{
		closedTrade("2024-01-01", "100"),
		closedTrade("2024-01-02", "-50"),
		closedTrade("2024-01-03", "75"),
		closedTrade("2024-01-04", "-25"),
	}
}

func TestComputeAggregates(t *testing.T) {
	s := Compute(scenarioTrades())

	if s.TradeCount != 4 {
		t.Errorf("TradeCount = %d, want 4", s.TradeCount)
	}
	if s.WinRate != 50 {
		t.Errorf("WinRate = %v, want 50", s.WinRate)
	}
	if s.TotalPnL != 100 {
		t.Errorf("TotalPnL = %v, want 100", s.TotalPnL)
	}
	if s.AvgPnL != 25 {
		t.Errorf("AvgPnL = %v, want 25", s.AvgPnL)
	}
	if s.Expectancy != 25 {
		t.Errorf("Expectancy = %v, want 25", s.Expectancy)
	}
	if s.MaxWin != 100 {
		t.Errorf("MaxWin = %v, want 100", s.MaxWin)
	}
	if s.MaxLoss != -50 {
		t.Errorf("MaxLoss = %v, want -50", s.MaxLoss)
	}
	if s.AvgWin != 87.5 {
		t.Errorf("AvgWin = %v, want 87.5", s.AvgWin)
	}
	if s.AvgLoss != -37.5 {
		t.Errorf("AvgLoss = %v, want -37.5", s.AvgLoss)
	}
}

func TestComputeProfitFactor(t *testing.T) {
	// 175 of gross profit over 75 of gross loss.
	s := Compute(scenarioTrades())
	if s.ProfitFactor != 2.33 {
		t.Errorf("ProfitFactor = %v, want 2.33", s.ProfitFactor)
	}
}

func TestProfitFactorBoundaries(t *testing.T) {
	allWins := []*domain.Trade{
		closedTrade("2024-01-01", "100"),
		closedTrade("2024-01-02", "50"),
	}
	if s := Compute(allWins); s.ProfitFactor != ProfitFactorCap {
		t.Errorf("all-winning ProfitFactor = %v, want %v", s.ProfitFactor, ProfitFactorCap)
	}

	allLosses := []*domain.Trade{
		closedTrade("2024-01-01", "-100"),
		closedTrade("2024-01-02", "-50"),
	}
	if s := Compute(allLosses); s.ProfitFactor != 0 {
		t.Errorf("all-losing ProfitFactor = %v, want 0", s.ProfitFactor)
	}
}

func TestComputeRatios(t *testing.T) {
	s := Compute(scenarioTrades())
	// mean 25 over population stdev sqrt(4062.5) ~ 63.74.
	if s.Sharpe != 0.39 {
		t.Errorf("Sharpe = %v, want 0.39", s.Sharpe)
	}
	// mean 25 over downside stdev 12.5.
	if s.Sortino != 2 {
		t.Errorf("Sortino = %v, want 2", s.Sortino)
	}
	if s.MaxDrawdownPct != 50 {
		t.Errorf("MaxDrawdownPct = %v, want 50", s.MaxDrawdownPct)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	s := Compute(nil)
	if s.TradeCount != 0 || s.WinRate != 0 || s.TotalPnL != 0 || s.ProfitFactor != 0 {
		t.Errorf("empty input should produce zero summary, got %+v", s)
	}
	if len(s.AssetPnL) != 0 {
		t.Errorf("empty input AssetPnL length = %d, want 0", len(s.AssetPnL))
	}
}

func TestComputeSingleTrade(t *testing.T) {
	s := Compute([]*domain.Trade{closedTrade("2024-01-01", "40")})
	if s.Streaks.MaxWinStreak != 1 || s.Streaks.MaxLossStreak != 0 {
		t.Errorf("single trade streaks = %+v, want win 1 loss 0", s.Streaks)
	}
	// No variance, both ratios stay 0.
	if s.Sharpe != 0 || s.Sortino != 0 {
		t.Errorf("single trade Sharpe/Sortino = %v/%v, want 0/0", s.Sharpe, s.Sortino)
	}
}

func TestComputeStreaks(t *testing.T) {
	trades := []*domain.Trade{
		closedTrade("2024-01-01", "10"),
		closedTrade("2024-01-02", "20"),
		closedTrade("2024-01-03", "30"),
		closedTrade("2024-01-04", "-10"),
		closedTrade("2024-01-05", "-20"),
		closedTrade("2024-01-06", "10"),
	}
	s := Compute(trades)
	if s.Streaks.MaxWinStreak != 3 {
		t.Errorf("MaxWinStreak = %d, want 3", s.Streaks.MaxWinStreak)
	}
	if s.Streaks.MaxLossStreak != 2 {
		t.Errorf("MaxLossStreak = %d, want 2", s.Streaks.MaxLossStreak)
	}
}

func TestComputeStreaksUnsortedInput(t *testing.T) {
	// Same trades delivered out of order must produce the same streaks.
	trades := []*domain.Trade{
		closedTrade("2024-01-04", "-10"),
		closedTrade("2024-01-01", "10"),
		closedTrade("2024-01-06", "10"),
		closedTrade("2024-01-02", "20"),
		closedTrade("2024-01-05", "-20"),
		closedTrade("2024-01-03", "30"),
	}
	s := Compute(trades)
	if s.Streaks.MaxWinStreak != 3 || s.Streaks.MaxLossStreak != 2 {
		t.Errorf("unsorted streaks = %+v, want win 3 loss 2", s.Streaks)
	}
}

func TestComputeAssetPnL(t *testing.T) {
	trades := []*domain.Trade{
		{ID: "1", EntryDate: "2024-01-01", Asset: "ETHUSDT", PnL: "100"},
		{ID: "2", EntryDate: "2024-01-02", Asset: "BTCUSDT", PnL: "-20"},
		{ID: "3", EntryDate: "2024-01-03", Asset: "ETHUSDT", PnL: "-40"},
		{ID: "4", EntryDate: "2024-01-04", Asset: "BTCUSDT", PnL: "300"},
	}
	s := Compute(trades)
	if len(s.AssetPnL) != 2 {
		t.Fatalf("AssetPnL length = %d, want 2", len(s.AssetPnL))
	}
	// Sorted by total PnL descending.
	if s.AssetPnL[0].Asset != "BTCUSDT" || s.AssetPnL[0].TotalPnL != 280 {
		t.Errorf("top asset = %+v, want BTCUSDT with 280", s.AssetPnL[0])
	}
	if s.AssetPnL[1].Asset != "ETHUSDT" || s.AssetPnL[1].TotalPnL != 60 {
		t.Errorf("second asset = %+v, want ETHUSDT with 60", s.AssetPnL[1])
	}
	if s.AssetPnL[0].WinRate != 50 {
		t.Errorf("BTCUSDT win rate = %v, want 50", s.AssetPnL[0].WinRate)
	}
}

func TestComputeIgnoresOpenTrades(t *testing.T) {
	trades := append(scenarioTrades(),
		&domain.Trade{ID: "open", EntryDate: "2024-01-05", Asset: "BTCUSDT", PnL: ""},
		&domain.Trade{ID: "bad", EntryDate: "2024-01-06", Asset: "BTCUSDT", PnL: "tbd"},
	)
	s := Compute(trades)
	if s.TradeCount != 4 {
		t.Errorf("TradeCount = %d, want 4 (open trades excluded)", s.TradeCount)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	trades := scenarioTrades()
	first := Compute(trades)
	second := Compute(trades)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Compute diverged:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestComputeRRStats(t *testing.T) {
	trades := []*domain.Trade{
		{ID: "1", EntryDate: "2024-01-01", Asset: "A", PnL: "10", ActualRiskReward: "1"},
		{ID: "2", EntryDate: "2024-01-02", Asset: "A", PnL: "10", ActualRiskReward: "2"},
		{ID: "3", EntryDate: "2024-01-03", Asset: "A", PnL: "10", ActualRiskReward: "4"},
		{ID: "4", EntryDate: "2024-01-04", Asset: "A", PnL: "10", ActualRiskReward: "not yet"},
	}
	s := Compute(trades)
	if s.MedianRR != 2 {
		t.Errorf("MedianRR = %v, want 2", s.MedianRR)
	}
	if s.AvgRiskReward != 2.33 {
		t.Errorf("AvgRiskReward = %v, want 2.33", s.AvgRiskReward)
	}
}
