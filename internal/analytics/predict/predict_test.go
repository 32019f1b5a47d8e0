package predict

import (
	"fmt"
	"strings"
	"testing"

	"tradejournal/internal/domain"
)

func historyTrade(id int, pnl string) *domain.Trade {
	return &domain.Trade{
		ID:              fmt.Sprintf("h%d", id),
		Asset:           "BTCUSDT",
		Direction:       domain.Long,
		TradeType:       domain.TypeSwing,
		MarketCondition: domain.MarketTrendingUp,
		EntryRiskReward: "2",
		EntryDate:       "2024-01-01",
		EntryTime:       "10:00",
		PnL:             pnl,
	}
}

func TestWinProbabilityThinHistory(t *testing.T) {
	history := []*domain.Trade{
		historyTrade(1, "100"),
		historyTrade(2, "-50"),
		historyTrade(3, ""), // open, does not count toward history
	}
	pred := WinProbability(history, historyTrade(99, ""))
	if pred.Probability != NeutralProbability {
		t.Errorf("Probability = %v, want neutral %v", pred.Probability, NeutralProbability)
	}
	if pred.SampleSize != 2 {
		t.Errorf("SampleSize = %d, want 2", pred.SampleSize)
	}
	if !strings.Contains(pred.Description, "Not enough data") {
		t.Errorf("Description = %q, want an insufficient-data message", pred.Description)
	}
}

func TestWinProbabilityClampsHigh(t *testing.T) {
	var history []*domain.Trade
	for i := 0; i < 12; i++ {
		history = append(history, historyTrade(i, "100"))
	}
	pred := WinProbability(history, historyTrade(99, ""))
	if pred.Probability != 85 {
		t.Errorf("Probability = %v, want clamp ceiling 85", pred.Probability)
	}
	for _, f := range pred.Factors {
		if !f.Used {
			t.Errorf("factor %q unused with 12 exact matches", f.Name)
		}
		if f.WinRate != 100 {
			t.Errorf("factor %q win rate = %v, want 100", f.Name, f.WinRate)
		}
	}
}

func TestWinProbabilityClampsLow(t *testing.T) {
	var history []*domain.Trade
	for i := 0; i < 12; i++ {
		history = append(history, historyTrade(i, "-50"))
	}
	pred := WinProbability(history, historyTrade(99, ""))
	if pred.Probability != 15 {
		t.Errorf("Probability = %v, want clamp floor 15", pred.Probability)
	}
}

func TestWinProbabilityFallsBackToOverallRate(t *testing.T) {
	// 6 wins, 4 losses, sharing only the direction with the candidate.
	var history []*domain.Trade
	for i := 0; i < 10; i++ {
		pnl := "100"
		if i >= 6 {
			pnl = "-50"
		}
		history = append(history, &domain.Trade{
			ID:        fmt.Sprintf("h%d", i),
			Asset:     "ETHUSDT",
			Direction: domain.Long,
			PnL:       pnl,
		})
	}
	candidate := &domain.Trade{Asset: "BTCUSDT", Direction: domain.Long}

	pred := WinProbability(history, candidate)
	if pred.Probability != 60 {
		t.Errorf("Probability = %v, want overall rate 60", pred.Probability)
	}
	for _, f := range pred.Factors {
		switch f.Name {
		case "direction":
			if !f.Used || f.Matches != 10 {
				t.Errorf("direction factor = %+v, want used with 10 matches", f)
			}
		default:
			if f.Used {
				t.Errorf("factor %q used with no candidate data", f.Name)
			}
			if f.WinRate != 60 {
				t.Errorf("factor %q fallback rate = %v, want 60", f.Name, f.WinRate)
			}
		}
	}
}

func TestKelly(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		payoff      float64
		fraction    float64
		low, high   int
	}{
		{"capped edge", 60, 1.5, 0.25, 13, 25},
		{"no edge", 40, 1.5, 0, 0, 0},
		{"coin flip", 50, 1.5, 0.1667, 8, 17},
		{"negative payoff uses default", 60, -1, 0.25, 13, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Kelly(tt.probability, tt.payoff)
			if s.Fraction != tt.fraction {
				t.Errorf("Fraction = %v, want %v", s.Fraction, tt.fraction)
			}
			if s.PercentLow != tt.low || s.PercentHigh != tt.high {
				t.Errorf("range = %d-%d%%, want %d-%d%%", s.PercentLow, s.PercentHigh, tt.low, tt.high)
			}
		})
	}
}

func TestKellyNoEdgeDescription(t *testing.T) {
	s := Kelly(40, 1.5)
	if !strings.Contains(s.Description, "staying out") {
		t.Errorf("Description = %q, want a staying-out message", s.Description)
	}
}

func evTrade(id int, ev, prob, pnl string) *domain.Trade {
	return &domain.Trade{
		ID:             fmt.Sprintf("ev%d", id),
		ExpectedValue:  ev,
		WinProbability: prob,
		PnL:            pnl,
	}
}

func TestAccuracyByEVOptimistic(t *testing.T) {
	// Predicted 80% on average, realized 25%: strongly optimistic.
	trades := []*domain.Trade{
		evTrade(1, "20", "80", "100"),
		evTrade(2, "25", "80", "-50"),
		evTrade(3, "30", "80", "-40"),
		evTrade(4, "35", "80", "-30"),
	}
	rep := AccuracyByEV(trades)
	if rep.Analyzed != 4 {
		t.Fatalf("Analyzed = %d, want 4", rep.Analyzed)
	}
	if rep.OverallBias != -55 {
		t.Errorf("OverallBias = %v, want -55", rep.OverallBias)
	}
	if rep.Calibration != "optimistic" {
		t.Errorf("Calibration = %q, want optimistic", rep.Calibration)
	}

	var positive *EVBand
	for i := range rep.Bands {
		if rep.Bands[i].Label == "Positive" {
			positive = &rep.Bands[i]
		}
	}
	if positive == nil || positive.Count != 4 {
		t.Fatalf("Positive band = %+v, want all 4 trades", positive)
	}
	if positive.AvgPredicted != 80 || positive.RealizedRate != 25 {
		t.Errorf("Positive band predicted/realized = %v/%v, want 80/25",
			positive.AvgPredicted, positive.RealizedRate)
	}
}

func TestAccuracyByEVBandAssignment(t *testing.T) {
	trades := []*domain.Trade{
		evTrade(1, "-60", "50", "10"),
		evTrade(2, "-20", "50", "10"),
		evTrade(3, "-5", "50", "10"),
		evTrade(4, "5", "50", "10"),
		evTrade(5, "20", "50", "10"),
		evTrade(6, "60", "50", "10"),
	}
	rep := AccuracyByEV(trades)
	for _, band := range rep.Bands {
		if band.Count != 1 {
			t.Errorf("band %q count = %d, want 1", band.Label, band.Count)
		}
	}
}

func TestAccuracyByEVExcludesIncomplete(t *testing.T) {
	trades := []*domain.Trade{
		evTrade(1, "", "80", "100"),  // no expected value
		evTrade(2, "20", "", "-50"),  // no win probability
		evTrade(3, "20", "80", ""),   // still open
	}
	rep := AccuracyByEV(trades)
	if rep.Analyzed != 0 {
		t.Errorf("Analyzed = %d, want 0", rep.Analyzed)
	}
	if rep.Calibration != "unknown" {
		t.Errorf("Calibration = %q, want unknown", rep.Calibration)
	}
	if !strings.Contains(rep.Description, "Not enough data") {
		t.Errorf("Description = %q, want an insufficient-data message", rep.Description)
	}
}
