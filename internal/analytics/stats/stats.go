// Package stats computes the headline performance aggregates over the
// closed trades of a journal.
package stats

import (
	"math"
	"sort"

	"tradejournal/internal/analytics/drawdown"
	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/analytics/tradeset"
	"tradejournal/internal/domain"
)

// ProfitFactorCap stands in for an infinite profit factor when there are
// profits and no losses.
const ProfitFactorCap = 999.99

// AssetPerformance is the per-asset PnL roll-up.
type AssetPerformance struct {
	Asset      string  `json:"asset"`
	TotalPnL   float64 `json:"totalPnL"`
	WinRate    float64 `json:"winRate"`
	TradeCount int     `json:"tradeCount"`
}

// Streaks reports the longest consecutive runs of wins and losses in
// chronological order.
type Streaks struct {
	MaxWinStreak  int `json:"maxWinStreak"`
	MaxLossStreak int `json:"maxLossStreak"`
}

// Summary holds every headline aggregate. An empty journal produces the
// zero value, not an error.
type Summary struct {
	TradeCount     int                `json:"tradeCount"`
	WinRate        float64            `json:"winRate"`
	AvgPnL         float64            `json:"avgPnL"`
	TotalPnL       float64            `json:"totalPnL"`
	Expectancy     float64            `json:"expectancy"`
	AvgWin         float64            `json:"avgWin"`
	AvgLoss        float64            `json:"avgLoss"`
	MaxWin         float64            `json:"maxWin"`
	MaxLoss        float64            `json:"maxLoss"`
	MedianRR       float64            `json:"medianRR"`
	AvgRiskReward  float64            `json:"avgRiskReward"`
	ProfitFactor   float64            `json:"profitFactor"`
	Sharpe         float64            `json:"sharpe"`
	Sortino        float64            `json:"sortino"`
	MaxDrawdownPct float64            `json:"maxDrawdownPct"`
	Streaks        Streaks            `json:"streaks"`
	AssetPnL       []AssetPerformance `json:"assetPnL"`
}

// Compute derives the summary from the journal. The input is never
// mutated; trades without a parseable PnL are ignored.
func Compute(trades []*domain.Trade) Summary {
	closed := tradeset.Chronological(tradeset.Closed(trades))
	s := Summary{AssetPnL: []AssetPerformance{}}
	if len(closed) == 0 {
		return s
	}

	var (
		pnls      []float64
		negatives []float64
		rrs       []float64
		wins      int
		sumPnL    float64
		grossWin  float64
		grossLoss float64
		sumWin    float64
		sumLoss   float64
		losses    int
	)
	s.MaxWin = math.Inf(-1)
	s.MaxLoss = math.Inf(1)

	for _, t := range closed {
		pnl, _ := t.RealizedPnL()
		pnls = append(pnls, pnl)
		sumPnL += pnl
		if pnl > 0 {
			wins++
			sumWin += pnl
			grossWin += pnl
		} else {
			losses++
			sumLoss += pnl
			if pnl < 0 {
				grossLoss += -pnl
				negatives = append(negatives, pnl)
			}
		}
		if pnl > s.MaxWin {
			s.MaxWin = pnl
		}
		if pnl < s.MaxLoss {
			s.MaxLoss = pnl
		}
		if rr, ok := t.ActualRR(); ok {
			rrs = append(rrs, rr)
		}
	}

	n := float64(len(closed))
	winFrac := float64(wins) / n
	avgWin := numutil.SafeDiv(sumWin, float64(wins))
	avgLoss := numutil.SafeDiv(sumLoss, float64(losses))

	s.TradeCount = len(closed)
	s.WinRate = numutil.Round2(winFrac * 100)
	s.TotalPnL = numutil.Round2(sumPnL)
	s.AvgPnL = numutil.Round2(sumPnL / n)
	s.AvgWin = numutil.Round2(avgWin)
	s.AvgLoss = numutil.Round2(avgLoss)
	s.MaxWin = numutil.Round2(s.MaxWin)
	s.MaxLoss = numutil.Round2(s.MaxLoss)

	// Expectancy uses fractional rates, not percentages.
	s.Expectancy = numutil.Round2(winFrac*avgWin - (1-winFrac)*math.Abs(avgLoss))

	s.ProfitFactor = profitFactor(grossWin, grossLoss)
	s.Sharpe = numutil.Round2(numutil.SafeDiv(numutil.Mean(pnls), numutil.StdDev(pnls)))
	s.Sortino = numutil.Round2(numutil.SafeDiv(numutil.Mean(pnls), numutil.StdDev(negatives)))
	s.MedianRR = numutil.Round2(numutil.Median(rrs))
	s.AvgRiskReward = numutil.Round2(numutil.Mean(rrs))
	s.MaxDrawdownPct = drawdown.MaxDrawdownPct(trades)
	s.Streaks = streaks(closed)
	s.AssetPnL = assetPerformance(closed)
	return s
}

func profitFactor(grossWin, grossLoss float64) float64 {
	switch {
	case grossWin == 0:
		return 0
	case grossLoss == 0:
		return ProfitFactorCap
	default:
		return numutil.Round2(grossWin / grossLoss)
	}
}

// streaks expects trades already in chronological order.
func streaks(closed []*domain.Trade) Streaks {
	var st Streaks
	var winRun, lossRun int
	for _, t := range closed {
		if t.IsWin() {
			winRun++
			lossRun = 0
		} else {
			lossRun++
			winRun = 0
		}
		if winRun > st.MaxWinStreak {
			st.MaxWinStreak = winRun
		}
		if lossRun > st.MaxLossStreak {
			st.MaxLossStreak = lossRun
		}
	}
	return st
}

func assetPerformance(closed []*domain.Trade) []AssetPerformance {
	type acc struct {
		total float64
		wins  int
		count int
	}
	byAsset := make(map[string]*acc)
	for _, t := range closed {
		a := byAsset[t.Asset]
		if a == nil {
			a = &acc{}
			byAsset[t.Asset] = a
		}
		pnl, _ := t.RealizedPnL()
		a.total += pnl
		a.count++
		if pnl > 0 {
			a.wins++
		}
	}

	out := make([]AssetPerformance, 0, len(byAsset))
	for asset, a := range byAsset {
		out = append(out, AssetPerformance{
			Asset:      asset,
			TotalPnL:   numutil.Round2(a.total),
			WinRate:    numutil.Round2(numutil.SafeDiv(float64(a.wins), float64(a.count)) * 100),
			TradeCount: a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPnL != out[j].TotalPnL {
			return out[i].TotalPnL > out[j].TotalPnL
		}
		return out[i].Asset < out[j].Asset
	})
	return out
}
