// Package drawdown builds the equity curve from closed trades and detects
// drawdown episodes over it.
package drawdown

import (
	"fmt"
	"math"
	"time"

	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/analytics/tradeset"
	"tradejournal/internal/domain"
)

// EquityPoint is one step of the cumulative PnL curve.
type EquityPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	PnL   float64   `json:"pnl"`
}

// Episode is one contiguous interval where cumulative equity sits below
// its prior peak. EndDate is nil while the drawdown has not recovered.
type Episode struct {
	StartDate       time.Time  `json:"startDate"`
	LowestPointDate time.Time  `json:"lowestPointDate"`
	EndDate         *time.Time `json:"endDate"`
	Depth           float64    `json:"depth"`
	DepthPct        float64    `json:"depthPercentage"`
	DurationDays    int        `json:"durationDays"`
	RecoveryDays    int        `json:"recoveryDays"`
}

// Insights summarizes all episodes for display.
type Insights struct {
	MaxDrawdownPct      float64 `json:"maxDrawdownPercentage"`
	MaxDrawdownDuration int     `json:"maxDrawdownDuration"`
	MaxDrawdownRecovery int     `json:"maxDrawdownRecovery"`
	AvgDrawdownPct      float64 `json:"avgDrawdownPercentage"`
	AvgDrawdownDuration float64 `json:"avgDrawdownDuration"`
	AvgRecoveryDays     float64 `json:"avgRecoveryDays"`
	Summary             string  `json:"summary"`
}

// Analysis is the full drawdown engine output.
type Analysis struct {
	EquityCurve []EquityPoint `json:"equityCurve"`
	Drawdowns   []Episode     `json:"drawdowns"`
	Insights    Insights      `json:"insights"`
}

// state of the scan: at the running peak, or inside a drawdown.
type state int

const (
	atPeak state = iota
	inDrawdown
)

// Analyze walks the chronologically sorted closed trades and returns the
// equity curve with every drawdown episode found on it.
func Analyze(trades []*domain.Trade) Analysis {
	closed := tradeset.Chronological(tradeset.Closed(trades))

	curve := make([]EquityPoint, 0, len(closed))
	var cumulative float64
	for _, t := range closed {
		pnl, _ := t.RealizedPnL()
		cumulative += pnl
		date, _ := t.EntryAt()
		curve = append(curve, EquityPoint{
			Date:  date,
			Value: numutil.Round2(cumulative),
			PnL:   numutil.Round2(pnl),
		})
	}

	episodes := detectEpisodes(curve)
	return Analysis{
		EquityCurve: curve,
		Drawdowns:   episodes,
		Insights:    summarize(episodes),
	}
}

// MaxDrawdownPct returns only the maximum episode depth percentage, for
// callers that fold it into an aggregate summary. There is deliberately a
// single episode detector; this reuses it rather than re-scanning.
func MaxDrawdownPct(trades []*domain.Trade) float64 {
	a := Analyze(trades)
	return a.Insights.MaxDrawdownPct
}

func detectEpisodes(curve []EquityPoint) []Episode {
	episodes := make([]Episode, 0)
	if len(curve) == 0 {
		return episodes
	}

	// When the running peak is exactly 0 a relative depth is undefined;
	// fall back to the first nonzero cumulative magnitude on the curve.
	baseline := 0.0
	for _, p := range curve {
		if p.Value != 0 {
			baseline = math.Abs(p.Value)
			break
		}
	}

	// Equity starts at 0 before the first trade, so the initial all-time
	// peak is 0: an opening string of losses is itself a drawdown.
	st := atPeak
	peak := 0.0
	peakDate := curve[0].Date
	var trough float64
	var troughDate time.Time

	closeEpisode := func(end EquityPoint, open bool) Episode {
		ep := Episode{
			StartDate:       peakDate,
			LowestPointDate: troughDate,
			Depth:           numutil.Round2(peak - trough),
			DepthPct:        depthPct(peak, trough, baseline),
			DurationDays:    daysBetween(peakDate, end.Date),
			RecoveryDays:    daysBetween(troughDate, end.Date),
		}
		if !open {
			endDate := end.Date
			ep.EndDate = &endDate
		}
		return ep
	}

	for i, p := range curve {
		switch st {
		case atPeak:
			if p.Value >= peak {
				peak = p.Value
				peakDate = p.Date
				continue
			}
			st = inDrawdown
			trough = p.Value
			troughDate = p.Date
		case inDrawdown:
			if p.Value >= peak {
				episodes = append(episodes, closeEpisode(p, false))
				st = atPeak
				peak = p.Value
				peakDate = p.Date
				continue
			}
			if p.Value < trough {
				trough = p.Value
				troughDate = p.Date
			}
		}
		// Episode still open at the final point reports with a nil end
		// and duration measured to the last trade.
		if i == len(curve)-1 && st == inDrawdown {
			episodes = append(episodes, closeEpisode(p, true))
		}
	}
	return episodes
}

func depthPct(peak, trough, baseline float64) float64 {
	depth := peak - trough
	ref := math.Abs(peak)
	if ref == 0 {
		ref = baseline
	}
	return numutil.Round2(numutil.SafeDiv(depth, ref) * 100)
}

// daysBetween counts whole calendar days from a to b, never negative.
func daysBetween(a, b time.Time) int {
	d := int(b.Sub(a).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func summarize(episodes []Episode) Insights {
	ins := Insights{}
	if len(episodes) == 0 {
		ins.Summary = "No drawdowns detected."
		return ins
	}

	var sumPct, sumDuration, sumRecovery float64
	for _, ep := range episodes {
		sumPct += ep.DepthPct
		sumDuration += float64(ep.DurationDays)
		sumRecovery += float64(ep.RecoveryDays)
		if ep.DepthPct > ins.MaxDrawdownPct {
			ins.MaxDrawdownPct = ep.DepthPct
		}
		if ep.DurationDays > ins.MaxDrawdownDuration {
			ins.MaxDrawdownDuration = ep.DurationDays
		}
		if ep.RecoveryDays > ins.MaxDrawdownRecovery {
			ins.MaxDrawdownRecovery = ep.RecoveryDays
		}
	}
	n := float64(len(episodes))
	ins.AvgDrawdownPct = numutil.Round2(sumPct / n)
	ins.AvgDrawdownDuration = numutil.Round2(sumDuration / n)
	ins.AvgRecoveryDays = numutil.Round2(sumRecovery / n)
	ins.Summary = fmt.Sprintf(
		"%d drawdown(s); worst %s%% over %d day(s), average recovery %s day(s).",
		len(episodes),
		numutil.FormatFixed(ins.MaxDrawdownPct, 2),
		ins.MaxDrawdownDuration,
		numutil.FormatFixed(ins.AvgRecoveryDays, 2),
	)
	return ins
}
