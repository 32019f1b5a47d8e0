// Package predict estimates the win probability of a candidate trade from
// historical feature win rates, scores how well past expected-value
// predictions matched reality, and turns a probability into Kelly sizing
// guidance.
package predict

import (
	"fmt"
	"math"
	"strings"
	"time"

	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/analytics/tradeset"
	"tradejournal/internal/domain"
)

const (
	// MinHistory is the number of closed trades required before the
	// predictor moves off the neutral prior.
	MinHistory = 10
	// NeutralProbability is returned when history is too thin.
	NeutralProbability = 50.0
	// minFeatureMatches gates each individual feature.
	minFeatureMatches = 3

	probabilityFloor = 15.0
	probabilityCeil  = 85.0

	rrSimilarity   = 0.5
	hourSimilarity = 1
)

// Factor reports one feature's contribution to the estimate.
type Factor struct {
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
	Matches int     `json:"matches"`
	WinRate float64 `json:"winRate"`
	Used    bool    `json:"used"`
}

// Prediction is the win-probability estimate for a candidate trade.
type Prediction struct {
	Probability float64  `json:"probability"`
	SampleSize  int      `json:"sampleSize"`
	Factors     []Factor `json:"factors"`
	Description string   `json:"description"`
}

type feature struct {
	name   string
	weight float64
	match  func(hist, cand *domain.Trade) bool
}

var features = []feature{
	{"asset", 0.25, func(h, c *domain.Trade) bool {
		return h.Asset != "" && strings.EqualFold(h.Asset, c.Asset)
	}},
	{"trade type", 0.20, func(h, c *domain.Trade) bool {
		return c.TradeType != "" && h.TradeType == c.TradeType
	}},
	{"market condition", 0.15, func(h, c *domain.Trade) bool {
		return c.MarketCondition != "" && h.MarketCondition == c.MarketCondition
	}},
	{"direction", 0.15, func(h, c *domain.Trade) bool {
		return h.Direction == c.Direction
	}},
	{"risk-reward", 0.15, func(h, c *domain.Trade) bool {
		hr, okH := h.PlannedRR()
		cr, okC := c.PlannedRR()
		return okH && okC && math.Abs(hr-cr) <= rrSimilarity
	}},
	{"entry hour", 0.10, func(h, c *domain.Trade) bool {
		hh, okH := clockHour(h)
		ch, okC := clockHour(c)
		return okH && okC && math.Abs(float64(hh-ch)) <= hourSimilarity
	}},
}

func clockHour(t *domain.Trade) (int, bool) {
	clock := strings.TrimSpace(t.EntryTime)
	if clock == "" {
		return 0, false
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, false
	}
	return c.Hour(), true
}

// WinProbability estimates the candidate's chance of winning, in percent,
// from per-feature conditional win rates over the closed history. With
// fewer than MinHistory closed trades it returns the neutral prior. The
// result is always within [15, 85] otherwise.
func WinProbability(history []*domain.Trade, candidate *domain.Trade) Prediction {
	closed := tradeset.Closed(history)
	if len(closed) < MinHistory {
		return Prediction{
			Probability: NeutralProbability,
			SampleSize:  len(closed),
			Description: fmt.Sprintf(
				"Not enough data: %d closed trades on record, %d needed for an estimate.",
				len(closed), MinHistory),
		}
	}

	overall := winRate(closed)
	var weightedSum, weightTotal float64
	factors := make([]Factor, 0, len(features))

	for _, f := range features {
		var matches, wins int
		for _, h := range closed {
			if !f.match(h, candidate) {
				continue
			}
			matches++
			if h.IsWin() {
				wins++
			}
		}
		fac := Factor{Name: f.name, Weight: f.weight, Matches: matches}
		if matches >= minFeatureMatches {
			fac.WinRate = numutil.Round2(numutil.SafeDiv(float64(wins), float64(matches)) * 100)
			fac.Used = true
			weightedSum += fac.WinRate * f.weight
			weightTotal += f.weight
		} else {
			// Too few matches: substitute the overall win rate at half
			// the feature's weight.
			fac.WinRate = overall
			weightedSum += overall * (f.weight / 2)
			weightTotal += f.weight / 2
		}
		factors = append(factors, fac)
	}

	p := numutil.Clamp(numutil.SafeDiv(weightedSum, weightTotal), probabilityFloor, probabilityCeil)
	return Prediction{
		Probability: numutil.Round2(p),
		SampleSize:  len(closed),
		Factors:     factors,
		Description: fmt.Sprintf(
			"Estimated %s%% win probability from %d historical trades (overall win rate %s%%).",
			numutil.FormatFixed(numutil.Round2(p), 2), len(closed), numutil.FormatFixed(overall, 2)),
	}
}

func winRate(closed []*domain.Trade) float64 {
	var wins int
	for _, t := range closed {
		if t.IsWin() {
			wins++
		}
	}
	return numutil.Round2(numutil.SafeDiv(float64(wins), float64(len(closed))) * 100)
}
