package predict

import (
	"fmt"
	"math"

	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/analytics/tradeset"
	"tradejournal/internal/domain"
)

// biasThreshold is the calibration gap, in percentage points, beyond
// which the journal is flagged optimistic or pessimistic.
const biasThreshold = 5.0

// EVBand is one fixed expected-value range with its predicted-versus-
// realized comparison.
type EVBand struct {
	Label        string  `json:"label"`
	Count        int     `json:"count"`
	AvgPredicted float64 `json:"avgPredicted"`
	RealizedRate float64 `json:"realizedRate"`
	Bias         float64 `json:"bias"` // realized - predicted, percentage points
}

// EVAccuracy is the calibration report comparing predicted win
// probabilities against realized win rates.
type EVAccuracy struct {
	Bands       []EVBand `json:"bands"`
	Analyzed    int      `json:"analyzed"`
	OverallBias float64  `json:"overallBias"`
	Calibration string   `json:"calibration"` // optimistic, pessimistic, or well calibrated
	Description string   `json:"description"`
}

type evBandDef struct {
	label string
	min   float64 // inclusive lower bound
	max   float64 // exclusive upper bound
}

var evBands = []evBandDef{
	{"Strongly negative", math.Inf(-1), -50},
	{"Negative", -50, -10},
	{"Slightly negative", -10, 0},
	{"Slightly positive", 0, 10},
	{"Positive", 10, 50},
	{"Strongly positive", 50, math.Inf(1)},
}

// AccuracyByEV buckets closed trades by their predicted expected value and
// compares the average predicted win probability against the realized win
// rate in each band. Trades lacking either prediction are excluded.
func AccuracyByEV(trades []*domain.Trade) EVAccuracy {
	type acc struct {
		count        int
		wins         int
		predictedSum float64
	}
	accs := make([]acc, len(evBands))
	var totalPredicted, totalRealized float64
	var analyzed int

	for _, t := range tradeset.Closed(trades) {
		ev, okEV := t.ExpectedValueNum()
		prob, okP := t.WinProbabilityNum()
		if !okEV || !okP {
			continue
		}
		idx := bandIndex(ev)
		accs[idx].count++
		accs[idx].predictedSum += prob
		win := t.IsWin()
		if win {
			accs[idx].wins++
			totalRealized++
		}
		totalPredicted += prob
		analyzed++
	}

	rep := EVAccuracy{Analyzed: analyzed}
	for i, def := range evBands {
		a := accs[i]
		band := EVBand{Label: def.label, Count: a.count}
		if a.count > 0 {
			band.AvgPredicted = numutil.Round2(a.predictedSum / float64(a.count))
			band.RealizedRate = numutil.Round2(float64(a.wins) / float64(a.count) * 100)
			band.Bias = numutil.Round2(band.RealizedRate - band.AvgPredicted)
		}
		rep.Bands = append(rep.Bands, band)
	}

	if analyzed == 0 {
		rep.Calibration = "unknown"
		rep.Description = "Not enough data: no closed trades carry both an expected value and a win probability."
		return rep
	}

	avgPredicted := totalPredicted / float64(analyzed)
	realizedRate := totalRealized / float64(analyzed) * 100
	rep.OverallBias = numutil.Round2(realizedRate - avgPredicted)
	switch {
	case rep.OverallBias < -biasThreshold:
		rep.Calibration = "optimistic"
	case rep.OverallBias > biasThreshold:
		rep.Calibration = "pessimistic"
	default:
		rep.Calibration = "well calibrated"
	}
	rep.Description = fmt.Sprintf(
		"Predicted %s%% on average versus %s%% realized over %d trades: %s.",
		numutil.FormatFixed(numutil.Round2(avgPredicted), 2),
		numutil.FormatFixed(numutil.Round2(realizedRate), 2),
		analyzed, rep.Calibration)
	return rep
}

func bandIndex(ev float64) int {
	for i, def := range evBands {
		if ev >= def.min && ev < def.max {
			return i
		}
	}
	return len(evBands) - 1
}
