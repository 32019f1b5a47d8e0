// Package riskreward compares planned risk-reward ratios against realized
// ones and measures how well stop losses were respected.
package riskreward

import (
	"fmt"
	"math"

	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/analytics/tradeset"
	"tradejournal/internal/domain"
)

// Outcome buckets for the plan-versus-realized comparison.
const (
	StoppedOut         = "Stopped out"
	BetterThanExpected = "Better than expected"
	AsExpected         = "As expected"
	WorseThanExpected  = "Worse than expected"
)

const (
	// A loss realizing at least 80% of the planned risk counts as stopped out.
	stoppedOutRR = -0.8
	// Realized within ±0.2 of plan counts as on-plan.
	rrTolerance = 0.2
)

// OutcomeCount is one comparison bucket with its share of analyzed trades.
type OutcomeCount struct {
	Outcome string  `json:"outcome"`
	Count   int     `json:"count"`
	Pct     float64 `json:"percentage"`
}

// Comparison is the plan-versus-realized report.
type Comparison struct {
	Analyzed    int            `json:"analyzed"`
	Outcomes    []OutcomeCount `json:"outcomes"`
	AvgPlanned  float64        `json:"avgPlanned"`
	AvgActual   float64        `json:"avgActual"`
	AvgDiff     float64        `json:"avgDifference"`
	Description string         `json:"description"`
}

// Compare classifies every closed trade carrying both a planned and a
// realized risk-reward ratio. Trades missing either ratio are excluded.
func Compare(trades []*domain.Trade) Comparison {
	counts := map[string]int{}
	var planned, actual, diffs []float64

	for _, t := range tradeset.Closed(trades) {
		plan, okP := t.PlannedRR()
		act, okA := t.ActualRR()
		if !okP || !okA {
			continue
		}
		pnl, _ := t.RealizedPnL()
		counts[classify(pnl, plan, act)]++
		planned = append(planned, plan)
		actual = append(actual, act)
		diffs = append(diffs, act-plan)
	}

	total := len(planned)
	c := Comparison{
		Analyzed:   total,
		AvgPlanned: numutil.Round2(numutil.Mean(planned)),
		AvgActual:  numutil.Round2(numutil.Mean(actual)),
		AvgDiff:    numutil.Round2(numutil.Mean(diffs)),
	}
	for _, outcome := range []string{StoppedOut, BetterThanExpected, AsExpected, WorseThanExpected} {
		n := counts[outcome]
		c.Outcomes = append(c.Outcomes, OutcomeCount{
			Outcome: outcome,
			Count:   n,
			Pct:     numutil.Round2(numutil.SafeDiv(float64(n), float64(total)) * 100),
		})
	}
	if total == 0 {
		c.Description = "Not enough data: no closed trades carry both a planned and a realized risk-reward ratio."
	} else {
		c.Description = fmt.Sprintf(
			"%d trade(s) analyzed; average realized R:R %s versus %s planned.",
			total, numutil.FormatFixed(c.AvgActual, 2), numutil.FormatFixed(c.AvgPlanned, 2))
	}
	return c
}

func classify(pnl, plan, actual float64) string {
	switch {
	case pnl < 0 && actual <= stoppedOutRR:
		return StoppedOut
	case math.Abs(actual-plan) <= rrTolerance:
		return AsExpected
	case actual > plan:
		return BetterThanExpected
	default:
		return WorseThanExpected
	}
}

// Stop-loss adherence levels for losing trades.
const (
	Respected          = "Respected"
	PartiallyRespected = "Partially respected"
	Ignored            = "Ignored"
)

const (
	respectedRatio = 1.1
	partialRatio   = 1.5
)

// AdherenceCount is one adherence bucket.
type AdherenceCount struct {
	Level string  `json:"level"`
	Count int     `json:"count"`
	Pct   float64 `json:"percentage"`
}

// Adherence is the stop-loss discipline report over losing trades.
type Adherence struct {
	Analyzed    int              `json:"analyzed"`
	Levels      []AdherenceCount `json:"levels"`
	AvgRatio    float64          `json:"avgRatio"`
	Description string           `json:"description"`
}

// StopLossAdherence measures, for each losing trade with a usable stop and
// exit, how far past the planned stop the exit landed. Distances are
// direction-adjusted through domain.Direction so Long and Short share one
// sign convention.
func StopLossAdherence(trades []*domain.Trade) Adherence {
	counts := map[string]int{}
	var ratios []float64

	for _, t := range tradeset.Losing(trades) {
		entry, okE := t.EntryPriceValue()
		stop, okS := t.StopLossValue()
		exit, okX := t.ExitPriceValue()
		if !okE || !okS || !okX {
			continue
		}
		// Adverse distance budgeted by the stop, and the adverse distance
		// actually realized at exit.
		stopDistance := t.Direction.Move(stop, entry)
		exitDistance := t.Direction.Move(exit, entry)
		if stopDistance <= 0 {
			continue // stop on the wrong side of entry, not usable
		}
		ratio := exitDistance / stopDistance
		ratios = append(ratios, ratio)
		counts[adherenceLevel(ratio)]++
	}

	total := len(ratios)
	a := Adherence{
		Analyzed: total,
		AvgRatio: numutil.Round2(numutil.Mean(ratios)),
	}
	for _, level := range []string{Respected, PartiallyRespected, Ignored} {
		n := counts[level]
		a.Levels = append(a.Levels, AdherenceCount{
			Level: level,
			Count: n,
			Pct:   numutil.Round2(numutil.SafeDiv(float64(n), float64(total)) * 100),
		})
	}
	if total == 0 {
		a.Description = "Not enough data: no losing trades carry a usable stop and exit price."
	} else {
		a.Description = fmt.Sprintf(
			"%d losing trade(s) analyzed; exits ran %sx the planned stop distance on average.",
			total, numutil.FormatFixed(a.AvgRatio, 2))
	}
	return a
}

func adherenceLevel(ratio float64) string {
	switch {
	case ratio <= respectedRatio:
		return Respected
	case ratio <= partialRatio:
		return PartiallyRespected
	default:
		return Ignored
	}
}
