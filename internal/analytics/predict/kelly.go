package predict

import (
	"fmt"
	"math"

	"tradejournal/internal/analytics/numutil"
)

const (
	// DefaultPayoffRatio is the assumed win/loss size ratio when the
	// journal has no better estimate.
	DefaultPayoffRatio = 1.5
	// kellyCap bounds the recommended fraction at 25% of capital.
	kellyCap = 0.25
)

// Sizing is the Kelly-criterion position sizing guidance.
type Sizing struct {
	Fraction    float64 `json:"fraction"`    // capped Kelly fraction, 0..0.25
	PercentLow  int     `json:"percentLow"`  // conservative half-Kelly, whole percent
	PercentHigh int     `json:"percentHigh"` // full Kelly, whole percent
	Description string  `json:"description"`
}

// Kelly computes f* = (p*b - q) / b for a win probability given in
// percent and a win/loss payoff ratio b. A non-positive edge yields zero;
// the fraction is capped at 25%. The recommended range runs from
// half-Kelly to full Kelly, as whole percentages.
func Kelly(winProbabilityPct, payoffRatio float64) Sizing {
	if payoffRatio <= 0 {
		payoffRatio = DefaultPayoffRatio
	}
	p := numutil.Clamp(winProbabilityPct, 0, 100) / 100
	q := 1 - p
	f := numutil.SafeDiv(p*payoffRatio-q, payoffRatio)
	f = math.Min(math.Max(f, 0), kellyCap)

	s := Sizing{
		Fraction:    numutil.Round(f, 4),
		PercentLow:  int(math.Round(f * 100 / 2)),
		PercentHigh: int(math.Round(f * 100)),
	}
	if s.PercentHigh == 0 {
		s.Description = "No positive edge at this win probability; Kelly sizing suggests staying out."
		return s
	}
	s.Description = fmt.Sprintf(
		"Kelly suggests risking %d-%d%% of capital per trade at a %s win/loss ratio.",
		s.PercentLow, s.PercentHigh, numutil.FormatFixed(payoffRatio, 2))
	return s
}
