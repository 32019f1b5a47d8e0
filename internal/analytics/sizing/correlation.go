package sizing

import (
	"fmt"
	"math"
	"sort"

	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/analytics/tradeset"
	"tradejournal/internal/domain"
)

// minCorrelationSample is the fewest emotion-tagged trades required
// before a correlation is reported.
const minCorrelationSample = 5

// EmotionGroup is the average position size taken at one emotion level.
type EmotionGroup struct {
	Level   int     `json:"level"`
	Label   string  `json:"label"`
	AvgSize float64 `json:"avgSize"`
	Count   int     `json:"count"`
}

// Correlation relates pre-trade emotion to position size.
type Correlation struct {
	Coefficient float64        `json:"coefficient"` // Pearson r across emotion groups, 0 when undefined
	Groups      []EmotionGroup `json:"groups"`
	Description string         `json:"description"`
}

// EmotionSizeCorrelation computes the Pearson correlation between the
// 1..5 pre-trade emotion level and the average position size taken at
// that level. An undefined correlation (too few trades, fewer than two
// groups, or zero variance) reports 0.
func EmotionSizeCorrelation(trades []*domain.Trade) Correlation {
	type acc struct {
		sum   float64
		count int
	}
	byLevel := make(map[int]*acc)
	var tagged int
	for _, t := range tradeset.Closed(trades) {
		level, okL := t.PreEmotionLevel()
		size, okS := t.SizeValue()
		if !okL || !okS || size <= 0 {
			continue
		}
		a := byLevel[level]
		if a == nil {
			a = &acc{}
			byLevel[level] = a
		}
		a.sum += size
		a.count++
		tagged++
	}

	c := Correlation{Groups: []EmotionGroup{}}
	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var xs, ys []float64
	for _, level := range levels {
		a := byLevel[level]
		avg := a.sum / float64(a.count)
		c.Groups = append(c.Groups, EmotionGroup{
			Level:   level,
			Label:   domain.EmotionLabel(level),
			AvgSize: numutil.Round2(avg),
			Count:   a.count,
		})
		xs = append(xs, float64(level))
		ys = append(ys, avg)
	}

	if tagged < minCorrelationSample || len(levels) < 2 {
		c.Description = fmt.Sprintf(
			"Not enough data: %d trades carry both an emotion rating and a position size (%d needed).",
			tagged, minCorrelationSample)
		return c
	}

	c.Coefficient = numutil.Round2(pearson(xs, ys))
	switch {
	case c.Coefficient >= 0.5:
		c.Description = "Larger positions strongly coincide with more confident states; watch for overconfidence."
	case c.Coefficient <= -0.5:
		c.Description = "Larger positions coincide with anxious states; sizing may be driven by loss-chasing."
	default:
		c.Description = "No strong relationship between emotional state and position size."
	}
	return c
}

// pearson computes the correlation coefficient, 0 when either series has
// no variance.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	mx := numutil.Mean(xs)
	my := numutil.Mean(ys)
	var cov, vx, vy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 || n == 0 {
		return 0
	}
	r := cov / math.Sqrt(vx*vy)
	if math.IsNaN(r) {
		return 0
	}
	return r
}
