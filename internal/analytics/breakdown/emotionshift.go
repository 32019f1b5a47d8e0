package breakdown

import (
	"fmt"

	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/domain"
)

// Shift directions for a (pre, post) emotion transition.
const (
	ShiftImproved  = "Improved"
	ShiftWorsened  = "Worsened"
	ShiftUnchanged = "Unchanged"
)

// ShiftReport covers emotion transitions: performance per (pre, post)
// pair plus the coarser improved/worsened/unchanged split.
type ShiftReport struct {
	Pairs      Result `json:"pairs"`
	Directions Result `json:"directions"`
	BestPair   string `json:"bestPair"`
	WorstPair  string `json:"worstPair"`
	Insight    string `json:"insight"`
}

// EmotionShift analyzes how emotional state changed across each trade and
// what that change cost or earned.
func EmotionShift(trades []*domain.Trade) ShiftReport {
	pairKey := func(t *domain.Trade) (string, bool) {
		pre, okPre := t.PreEmotionLevel()
		post, okPost := t.PostEmotionLevel()
		if !okPre || !okPost {
			return "", false
		}
		return fmt.Sprintf("%s -> %s", domain.EmotionLabel(pre), domain.EmotionLabel(post)), true
	}
	directionKey := func(t *domain.Trade) (string, bool) {
		pre, okPre := t.PreEmotionLevel()
		post, okPost := t.PostEmotionLevel()
		if !okPre || !okPost {
			return "", false
		}
		switch {
		case post > pre:
			return ShiftImproved, true
		case post < pre:
			return ShiftWorsened, true
		default:
			return ShiftUnchanged, true
		}
	}

	rep := ShiftReport{
		Pairs:      Analyze("emotion transition", trades, pairKey, nil),
		Directions: Analyze("emotion shift", trades, directionKey, []string{ShiftImproved, ShiftUnchanged, ShiftWorsened}),
	}

	var best, worst *Bucket
	for i := range rep.Pairs.Buckets {
		b := &rep.Pairs.Buckets[i]
		if b.Count < MinSampleSize {
			continue
		}
		if best == nil || b.AvgPnL > best.AvgPnL {
			best = b
		}
		if worst == nil || b.AvgPnL < worst.AvgPnL {
			worst = b
		}
	}
	if best == nil {
		rep.Insight = fmt.Sprintf(
			"Not enough data: no emotion transition has %d or more closed trades yet.", MinSampleSize)
		return rep
	}
	rep.BestPair = best.Key
	rep.WorstPair = worst.Key
	rep.Insight = fmt.Sprintf(
		"Best transition %q averages %s per trade; worst %q averages %s.",
		best.Key, numutil.FormatFixed(best.AvgPnL, 2),
		worst.Key, numutil.FormatFixed(worst.AvgPnL, 2))
	return rep
}
