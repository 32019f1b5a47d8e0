// Package breakdown groups closed trades along a discrete dimension and
// reports per-bucket performance with a short natural-language insight.
// One generic engine serves every dimension; the dimension wrappers in
// dimensions.go only supply a key extractor and a display order.
package breakdown

import (
	"fmt"
	"sort"

	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/analytics/tradeset"
	"tradejournal/internal/domain"
)

// MinSampleSize is the smallest bucket considered statistically
// significant for insight text. Smaller buckets still report raw numbers.
const MinSampleSize = 3

// KeyFunc extracts a bucket key from a trade, reporting false when the
// trade lacks the dimension (it is then excluded, not zero-filled).
type KeyFunc func(*domain.Trade) (string, bool)

// Bucket is one group's aggregate.
type Bucket struct {
	Key      string  `json:"key"`
	Count    int     `json:"count"`
	WinRate  float64 `json:"winRate"`
	AvgPnL   float64 `json:"averagePnL"`
	TotalPnL float64 `json:"totalPnL"`
}

// Result is a full dimension breakdown.
type Result struct {
	Dimension     string   `json:"dimension"`
	Buckets       []Bucket `json:"buckets"`
	BestByWinRate string   `json:"bestByWinRate"`
	BestByAvgPnL  string   `json:"bestByAvgPnL"`
	Insight       string   `json:"insight"`
}

// Analyze groups the closed trades by key and aggregates each non-empty
// bucket. order fixes the bucket sequence for display; keys not listed in
// order (or all keys, when order is nil) follow sorted alphabetically.
func Analyze(dimension string, trades []*domain.Trade, key KeyFunc, order []string) Result {
	type acc struct {
		count int
		wins  int
		total float64
	}
	groups := make(map[string]*acc)
	for _, t := range tradeset.Closed(trades) {
		k, ok := key(t)
		if !ok {
			continue
		}
		g := groups[k]
		if g == nil {
			g = &acc{}
			groups[k] = g
		}
		pnl, _ := t.RealizedPnL()
		g.count++
		g.total += pnl
		if pnl > 0 {
			g.wins++
		}
	}

	res := Result{Dimension: dimension, Buckets: []Bucket{}}
	for _, k := range orderedKeys(groups, order) {
		g := groups[k]
		res.Buckets = append(res.Buckets, Bucket{
			Key:      k,
			Count:    g.count,
			WinRate:  numutil.Round2(numutil.SafeDiv(float64(g.wins), float64(g.count)) * 100),
			AvgPnL:   numutil.Round2(g.total / float64(g.count)),
			TotalPnL: numutil.Round2(g.total),
		})
	}
	rank(&res)
	return res
}

func orderedKeys[T any](groups map[string]*T, order []string) []string {
	seen := make(map[string]bool, len(order))
	keys := make([]string, 0, len(groups))
	for _, k := range order {
		if groups[k] != nil {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range groups {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// rank picks the best bucket by win rate and by average PnL among the
// statistically significant ones. The two may disagree; the insight text
// calls that out when they do.
func rank(res *Result) {
	var byRate, byAvg *Bucket
	for i := range res.Buckets {
		b := &res.Buckets[i]
		if b.Count < MinSampleSize {
			continue
		}
		if byRate == nil || b.WinRate > byRate.WinRate {
			byRate = b
		}
		if byAvg == nil || b.AvgPnL > byAvg.AvgPnL {
			byAvg = b
		}
	}
	if byRate == nil {
		res.Insight = fmt.Sprintf(
			"Not enough data: no %s group has %d or more closed trades yet.",
			res.Dimension, MinSampleSize)
		return
	}
	res.BestByWinRate = byRate.Key
	res.BestByAvgPnL = byAvg.Key
	if byRate.Key == byAvg.Key {
		res.Insight = fmt.Sprintf(
			"%q leads the %s breakdown with a %s%% win rate and %s average PnL over %d trades.",
			byRate.Key, res.Dimension,
			numutil.FormatFixed(byRate.WinRate, 2),
			numutil.FormatFixed(byRate.AvgPnL, 2),
			byRate.Count)
		return
	}
	res.Insight = fmt.Sprintf(
		"%q has the best %s win rate (%s%%), while %q earns the best average PnL (%s).",
		byRate.Key, res.Dimension,
		numutil.FormatFixed(byRate.WinRate, 2),
		byAvg.Key,
		numutil.FormatFixed(byAvg.AvgPnL, 2))
}
