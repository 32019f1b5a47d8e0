// Package sizing buckets closed trades by position size and relates
// emotional state to the sizes actually taken.
package sizing

import (
	"fmt"
	"math"

	"tradejournal/internal/analytics/numutil"
	"tradejournal/internal/analytics/tradeset"
	"tradejournal/internal/domain"
)

const (
	minBuckets = 4
	maxBuckets = 7
)

// SizeBucket is one equal-width position-size range.
type SizeBucket struct {
	Label        string  `json:"label"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Count        int     `json:"count"`
	WinRate      float64 `json:"winRate"`
	AvgPnL       float64 `json:"averagePnL"`
	StdDevPnL    float64 `json:"stdDevPnL"`
	RiskAdjusted float64 `json:"riskAdjusted"` // AvgPnL / StdDevPnL, 0 when flat
}

// SizeReport is the full position-size breakdown.
type SizeReport struct {
	Buckets     []SizeBucket `json:"buckets"`
	Optimal     string       `json:"optimal"` // label of the best risk-adjusted bucket
	Description string       `json:"description"`
}

// BySize splits the observed position sizes into 4-7 equal-width ranges
// and scores each by risk-adjusted return. The bucket count scales with
// how many sized trades exist.
func BySize(trades []*domain.Trade) SizeReport {
	type sized struct {
		size float64
		pnl  float64
	}
	var obs []sized
	minSize, maxSize := math.Inf(1), math.Inf(-1)
	for _, t := range tradeset.Closed(trades) {
		size, ok := t.SizeValue()
		if !ok || size <= 0 {
			continue
		}
		pnl, _ := t.RealizedPnL()
		obs = append(obs, sized{size, pnl})
		minSize = math.Min(minSize, size)
		maxSize = math.Max(maxSize, size)
	}

	rep := SizeReport{Buckets: []SizeBucket{}}
	if len(obs) == 0 {
		rep.Description = "Not enough data: no closed trades carry a position size."
		return rep
	}

	bucketCount := len(obs) / 5
	if bucketCount < minBuckets {
		bucketCount = minBuckets
	}
	if bucketCount > maxBuckets {
		bucketCount = maxBuckets
	}
	if maxSize == minSize {
		bucketCount = 1 // all trades share one size
	}
	width := (maxSize - minSize) / float64(bucketCount)

	pnlsPerBucket := make([][]float64, bucketCount)
	for _, o := range obs {
		idx := 0
		if width > 0 {
			idx = int((o.size - minSize) / width)
			if idx >= bucketCount {
				idx = bucketCount - 1 // the max size lands in the top bucket
			}
		}
		pnlsPerBucket[idx] = append(pnlsPerBucket[idx], o.pnl)
	}

	var optimal *SizeBucket
	for i := 0; i < bucketCount; i++ {
		lo := minSize + float64(i)*width
		hi := lo + width
		if bucketCount == 1 {
			hi = maxSize
		}
		pnls := pnlsPerBucket[i]
		if len(pnls) == 0 {
			continue
		}
		var wins int
		for _, p := range pnls {
			if p > 0 {
				wins++
			}
		}
		avg := numutil.Mean(pnls)
		sd := numutil.StdDev(pnls)
		b := SizeBucket{
			Label:        fmt.Sprintf("%s - %s", numutil.FormatFixed(lo, 2), numutil.FormatFixed(hi, 2)),
			Min:          numutil.Round2(lo),
			Max:          numutil.Round2(hi),
			Count:        len(pnls),
			WinRate:      numutil.Round2(float64(wins) / float64(len(pnls)) * 100),
			AvgPnL:       numutil.Round2(avg),
			StdDevPnL:    numutil.Round2(sd),
			RiskAdjusted: numutil.Round2(numutil.SafeDiv(avg, sd)),
		}
		rep.Buckets = append(rep.Buckets, b)
		if optimal == nil || b.RiskAdjusted > optimal.RiskAdjusted {
			last := &rep.Buckets[len(rep.Buckets)-1]
			optimal = last
		}
	}

	if optimal != nil {
		rep.Optimal = optimal.Label
		rep.Description = fmt.Sprintf(
			"Best risk-adjusted results in the %s size range (%s avg PnL over %d trades).",
			optimal.Label, numutil.FormatFixed(optimal.AvgPnL, 2), optimal.Count)
	}
	return rep
}
