// Package tradeset holds the shared selection helpers the analytics
// packages apply before aggregating. Every function returns a fresh slice
// and leaves its input untouched.
package tradeset

import (
	"sort"

	"tradejournal/internal/domain"
)

// Closed returns the trades with a parseable realized PnL. Open and
// planned trades never participate in result-producing statistics.
func Closed(trades []*domain.Trade) []*domain.Trade {
	out := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			out = append(out, t)
		}
	}
	return out
}

// Chronological returns a copy sorted by entry timestamp, oldest first.
// Trades without a parseable entry date sort to the front, and ties break
// on ID so repeated runs aggregate in the same order.
func Chronological(trades []*domain.Trade) []*domain.Trade {
	out := make([]*domain.Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := out[i].EntryAt()
		tj, okj := out[j].EntryAt()
		if oki != okj {
			return !oki
		}
		if oki && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Losing returns the closed trades with a negative PnL.
func Losing(trades []*domain.Trade) []*domain.Trade {
	out := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if pnl, ok := t.RealizedPnL(); ok && pnl < 0 {
			out = append(out, t)
		}
	}
	return out
}
