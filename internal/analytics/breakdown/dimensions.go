package breakdown

import (
	"fmt"
	"strings"
	"time"

	"tradejournal/internal/domain"
)

var convictionOrder = []string{"Very Low", "Low", "Medium", "High", "Very High"}

var emotionOrder = []string{"Very Anxious", "Anxious", "Neutral", "Confident", "Very Confident"}

var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var durationOrder = []string{"Intraday", "1-3 days", "3-7 days", "1-2 weeks", "Over 2 weeks"}

// ByConviction buckets performance by the 1..5 conviction rating.
func ByConviction(trades []*domain.Trade) Result {
	return Analyze("conviction", trades, func(t *domain.Trade) (string, bool) {
		level, ok := t.ConvictionLevel()
		if !ok {
			return "", false
		}
		return domain.ConvictionLabel(level), true
	}, convictionOrder)
}

// ByPreEmotion buckets performance by the emotional state going in.
func ByPreEmotion(trades []*domain.Trade) Result {
	return Analyze("pre-trade emotion", trades, func(t *domain.Trade) (string, bool) {
		level, ok := t.PreEmotionLevel()
		if !ok {
			return "", false
		}
		return domain.EmotionLabel(level), true
	}, emotionOrder)
}

// ByPostEmotion buckets performance by the emotional state after exit.
func ByPostEmotion(trades []*domain.Trade) Result {
	return Analyze("post-trade emotion", trades, func(t *domain.Trade) (string, bool) {
		level, ok := t.PostEmotionLevel()
		if !ok {
			return "", false
		}
		return domain.EmotionLabel(level), true
	}, emotionOrder)
}

// ByWeekday buckets performance by the entry weekday.
func ByWeekday(trades []*domain.Trade) Result {
	return Analyze("weekday", trades, func(t *domain.Trade) (string, bool) {
		at, ok := t.EntryAt()
		if !ok {
			return "", false
		}
		return at.Weekday().String(), true
	}, weekdayOrder)
}

// ByDuration buckets performance by how long the trade was held.
func ByDuration(trades []*domain.Trade) Result {
	return Analyze("duration", trades, func(t *domain.Trade) (string, bool) {
		days, ok := t.HoldDays()
		if !ok || days < 0 {
			return "", false
		}
		return durationLabel(days), true
	}, durationOrder)
}

func durationLabel(days float64) string {
	switch {
	case days < 1:
		return "Intraday"
	case days <= 3:
		return "1-3 days"
	case days <= 7:
		return "3-7 days"
	case days <= 14:
		return "1-2 weeks"
	default:
		return "Over 2 weeks"
	}
}

// ByTradeType buckets performance by trade style.
func ByTradeType(trades []*domain.Trade) Result {
	return Analyze("trade type", trades, func(t *domain.Trade) (string, bool) {
		s := strings.TrimSpace(string(t.TradeType))
		return s, s != ""
	}, nil)
}

// ByMarketCondition buckets performance by the tagged market regime.
func ByMarketCondition(trades []*domain.Trade) Result {
	return Analyze("market condition", trades, func(t *domain.Trade) (string, bool) {
		s := strings.TrimSpace(string(t.MarketCondition))
		return s, s != ""
	}, nil)
}

// ByEntryHour buckets performance by the clock hour the trade was opened.
// Trades without an explicit entry time are excluded rather than counted
// as midnight.
func ByEntryHour(trades []*domain.Trade) Result {
	return Analyze("entry hour", trades, func(t *domain.Trade) (string, bool) {
		h, ok := entryHour(t)
		if !ok {
			return "", false
		}
		return hourLabel(h), true
	}, hourOrder())
}

func entryHour(t *domain.Trade) (int, bool) {
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

func hourLabel(h int) string { return fmt.Sprintf("%02d:00", h) }

func hourOrder() []string {
	order := make([]string, 24)
	for h := 0; h < 24; h++ {
		order[h] = hourLabel(h)
	}
	return order
}
