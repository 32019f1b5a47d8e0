package domain

import "time"

// Trade is a single journal entry. Numeric fields are kept as strings
// because upstream producers (forms, CSV imports, exchange exports) hand
// them over untyped; every consumer must go through the accessor methods
// below, which parse defensively and report absence instead of erroring.
type Trade struct {
	ID string `json:"id"` // Unique identifier (UUID for imported trades)

	// Temporal facts. Dates are "2006-01-02", clock times "15:04" (local,
	// no timezone). Clock times are optional.
	EntryDate string `json:"entryDate"`
	EntryTime string `json:"entryTime"`
	ExitDate  string `json:"exitDate"`
	ExitTime  string `json:"exitTime"`

	// Position facts.
	Asset        string    `json:"asset"`
	AssetClass   string    `json:"assetClass"`
	Direction    Direction `json:"position"` // Long or Short
	Leverage     string    `json:"leverage"`
	PositionSize string    `json:"positionSize"`
	Currency     string    `json:"currency"`

	// Price facts. Optional except EntryPrice.
	EntryPrice string `json:"entryPrice"`
	ExitPrice  string `json:"exitPrice"`
	StopLoss   string `json:"stopLoss"`
	TakeProfit string `json:"takeProfit"`
	Fees       string `json:"fees"`

	// Planned / derived metrics, possibly precomputed upstream, possibly absent.
	EntryRiskReward  string `json:"entryRiskReward"`
	ExpectedPnL      string `json:"expectedPnL"`
	PnL              string `json:"pnl"` // A trade is closed iff this parses
	ActualRiskReward string `json:"actualRiskReward"`
	DurationDays     string `json:"duration"`
	WinProbability   string `json:"winProbability"` // 0..100
	ExpectedValue    string `json:"expectedValue"`
	RMultiple        string `json:"rMultiple"`

	// Behavioral tags.
	Conviction       string          `json:"conviction"`      // 1..5
	PreTradeEmotion  string          `json:"preTradeEmotion"` // 1..5
	PostTradeEmotion string          `json:"postTradeEmotion"`
	TradeType        TradeType       `json:"tradeType"`
	MarketCondition  MarketCondition `json:"marketCondition"`
	FollowedPlan     string          `json:"followedPlan"`   // "true"/"false", may be empty
	WouldTakeAgain   string          `json:"wouldTakeAgain"` // "true"/"false", may be empty
	Notes            string          `json:"notes"`
	LessonsLearned   string          `json:"lessonsLearned"`
}

// RealizedPnL returns the realized profit or loss, reporting false when
// the trade is still open or the field is unparseable.
func (t *Trade) RealizedPnL() (float64, bool) {
	return ParseNumber(t.PnL)
}

// IsClosed reports whether the trade has a parseable realized PnL. Only
// closed trades participate in win-rate, equity and risk statistics.
func (t *Trade) IsClosed() bool {
	_, ok := t.RealizedPnL()
	return ok
}

// IsWin reports whether the trade closed with a positive PnL.
func (t *Trade) IsWin() bool {
	pnl, ok := t.RealizedPnL()
	return ok && pnl > 0
}

func (t *Trade) EntryPriceValue() (float64, bool)  { return ParseNumber(t.EntryPrice) }
func (t *Trade) ExitPriceValue() (float64, bool)   { return ParseNumber(t.ExitPrice) }
func (t *Trade) StopLossValue() (float64, bool)    { return ParseNumber(t.StopLoss) }
func (t *Trade) TakeProfitValue() (float64, bool)  { return ParseNumber(t.TakeProfit) }
func (t *Trade) FeesValue() (float64, bool)        { return ParseNumber(t.Fees) }
func (t *Trade) SizeValue() (float64, bool)        { return ParseNumber(t.PositionSize) }
func (t *Trade) LeverageValue() (float64, bool)    { return ParseNumber(t.Leverage) }
func (t *Trade) PlannedRR() (float64, bool)        { return ParseNumber(t.EntryRiskReward) }
func (t *Trade) ActualRR() (float64, bool)         { return ParseNumber(t.ActualRiskReward) }
func (t *Trade) ExpectedPnLValue() (float64, bool) { return ParseNumber(t.ExpectedPnL) }
func (t *Trade) ExpectedValueNum() (float64, bool) { return ParseNumber(t.ExpectedValue) }
func (t *Trade) WinProbabilityNum() (float64, bool) {
	return ParseNumber(t.WinProbability)
}

// ConvictionLevel returns the 1..5 conviction scale value, false when absent
// or out of range.
func (t *Trade) ConvictionLevel() (int, bool) { return ParseScale(t.Conviction) }

// PreEmotionLevel returns the 1..5 pre-trade emotion, false when absent.
func (t *Trade) PreEmotionLevel() (int, bool) { return ParseScale(t.PreTradeEmotion) }

// PostEmotionLevel returns the 1..5 post-trade emotion, false when absent.
func (t *Trade) PostEmotionLevel() (int, bool) { return ParseScale(t.PostTradeEmotion) }

// EntryAt combines EntryDate and the optional EntryTime into a timestamp.
func (t *Trade) EntryAt() (time.Time, bool) {
	return ParseDateTime(t.EntryDate, t.EntryTime)
}

// ExitAt combines ExitDate and the optional ExitTime into a timestamp.
func (t *Trade) ExitAt() (time.Time, bool) {
	return ParseDateTime(t.ExitDate, t.ExitTime)
}

// HoldDays returns the trade's duration in days: the explicit duration
// field when present, otherwise the entry→exit calendar distance.
func (t *Trade) HoldDays() (float64, bool) {
	if d, ok := ParseNumber(t.DurationDays); ok {
		return d, true
	}
	entry, ok := t.EntryAt()
	if !ok {
		return 0, false
	}
	exit, ok := t.ExitAt()
	if !ok {
		return 0, false
	}
	return exit.Sub(entry).Hours() / 24, true
}
