package domain

// Direction represents the side of a position (long or short).
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// Move returns the price distance travelled from one price to another,
// positive when the move favors the direction. All price-difference
// formulas (risk, reward, stop distance) must go through this method so
// the Long/Short sign convention lives in exactly one place.
func (d Direction) Move(from, to float64) float64 {
	if d == Short {
		return from - to
	}
	return to - from
}

// TradeType classifies the style of a trade.
type TradeType string

const (
	TypeScalp    TradeType = "Scalp"
	TypeDayTrade TradeType = "Day Trade"
	TypeSwing    TradeType = "Swing"
	TypePosition TradeType = "Position"
	TypeOther    TradeType = "Other"
)

// MarketCondition describes the market regime tagged on a trade.
type MarketCondition string

const (
	MarketTrendingUp   MarketCondition = "Trending Up"
	MarketTrendingDown MarketCondition = "Trending Down"
	MarketRanging      MarketCondition = "Ranging"
	MarketVolatile     MarketCondition = "Volatile"
	MarketQuiet        MarketCondition = "Quiet"
)

// Emotion and conviction scales run 1..5. Labels are looked up here rather
// than scattered through formulas.
var emotionLabels = map[int]string{
	1: "Very Anxious",
	2: "Anxious",
	3: "Neutral",
	4: "Confident",
	5: "Very Confident",
}

var convictionLabels = map[int]string{
	1: "Very Low",
	2: "Low",
	3: "Medium",
	4: "High",
	5: "Very High",
}

// EmotionLabel returns the display label for an emotion level 1..5.
func EmotionLabel(level int) string {
	if s, ok := emotionLabels[level]; ok {
		return s
	}
	return "Unknown"
}

// ConvictionLabel returns the display label for a conviction level 1..5.
func ConvictionLabel(level int) string {
	if s, ok := convictionLabels[level]; ok {
		return s
	}
	return "Unknown"
}
