package app

import (
	"context"
	"fmt"
	"time"

	"tradejournal/internal/analytics/breakdown"
	"tradejournal/internal/analytics/drawdown"
	"tradejournal/internal/analytics/predict"
	"tradejournal/internal/analytics/riskreward"
	"tradejournal/internal/analytics/sizing"
	"tradejournal/internal/analytics/stats"
	"tradejournal/internal/domain"
	"tradejournal/internal/ports"
)

// AnalyticsService loads the journal and runs every engine over it. The
// engines themselves are pure; this service is the only place that does
// I/O around them.
type AnalyticsService struct {
	logger      ports.Logger
	repo        ports.TradeRepository
	payoffRatio float64
}

// NewAnalyticsService creates a new application service instance.
func NewAnalyticsService(logger ports.Logger, repo ports.TradeRepository, payoffRatio float64) (*AnalyticsService, error) {
	if logger == nil || repo == nil {
		return nil, fmt.Errorf("missing required dependencies for AnalyticsService")
	}
	if payoffRatio <= 0 {
		payoffRatio = predict.DefaultPayoffRatio
	}
	return &AnalyticsService{logger: logger, repo: repo, payoffRatio: payoffRatio}, nil
}

// Breakdowns collects every categorical dimension side by side.
type Breakdowns struct {
	Conviction      breakdown.Result      `json:"conviction"`
	PreEmotion      breakdown.Result      `json:"preEmotion"`
	PostEmotion     breakdown.Result      `json:"postEmotion"`
	EmotionShift    breakdown.ShiftReport `json:"emotionShift"`
	Weekday         breakdown.Result      `json:"weekday"`
	Duration        breakdown.Result      `json:"duration"`
	TradeType       breakdown.Result      `json:"tradeType"`
	MarketCondition breakdown.Result      `json:"marketCondition"`
	EntryHour       breakdown.Result      `json:"entryHour"`
}

// Report is the full analytics output, plain data safe to serialize.
type Report struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Summary     stats.Summary        `json:"summary"`
	Drawdowns   drawdown.Analysis    `json:"drawdowns"`
	RiskReward  riskreward.Comparison `json:"riskReward"`
	StopLoss    riskreward.Adherence `json:"stopLoss"`
	Breakdowns  Breakdowns           `json:"breakdowns"`
	EVAccuracy  predict.EVAccuracy   `json:"evAccuracy"`
	SizeReport  sizing.SizeReport    `json:"positionSizing"`
	Correlation sizing.Correlation   `json:"emotionSizeCorrelation"`
}

// BuildReport loads every trade and computes all analytics sections. The
// reference time is injected so callers (and tests) control "now".
func (s *AnalyticsService) BuildReport(ctx context.Context, now time.Time) (*Report, error) {
	trades, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	s.logger.Debug(ctx, "Journal loaded", map[string]interface{}{"trades": len(trades)})

	rep := &Report{
		GeneratedAt: now,
		Summary:     stats.Compute(trades),
		Drawdowns:   drawdown.Analyze(trades),
		RiskReward:  riskreward.Compare(trades),
		StopLoss:    riskreward.StopLossAdherence(trades),
		Breakdowns: Breakdowns{
			Conviction:      breakdown.ByConviction(trades),
			PreEmotion:      breakdown.ByPreEmotion(trades),
			PostEmotion:     breakdown.ByPostEmotion(trades),
			EmotionShift:    breakdown.EmotionShift(trades),
			Weekday:         breakdown.ByWeekday(trades),
			Duration:        breakdown.ByDuration(trades),
			TradeType:       breakdown.ByTradeType(trades),
			MarketCondition: breakdown.ByMarketCondition(trades),
			EntryHour:       breakdown.ByEntryHour(trades),
		},
		EVAccuracy:  predict.AccuracyByEV(trades),
		SizeReport:  sizing.BySize(trades),
		Correlation: sizing.EmotionSizeCorrelation(trades),
	}
	s.logger.Info(ctx, "Analytics report built", map[string]interface{}{
		"trades":    rep.Summary.TradeCount,
		"winRate":   rep.Summary.WinRate,
		"totalPnL":  rep.Summary.TotalPnL,
		"drawdowns": len(rep.Drawdowns.Drawdowns),
	})
	return rep, nil
}

// Estimate is the prediction bundle for a candidate trade.
type Estimate struct {
	Prediction predict.Prediction `json:"prediction"`
	Kelly      predict.Sizing     `json:"kelly"`
}

// EstimateTrade predicts the candidate's win probability from the stored
// history and derives Kelly sizing guidance from it.
func (s *AnalyticsService) EstimateTrade(ctx context.Context, candidate *domain.Trade) (*Estimate, error) {
	if candidate == nil {
		return nil, fmt.Errorf("candidate trade is required: %w", ports.ErrInvalidRequest)
	}
	history, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	pred := predict.WinProbability(history, candidate)
	return &Estimate{
		Prediction: pred,
		Kelly:      predict.Kelly(pred.Probability, s.payoffRatio),
	}, nil
}

// ImportFrom pulls trade records from a source and stores the ones not
// already in the journal, returning how many were new.
func (s *AnalyticsService) ImportFrom(ctx context.Context, source ports.TradeSource, symbol string) (int, error) {
	if source == nil {
		return 0, fmt.Errorf("trade source is required: %w", ports.ErrInvalidRequest)
	}
	trades, err := source.FetchTrades(ctx, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch trades for %s: %w", symbol, err)
	}
	inserted, err := s.repo.SaveAll(ctx, trades)
	if err != nil {
		return 0, fmt.Errorf("failed to store imported trades: %w", err)
	}
	s.logger.Info(ctx, "Import finished", map[string]interface{}{
		"symbol": symbol, "fetched": len(trades), "inserted": inserted,
	})
	return inserted, nil
}
