package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"
)

// Mock implementations
type mockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.debugMsgs = append(m.debugMsgs, msg)
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.errorMsgs = append(m.errorMsgs, msg)
}

type mockRepository struct {
	trades     []*domain.Trade
	findAllErr error
	saveAllErr error
	saved      []*domain.Trade
	inserted   int
}

func (m *mockRepository) Save(ctx context.Context, trade *domain.Trade) error {
	m.saved = append(m.saved, trade)
	return nil
}

func (m *mockRepository) SaveAll(ctx context.Context, trades []*domain.Trade) (int, error) {
	if m.saveAllErr != nil {
		return 0, m.saveAllErr
	}
	m.saved = append(m.saved, trades...)
	return m.inserted, nil
}

func (m *mockRepository) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	return m.trades, m.findAllErr
}

func (m *mockRepository) FindByAsset(ctx context.Context, asset string) ([]*domain.Trade, error) {
	var out []*domain.Trade
	for _, t := range m.trades {
		if t.Asset == asset {
			out = append(out, t)
		}
	}
	return out, m.findAllErr
}

func (m *mockRepository) Count(ctx context.Context) (int, error) {
	return len(m.trades), nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type mockSource struct {
	trades []*domain.Trade
	err    error
}

func (m *mockSource) FetchTrades(ctx context.Context, symbol string) ([]*domain.Trade, error) {
	return m.trades, m.err
}

func journalFixture() []*domain.Trade {
	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	pnls := []string{"100", "-50", "75", "-25"}
	var trades []*domain.Trade
	for i := range dates {
		trades = append(trades, &domain.Trade{
			ID:              fmt.Sprintf("t%d", i+1),
			EntryDate:       dates[i],
			EntryTime:       "10:00",
			Asset:           "BTCUSDT",
			Direction:       domain.Long,
			PositionSize:    "100",
			PnL:             pnls[i],
			Conviction:      "3",
			PreTradeEmotion: "3",
			TradeType:       domain.TypeSwing,
		})
	}
	return trades
}

func TestNewAnalyticsService(t *testing.T) {
	logger := &mockLogger{}
	repo := &mockRepository{}

	_, err := NewAnalyticsService(nil, repo, 1.5)
	assert.Error(t, err)

	_, err = NewAnalyticsService(logger, nil, 1.5)
	assert.Error(t, err)

	svc, err := NewAnalyticsService(logger, repo, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, svc.payoffRatio) // default payoff ratio
}

func TestBuildReport(t *testing.T) {
	logger := &mockLogger{}
	repo := &mockRepository{trades: journalFixture()}
	svc, err := NewAnalyticsService(logger, repo, 1.5)
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rep, err := svc.BuildReport(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, now, rep.GeneratedAt)
	assert.Equal(t, 4, rep.Summary.TradeCount)
	assert.Equal(t, 50.0, rep.Summary.WinRate)
	assert.Equal(t, 100.0, rep.Summary.TotalPnL)

	// Every categorical section sees the same four trades.
	require.Len(t, rep.Breakdowns.Conviction.Buckets, 1)
	assert.Equal(t, 4, rep.Breakdowns.Conviction.Buckets[0].Count)
	require.NotEmpty(t, rep.Breakdowns.Weekday.Buckets)
	require.NotEmpty(t, rep.Breakdowns.EntryHour.Buckets)
	require.NotEmpty(t, rep.SizeReport.Buckets)

	assert.NotEmpty(t, logger.infoMsgs)
}

func TestBuildReportEmptyJournal(t *testing.T) {
	logger := &mockLogger{}
	repo := &mockRepository{}
	svc, err := NewAnalyticsService(logger, repo, 1.5)
	require.NoError(t, err)

	rep, err := svc.BuildReport(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Summary.TradeCount)
	assert.Empty(t, rep.Drawdowns.Drawdowns)
}

func TestBuildReportRepositoryError(t *testing.T) {
	logger := &mockLogger{}
	repo := &mockRepository{findAllErr: errors.New("disk gone")}
	svc, err := NewAnalyticsService(logger, repo, 1.5)
	require.NoError(t, err)

	_, err = svc.BuildReport(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load journal")
}

func TestEstimateTrade(t *testing.T) {
	logger := &mockLogger{}
	repo := &mockRepository{trades: journalFixture()} // only 4 closed trades
	svc, err := NewAnalyticsService(logger, repo, 1.5)
	require.NoError(t, err)

	est, err := svc.EstimateTrade(context.Background(), &domain.Trade{Asset: "BTCUSDT"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, est.Prediction.Probability) // thin history stays neutral
	assert.Equal(t, 8, est.Kelly.PercentLow)
	assert.Equal(t, 17, est.Kelly.PercentHigh)
}

func TestEstimateTradeNilCandidate(t *testing.T) {
	svc, err := NewAnalyticsService(&mockLogger{}, &mockRepository{}, 1.5)
	require.NoError(t, err)

	_, err = svc.EstimateTrade(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrInvalidRequest))
}

func TestImportFrom(t *testing.T) {
	logger := &mockLogger{}
	repo := &mockRepository{inserted: 2}
	svc, err := NewAnalyticsService(logger, repo, 1.5)
	require.NoError(t, err)

	fetched := []*domain.Trade{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	n, err := svc.ImportFrom(context.Background(), &mockSource{trades: fetched}, "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, repo.saved, 3)
}

func TestImportFromSourceError(t *testing.T) {
	svc, err := NewAnalyticsService(&mockLogger{}, &mockRepository{}, 1.5)
	require.NoError(t, err)

	_, err = svc.ImportFrom(context.Background(), &mockSource{err: ports.ErrSourceUnavailable}, "BTCUSDT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrSourceUnavailable))

	_, err = svc.ImportFrom(context.Background(), nil, "BTCUSDT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrInvalidRequest))
}
