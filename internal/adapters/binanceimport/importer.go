// Package binanceimport turns a Binance spot account's fill history into
// journal trade records. It implements ports.TradeSource: fetch only, no
// de-duplication (record IDs are derived from fill IDs, so re-imports
// collapse in the repository).
package binanceimport

import (
	"context"
	"fmt"
	"time"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"

	"github.com/adshao/go-binance/v2"
)

// Importer implements ports.TradeSource using the go-binance library.
type Importer struct {
	client *binance.Client
	logger ports.Logger
}

// Config holds configuration specific to the Binance import adapter.
type Config struct {
	APIKey     string
	SecretKey  string
	UseTestnet bool
	Logger     ports.Logger
}

// New creates a new Binance import adapter.
func New(cfg Config) (*Importer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance importer")
	}
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("API keys are required for trade history import: %w", ports.ErrConfigurationError)
	}
	binance.UseTestnet = cfg.UseTestnet
	return &Importer{
		client: binance.NewClient(cfg.APIKey, cfg.SecretKey),
		logger: cfg.Logger,
	}, nil
}

// FetchTrades pulls the account's fill history for one symbol and pairs
// buys with sells into closed trade records.
func (i *Importer) FetchTrades(ctx context.Context, symbol string) ([]*domain.Trade, error) {
	fills, err := i.client.NewListTradesService().Symbol(symbol).Do(ctx)
	if err != nil {
		err = fmt.Errorf("failed to fetch trade history for %s: %w", symbol, err)
		i.logger.Error(ctx, err, "Binance import failed", map[string]interface{}{"symbol": symbol})
		return nil, err
	}
	trades := pairFills(symbol, fills)
	i.logger.Info(ctx, "Binance fills imported", map[string]interface{}{
		"symbol": symbol, "fills": len(fills), "trades": len(trades),
	})
	return trades, nil
}

type lot struct {
	fillID int64
	price  float64
	qty    float64
	at     time.Time
	fees   float64
}

// pairFills matches sells against buys FIFO. Spot history only opens long
// positions, so every produced record is a Long trade. Fills that cannot
// be parsed are skipped.
func pairFills(symbol string, fills []*binance.TradeV3) []*domain.Trade {
	var open []lot
	var out []*domain.Trade

	for _, f := range fills {
		price, okP := domain.ParseNumber(f.Price)
		qty, okQ := domain.ParseNumber(f.Quantity)
		if !okP || !okQ || qty <= 0 {
			continue
		}
		fees, _ := domain.ParseNumber(f.Commission)
		at := time.UnixMilli(f.Time)

		if f.IsBuyer {
			open = append(open, lot{fillID: f.ID, price: price, qty: qty, at: at, fees: fees})
			continue
		}

		// Sell: consume open lots FIFO.
		remaining := qty
		for remaining > 0 && len(open) > 0 {
			entry := &open[0]
			matched := entry.qty
			if remaining < matched {
				matched = remaining
			}
			out = append(out, closedTrade(symbol, *entry, f.ID, price, at, matched, fees))
			entry.qty -= matched
			remaining -= matched
			if entry.qty <= 0 {
				open = open[1:]
			}
		}
	}
	return out
}

func closedTrade(symbol string, entry lot, exitID int64, exitPrice float64, exitAt time.Time, qty, exitFees float64) *domain.Trade {
	pnl := (exitPrice - entry.price) * qty
	return &domain.Trade{
		// Derived from the two fill IDs so a re-import produces the same
		// record and the repository can skip it.
		ID:           fmt.Sprintf("binance-%d-%d", entry.fillID, exitID),
		EntryDate:    entry.at.Format("2006-01-02"),
		EntryTime:    entry.at.Format("15:04"),
		ExitDate:     exitAt.Format("2006-01-02"),
		ExitTime:     exitAt.Format("15:04"),
		Asset:        symbol,
		AssetClass:   "Crypto",
		Direction:    domain.Long,
		PositionSize: formatNum(entry.price * qty),
		Currency:     "USDT",
		EntryPrice:   formatNum(entry.price),
		ExitPrice:    formatNum(exitPrice),
		Fees:         formatNum(entry.fees + exitFees),
		PnL:          formatNum(pnl),
	}
}

func formatNum(v float64) string {
	return fmt.Sprintf("%g", v)
}
