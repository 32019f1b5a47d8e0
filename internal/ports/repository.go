package ports

import (
	"context"

	"tradejournal/internal/domain"
)

// TradeRepository defines the interface for storing and retrieving
// journal trade records.
type TradeRepository interface {
	// Save inserts a trade record, or replaces the stored record with the
	// same ID.
	Save(ctx context.Context, trade *domain.Trade) error
	// SaveAll saves a batch of trade records, skipping records whose ID
	// already exists, and returns how many were newly inserted.
	SaveAll(ctx context.Context, trades []*domain.Trade) (int, error)
	// FindAll retrieves every trade record, ordered by entry date ascending.
	FindAll(ctx context.Context) ([]*domain.Trade, error)
	// FindByAsset retrieves the trade records for one asset, ordered by
	// entry date ascending.
	FindByAsset(ctx context.Context, asset string) ([]*domain.Trade, error)
	// Count returns the number of stored trade records.
	Count(ctx context.Context) (int, error)
	// Delete removes a trade record by ID.
	Delete(ctx context.Context, id string) error
}

// TradeSource is an external producer of trade records (an exchange
// account history, a CSV export). Implementations do not de-duplicate;
// the repository decides what is new on save.
type TradeSource interface {
	// FetchTrades retrieves closed trade records for one asset symbol.
	FetchTrades(ctx context.Context, symbol string) ([]*domain.Trade, error)
}
