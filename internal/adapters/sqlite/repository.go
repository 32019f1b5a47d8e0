package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.TradeRepository using SQLite. Flexible
// numeric fields are stored as TEXT exactly as they arrived; parsing
// stays a concern of the analytics layer.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/journal.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from
	// limiting connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite journal opened", map[string]interface{}{"path": dbPath})
	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		entry_date TEXT NOT NULL,
		entry_time TEXT DEFAULT '',
		exit_date TEXT DEFAULT '',
		exit_time TEXT DEFAULT '',
		asset TEXT NOT NULL,
		asset_class TEXT DEFAULT '',
		direction TEXT NOT NULL,
		leverage TEXT DEFAULT '',
		position_size TEXT DEFAULT '',
		currency TEXT DEFAULT '',
		entry_price TEXT DEFAULT '',
		exit_price TEXT DEFAULT '',
		stop_loss TEXT DEFAULT '',
		take_profit TEXT DEFAULT '',
		fees TEXT DEFAULT '',
		entry_risk_reward TEXT DEFAULT '',
		expected_pnl TEXT DEFAULT '',
		pnl TEXT DEFAULT '',
		actual_risk_reward TEXT DEFAULT '',
		duration TEXT DEFAULT '',
		win_probability TEXT DEFAULT '',
		expected_value TEXT DEFAULT '',
		r_multiple TEXT DEFAULT '',
		conviction TEXT DEFAULT '',
		pre_trade_emotion TEXT DEFAULT '',
		post_trade_emotion TEXT DEFAULT '',
		trade_type TEXT DEFAULT '',
		market_condition TEXT DEFAULT '',
		followed_plan TEXT DEFAULT '',
		would_take_again TEXT DEFAULT '',
		notes TEXT DEFAULT '',
		lessons_learned TEXT DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_trades_asset_entry_date ON trades (asset, entry_date);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite journal")
		return r.db.Close()
	}
	return nil
}

const tradeColumns = `id, entry_date, entry_time, exit_date, exit_time, asset, asset_class,
	direction, leverage, position_size, currency, entry_price, exit_price, stop_loss,
	take_profit, fees, entry_risk_reward, expected_pnl, pnl, actual_risk_reward, duration,
	win_probability, expected_value, r_multiple, conviction, pre_trade_emotion,
	post_trade_emotion, trade_type, market_condition, followed_plan, would_take_again,
	notes, lessons_learned`

func tradeValues(t *domain.Trade) []interface{} {
	return []interface{}{
		t.ID, t.EntryDate, t.EntryTime, t.ExitDate, t.ExitTime, t.Asset, t.AssetClass,
		string(t.Direction), t.Leverage, t.PositionSize, t.Currency, t.EntryPrice,
		t.ExitPrice, t.StopLoss, t.TakeProfit, t.Fees, t.EntryRiskReward, t.ExpectedPnL,
		t.PnL, t.ActualRiskReward, t.DurationDays, t.WinProbability, t.ExpectedValue,
		t.RMultiple, t.Conviction, t.PreTradeEmotion, t.PostTradeEmotion,
		string(t.TradeType), string(t.MarketCondition), t.FollowedPlan, t.WouldTakeAgain,
		t.Notes, t.LessonsLearned,
	}
}

func scanTrade(scan func(dest ...interface{}) error) (*domain.Trade, error) {
	var t domain.Trade
	var direction, tradeType, marketCondition string
	err := scan(
		&t.ID, &t.EntryDate, &t.EntryTime, &t.ExitDate, &t.ExitTime, &t.Asset, &t.AssetClass,
		&direction, &t.Leverage, &t.PositionSize, &t.Currency, &t.EntryPrice,
		&t.ExitPrice, &t.StopLoss, &t.TakeProfit, &t.Fees, &t.EntryRiskReward, &t.ExpectedPnL,
		&t.PnL, &t.ActualRiskReward, &t.DurationDays, &t.WinProbability, &t.ExpectedValue,
		&t.RMultiple, &t.Conviction, &t.PreTradeEmotion, &t.PostTradeEmotion,
		&tradeType, &marketCondition, &t.FollowedPlan, &t.WouldTakeAgain,
		&t.Notes, &t.LessonsLearned,
	)
	if err != nil {
		return nil, err
	}
	t.Direction = domain.Direction(direction)
	t.TradeType = domain.TradeType(tradeType)
	t.MarketCondition = domain.MarketCondition(marketCondition)
	return &t, nil
}

var placeholders = "?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?"

// Save inserts a trade record, replacing any stored record with the same ID.
func (r *Repository) Save(ctx context.Context, trade *domain.Trade) error {
	if trade.ID == "" {
		return fmt.Errorf("trade ID is required: %w", ports.ErrInvalidRequest)
	}
	query := fmt.Sprintf("INSERT OR REPLACE INTO trades (%s) VALUES (%s)", tradeColumns, placeholders)
	if _, err := r.db.ExecContext(ctx, query, tradeValues(trade)...); err != nil {
		return fmt.Errorf("failed to save trade %s: %w", trade.ID, err)
	}
	r.logger.Debug(ctx, "Trade saved", map[string]interface{}{"tradeID": trade.ID, "asset": trade.Asset})
	return nil
}

// SaveAll saves a batch of trade records inside one transaction, skipping
// IDs that already exist, and returns how many were newly inserted.
func (r *Repository) SaveAll(ctx context.Context, trades []*domain.Trade) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("INSERT OR IGNORE INTO trades (%s) VALUES (%s)", tradeColumns, placeholders)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range trades {
		if t.ID == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, tradeValues(t)...)
		if err != nil {
			return 0, fmt.Errorf("failed to save trade %s: %w", t.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected for trade %s: %w", t.ID, err)
		}
		inserted += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit trade batch: %w", err)
	}
	r.logger.Debug(ctx, "Trade batch saved", map[string]interface{}{"received": len(trades), "inserted": inserted})
	return inserted, nil
}

// FindAll retrieves every trade record, ordered by entry date ascending.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	query := fmt.Sprintf("SELECT %s FROM trades ORDER BY entry_date ASC, entry_time ASC, id ASC", tradeColumns)
	return r.queryTrades(ctx, query)
}

// FindByAsset retrieves the trade records for one asset, ordered by entry
// date ascending.
func (r *Repository) FindByAsset(ctx context.Context, asset string) ([]*domain.Trade, error) {
	query := fmt.Sprintf("SELECT %s FROM trades WHERE asset = ? ORDER BY entry_date ASC, entry_time ASC, id ASC", tradeColumns)
	return r.queryTrades(ctx, query, asset)
}

func (r *Repository) queryTrades(ctx context.Context, query string, args ...interface{}) ([]*domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var out []*domain.Trade
	for rows.Next() {
		t, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return out, nil
}

// Count returns the number of stored trade records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trades").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return n, nil
}

// Delete removes a trade record by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trade %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete of trade %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("trade %s not found for delete: %w", id, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Trade deleted", map[string]interface{}{"tradeID": id})
	return nil
}
