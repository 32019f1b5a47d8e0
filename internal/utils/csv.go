package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"tradejournal/internal/domain"

	"github.com/google/uuid"
)

var csvHeader = []string{
	"id", "entry_date", "entry_time", "exit_date", "exit_time", "asset", "asset_class",
	"position", "leverage", "position_size", "currency", "entry_price", "exit_price",
	"stop_loss", "take_profit", "fees", "entry_risk_reward", "expected_pnl", "pnl",
	"actual_risk_reward", "duration", "win_probability", "expected_value", "r_multiple",
	"conviction", "pre_trade_emotion", "post_trade_emotion", "trade_type",
	"market_condition", "followed_plan", "would_take_again", "notes", "lessons_learned",
}

// WriteTradesToCSV exports trade records in the journal's CSV shape.
func WriteTradesToCSV(trades []*domain.Trade, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write(csvHeader)
	for _, t := range trades {
		writer.Write([]string{
			t.ID, t.EntryDate, t.EntryTime, t.ExitDate, t.ExitTime, t.Asset, t.AssetClass,
			string(t.Direction), t.Leverage, t.PositionSize, t.Currency, t.EntryPrice,
			t.ExitPrice, t.StopLoss, t.TakeProfit, t.Fees, t.EntryRiskReward, t.ExpectedPnL,
			t.PnL, t.ActualRiskReward, t.DurationDays, t.WinProbability, t.ExpectedValue,
			t.RMultiple, t.Conviction, t.PreTradeEmotion, t.PostTradeEmotion,
			string(t.TradeType), string(t.MarketCondition), t.FollowedPlan, t.WouldTakeAgain,
			t.Notes, t.LessonsLearned,
		})
	}
	return writer.Error()
}

// ReadTradesFromCSV imports trade records from the journal's CSV shape.
// Columns are matched by header name, so partial exports load too. Rows
// without an ID get a fresh UUID; rows repeating an already-seen ID are
// dropped.
func ReadTradesFromCSV(filename string) ([]*domain.Trade, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	seen := make(map[string]bool)
	var out []*domain.Trade
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		t := &domain.Trade{
			ID:               field(row, "id"),
			EntryDate:        field(row, "entry_date"),
			EntryTime:        field(row, "entry_time"),
			ExitDate:         field(row, "exit_date"),
			ExitTime:         field(row, "exit_time"),
			Asset:            field(row, "asset"),
			AssetClass:       field(row, "asset_class"),
			Direction:        domain.Direction(field(row, "position")),
			Leverage:         field(row, "leverage"),
			PositionSize:     field(row, "position_size"),
			Currency:         field(row, "currency"),
			EntryPrice:       field(row, "entry_price"),
			ExitPrice:        field(row, "exit_price"),
			StopLoss:         field(row, "stop_loss"),
			TakeProfit:       field(row, "take_profit"),
			Fees:             field(row, "fees"),
			EntryRiskReward:  field(row, "entry_risk_reward"),
			ExpectedPnL:      field(row, "expected_pnl"),
			PnL:              field(row, "pnl"),
			ActualRiskReward: field(row, "actual_risk_reward"),
			DurationDays:     field(row, "duration"),
			WinProbability:   field(row, "win_probability"),
			ExpectedValue:    field(row, "expected_value"),
			RMultiple:        field(row, "r_multiple"),
			Conviction:       field(row, "conviction"),
			PreTradeEmotion:  field(row, "pre_trade_emotion"),
			PostTradeEmotion: field(row, "post_trade_emotion"),
			TradeType:        domain.TradeType(field(row, "trade_type")),
			MarketCondition:  domain.MarketCondition(field(row, "market_condition")),
			FollowedPlan:     field(row, "followed_plan"),
			WouldTakeAgain:   field(row, "would_take_again"),
			Notes:            field(row, "notes"),
			LessonsLearned:   field(row, "lessons_learned"),
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}
