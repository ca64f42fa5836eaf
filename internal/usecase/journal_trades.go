package usecase

import (
	"context"
	"fmt"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// --- trades ---

func (s *JournalService) CreateTrade(ctx context.Context, userID int64, payload map[string]any, images []ImageFile) (domain.Trade, error) {
	if err := requireFields(payload,
		"symbol", "entry_price", "exit_price", "quantity", "trade_type",
		"entry_reason", "exit_reason",
	); err != nil {
		return domain.Trade{}, err
	}

	strategyID, err := refField("strategy_id", payload["strategy_id"])
	if err != nil {
		return domain.Trade{}, err
	}
	entryPrice, err := floatField("entry_price", payload["entry_price"])
	if err != nil {
		return domain.Trade{}, err
	}
	exitPrice, err := floatField("exit_price", payload["exit_price"])
	if err != nil {
		return domain.Trade{}, err
	}
	quantity, err := intField("quantity", payload["quantity"])
	if err != nil {
		return domain.Trade{}, err
	}

	trade := domain.Trade{
		UserID:         userID,
		StrategyID:     strategyID,
		Symbol:         toString(payload["symbol"]),
		EntryPrice:     entryPrice,
		ExitPrice:      exitPrice,
		Quantity:       quantity,
		TradeType:      domain.TradeDirection(toString(payload["trade_type"])),
		StrategyUsed:   toString(payload["strategy_used"]),
		EntryReason:    toString(payload["entry_reason"]),
		ExitReason:     toString(payload["exit_reason"]),
		Emotions:       toString(payload["emotions"]),
		LessonsLearned: toString(payload["lessons_learned"]),
		Tags:           toString(payload["tags"]),
		Notes:          toString(payload["notes"]),
		EntryTime:      parseTimePtr(payload["entry_time"]),
		ExitTime:       parseTimePtr(payload["exit_time"]),
		Images:         []string{},
	}

	if !trade.TradeType.Valid() {
		return domain.Trade{}, domain.Validationf("invalid trade_type %q", trade.TradeType)
	}
	if err := s.validateStrategyRef(ctx, userID, trade.StrategyID); err != nil {
		return domain.Trade{}, err
	}

	urls, err := uploadImages(ctx, s.media, images, fmt.Sprintf("trade/user_%d", userID))
	if err != nil {
		return domain.Trade{}, err
	}
	trade.Images = append(trade.Images, urls...)

	trade.RecomputePnL()

	if err := s.trades.Create(ctx, &trade); err != nil {
		return domain.Trade{}, err
	}

	s.notifier.NotifyCreated(ctx, userID, "trade", trade.Symbol, trade.ID)
	return trade, nil
}

func (s *JournalService) GetTrade(ctx context.Context, userID, id int64) (domain.Trade, error) {
	return s.trades.GetByID(ctx, userID, id)
}

func (s *JournalService) ListTrades(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Trade], error) {
	return s.trades.List(ctx, userID, q)
}

func (s *JournalService) UpdateTrade(ctx context.Context, userID, id int64, payload map[string]any, images []ImageFile) (domain.Trade, error) {
	trade, err := s.trades.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trade{}, err
	}

	for key, value := range payload {
		switch key {
		case "symbol":
			if toString(value) == "" {
				return domain.Trade{}, domain.Validationf("symbol cannot be empty")
			}
			trade.Symbol = toString(value)
		case "entry_price":
			if trade.EntryPrice, err = floatField(key, value); err != nil {
				return domain.Trade{}, err
			}
		case "exit_price":
			if trade.ExitPrice, err = floatField(key, value); err != nil {
				return domain.Trade{}, err
			}
		case "quantity":
			if trade.Quantity, err = intField(key, value); err != nil {
				return domain.Trade{}, err
			}
		case "trade_type":
			trade.TradeType = domain.TradeDirection(toString(value))
			if !trade.TradeType.Valid() {
				return domain.Trade{}, domain.Validationf("invalid trade_type %q", trade.TradeType)
			}
		case "strategy_id":
			if trade.StrategyID, err = refField(key, value); err != nil {
				return domain.Trade{}, err
			}
		case "strategy_used":
			trade.StrategyUsed = toString(value)
		case "entry_reason":
			trade.EntryReason = toString(value)
		case "exit_reason":
			trade.ExitReason = toString(value)
		case "emotions":
			trade.Emotions = toString(value)
		case "lessons_learned":
			trade.LessonsLearned = toString(value)
		case "tags":
			trade.Tags = toString(value)
		case "notes":
			trade.Notes = toString(value)
		case "entry_time":
			trade.EntryTime = parseTimePtr(value)
		case "exit_time":
			trade.ExitTime = parseTimePtr(value)
		case "images":
			trade.Images = toStringSlice(value)
		default:
			return domain.Trade{}, domain.Validationf("field %q cannot be updated", key)
		}
	}

	if err := s.validateStrategyRef(ctx, userID, trade.StrategyID); err != nil {
		return domain.Trade{}, err
	}

	urls, err := uploadImages(ctx, s.media, images, fmt.Sprintf("trade/user_%d", userID))
	if err != nil {
		return domain.Trade{}, err
	}
	trade.Images = append(trade.Images, urls...)

	trade.RecomputePnL()

	if err := s.trades.Update(ctx, &trade); err != nil {
		return domain.Trade{}, err
	}
	return trade, nil
}

// DeleteTrade removes the trade; dependent trade logs keep their rows with
// trade_id nulled.
func (s *JournalService) DeleteTrade(ctx context.Context, userID, id int64) error {
	return s.trades.Delete(ctx, userID, id)
}

// --- trade logs ---

func (s *JournalService) CreateTradeLog(ctx context.Context, userID int64, payload map[string]any, images []ImageFile) (domain.TradeLog, error) {
	if err := requireFields(payload,
		"symbol", "entry_price", "exit_price", "quantity", "entry_date",
	); err != nil {
		return domain.TradeLog{}, err
	}

	entryDate, ok := parseTime(payload["entry_date"])
	if !ok {
		return domain.TradeLog{}, domain.Validationf("invalid entry_date")
	}

	tradeID, err := refField("trade_id", payload["trade_id"])
	if err != nil {
		return domain.TradeLog{}, err
	}
	strategyID, err := refField("strategy_id", payload["strategy_id"])
	if err != nil {
		return domain.TradeLog{}, err
	}
	entryPrice, err := floatField("entry_price", payload["entry_price"])
	if err != nil {
		return domain.TradeLog{}, err
	}
	exitPrice, err := floatField("exit_price", payload["exit_price"])
	if err != nil {
		return domain.TradeLog{}, err
	}
	quantity, err := intField("quantity", payload["quantity"])
	if err != nil {
		return domain.TradeLog{}, err
	}

	log := domain.TradeLog{
		UserID:          userID,
		TradeID:         tradeID,
		StrategyID:      strategyID,
		Symbol:          toString(payload["symbol"]),
		EntryPrice:      entryPrice,
		ExitPrice:       exitPrice,
		Quantity:        quantity,
		EntryDate:       entryDate,
		ExitDate:        parseTimePtr(payload["exit_date"]),
		TradeType:       domain.TradeDirection(toString(payload["trade_type"])),
		TradingStrategy: toString(payload["trading_strategy"]),
		TradeNotes:      toString(payload["trade_notes"]),
		Images:          []string{},
	}

	if log.TradeType != "" && !log.TradeType.Valid() {
		return domain.TradeLog{}, domain.Validationf("invalid trade_type %q", log.TradeType)
	}
	if err := s.validateStrategyRef(ctx, userID, log.StrategyID); err != nil {
		return domain.TradeLog{}, err
	}
	if err := s.validateTradeRef(ctx, userID, log.TradeID); err != nil {
		return domain.TradeLog{}, err
	}

	urls, err := uploadImages(ctx, s.media, images, fmt.Sprintf("tradelog/user_%d", userID))
	if err != nil {
		return domain.TradeLog{}, err
	}
	log.Images = append(log.Images, urls...)

	log.RecomputePnL()

	if err := s.logs.Create(ctx, &log); err != nil {
		return domain.TradeLog{}, err
	}

	s.notifier.NotifyCreated(ctx, userID, "trade log", log.Symbol, log.ID)
	return log, nil
}

func (s *JournalService) GetTradeLog(ctx context.Context, userID, id int64) (domain.TradeLog, error) {
	return s.logs.GetByID(ctx, userID, id)
}

func (s *JournalService) ListTradeLogs(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.TradeLog], error) {
	return s.logs.List(ctx, userID, q)
}

func (s *JournalService) UpdateTradeLog(ctx context.Context, userID, id int64, payload map[string]any, images []ImageFile) (domain.TradeLog, error) {
	log, err := s.logs.GetByID(ctx, userID, id)
	if err != nil {
		return domain.TradeLog{}, err
	}

	for key, value := range payload {
		switch key {
		case "symbol":
			if toString(value) == "" {
				return domain.TradeLog{}, domain.Validationf("symbol cannot be empty")
			}
			log.Symbol = toString(value)
		case "entry_price":
			if log.EntryPrice, err = floatField(key, value); err != nil {
				return domain.TradeLog{}, err
			}
		case "exit_price":
			if log.ExitPrice, err = floatField(key, value); err != nil {
				return domain.TradeLog{}, err
			}
		case "quantity":
			if log.Quantity, err = intField(key, value); err != nil {
				return domain.TradeLog{}, err
			}
		case "entry_date":
			entryDate, ok := parseTime(value)
			if !ok {
				return domain.TradeLog{}, domain.Validationf("invalid entry_date")
			}
			log.EntryDate = entryDate
		case "exit_date":
			log.ExitDate = parseTimePtr(value)
		case "trade_type":
			log.TradeType = domain.TradeDirection(toString(value))
			if log.TradeType != "" && !log.TradeType.Valid() {
				return domain.TradeLog{}, domain.Validationf("invalid trade_type %q", log.TradeType)
			}
		case "trade_id":
			if log.TradeID, err = refField(key, value); err != nil {
				return domain.TradeLog{}, err
			}
		case "strategy_id":
			if log.StrategyID, err = refField(key, value); err != nil {
				return domain.TradeLog{}, err
			}
		case "trading_strategy":
			log.TradingStrategy = toString(value)
		case "trade_notes":
			log.TradeNotes = toString(value)
		case "images":
			log.Images = toStringSlice(value)
		default:
			return domain.TradeLog{}, domain.Validationf("field %q cannot be updated", key)
		}
	}

	if err := s.validateStrategyRef(ctx, userID, log.StrategyID); err != nil {
		return domain.TradeLog{}, err
	}
	if err := s.validateTradeRef(ctx, userID, log.TradeID); err != nil {
		return domain.TradeLog{}, err
	}

	urls, err := uploadImages(ctx, s.media, images, fmt.Sprintf("tradelog/user_%d", userID))
	if err != nil {
		return domain.TradeLog{}, err
	}
	log.Images = append(log.Images, urls...)

	log.RecomputePnL()

	if err := s.logs.Update(ctx, &log); err != nil {
		return domain.TradeLog{}, err
	}
	return log, nil
}

func (s *JournalService) DeleteTradeLog(ctx context.Context, userID, id int64) error {
	return s.logs.Delete(ctx, userID, id)
}
