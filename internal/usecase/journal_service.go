package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// JournalService owns the four journal entities: strategies, analyses,
// trades, and trade logs. All reads and writes are scoped to the calling
// user; referenced strategy and trade ids must belong to the same user.
type JournalService struct {
	strategies domain.StrategyRepository
	analyses   domain.AnalysisRepository
	trades     domain.TradeRepository
	logs       domain.TradeLogRepository
	media      domain.MediaUploader
	notifier   *NotificationService
	logger     zerolog.Logger
}

func NewJournalService(
	strategies domain.StrategyRepository,
	analyses domain.AnalysisRepository,
	trades domain.TradeRepository,
	logs domain.TradeLogRepository,
	media domain.MediaUploader,
	notifier *NotificationService,
	logger zerolog.Logger,
) (*JournalService, error) {
	if strategies == nil {
		return nil, errors.New("strategy repository required")
	}
	if analyses == nil {
		return nil, errors.New("analysis repository required")
	}
	if trades == nil {
		return nil, errors.New("trade repository required")
	}
	if logs == nil {
		return nil, errors.New("trade log repository required")
	}
	if media == nil {
		return nil, errors.New("media uploader required")
	}
	if notifier == nil {
		return nil, errors.New("notification service required")
	}
	return &JournalService{
		strategies: strategies,
		analyses:   analyses,
		trades:     trades,
		logs:       logs,
		media:      media,
		notifier:   notifier,
		logger:     logger.With().Str("component", "journal").Logger(),
	}, nil
}

func toStringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// validateStrategyRef confirms the referenced strategy exists and belongs to
// the user. A foreign or missing id is a validation error, not a 404: the
// entity being created is not the thing that is missing.
func (s *JournalService) validateStrategyRef(ctx context.Context, userID int64, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.strategies.GetByID(ctx, userID, *id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Validationf("strategy %d not found", *id)
		}
		return err
	}
	return nil
}

func (s *JournalService) validateTradeRef(ctx context.Context, userID int64, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.trades.GetByID(ctx, userID, *id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Validationf("trade %d not found", *id)
		}
		return err
	}
	return nil
}

func requireFields(payload map[string]any, fields ...string) error {
	for _, field := range fields {
		value, ok := payload[field]
		if !ok || value == nil {
			return domain.Validationf("%s is required", field)
		}
		if s, isString := value.(string); isString && s == "" {
			return domain.Validationf("%s is required", field)
		}
	}
	return nil
}

// --- strategies ---

func (s *JournalService) CreateStrategy(ctx context.Context, userID int64, payload map[string]any, images []ImageFile) (domain.Strategy, error) {
	if err := requireFields(payload, "name", "category", "risk_level", "timeframe"); err != nil {
		return domain.Strategy{}, err
	}

	strategy := domain.Strategy{
		UserID:          userID,
		Name:            toString(payload["name"]),
		Category:        domain.StrategyCategory(toString(payload["category"])),
		RiskLevel:       domain.RiskLevel(toString(payload["risk_level"])),
		Timeframe:       domain.StrategyTimeframe(toString(payload["timeframe"])),
		Description:     toString(payload["description"]),
		TradingRules:    toString(payload["trading_rules"]),
		AdditionalNotes: toString(payload["additional_notes"]),
		Images:          []string{},
	}

	if !strategy.Category.Valid() {
		return domain.Strategy{}, domain.Validationf("invalid category %q", strategy.Category)
	}
	if !strategy.RiskLevel.Valid() {
		return domain.Strategy{}, domain.Validationf("invalid risk_level %q", strategy.RiskLevel)
	}
	if !strategy.Timeframe.Valid() {
		return domain.Strategy{}, domain.Validationf("invalid timeframe %q", strategy.Timeframe)
	}

	urls, err := uploadImages(ctx, s.media, images, fmt.Sprintf("strategy/user_%d", userID))
	if err != nil {
		return domain.Strategy{}, err
	}
	strategy.Images = append(strategy.Images, urls...)

	if err := s.strategies.Create(ctx, &strategy); err != nil {
		return domain.Strategy{}, err
	}

	s.notifier.NotifyCreated(ctx, userID, "strategy", strategy.Name, strategy.ID)
	return strategy, nil
}

func (s *JournalService) GetStrategy(ctx context.Context, userID, id int64) (domain.Strategy, error) {
	return s.strategies.GetByID(ctx, userID, id)
}

func (s *JournalService) ListStrategies(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Strategy], error) {
	return s.strategies.List(ctx, userID, q)
}

func (s *JournalService) UpdateStrategy(ctx context.Context, userID, id int64, payload map[string]any, images []ImageFile) (domain.Strategy, error) {
	strategy, err := s.strategies.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Strategy{}, err
	}

	for key, value := range payload {
		switch key {
		case "name":
			if toString(value) == "" {
				return domain.Strategy{}, domain.Validationf("name cannot be empty")
			}
			strategy.Name = toString(value)
		case "category":
			strategy.Category = domain.StrategyCategory(toString(value))
			if !strategy.Category.Valid() {
				return domain.Strategy{}, domain.Validationf("invalid category %q", strategy.Category)
			}
		case "risk_level":
			strategy.RiskLevel = domain.RiskLevel(toString(value))
			if !strategy.RiskLevel.Valid() {
				return domain.Strategy{}, domain.Validationf("invalid risk_level %q", strategy.RiskLevel)
			}
		case "timeframe":
			strategy.Timeframe = domain.StrategyTimeframe(toString(value))
			if !strategy.Timeframe.Valid() {
				return domain.Strategy{}, domain.Validationf("invalid timeframe %q", strategy.Timeframe)
			}
		case "description":
			strategy.Description = toString(value)
		case "trading_rules":
			strategy.TradingRules = toString(value)
		case "additional_notes":
			strategy.AdditionalNotes = toString(value)
		case "images":
			strategy.Images = toStringSlice(value)
		default:
			return domain.Strategy{}, domain.Validationf("field %q cannot be updated", key)
		}
	}

	urls, err := uploadImages(ctx, s.media, images, fmt.Sprintf("strategy/user_%d", userID))
	if err != nil {
		return domain.Strategy{}, err
	}
	strategy.Images = append(strategy.Images, urls...)

	if err := s.strategies.Update(ctx, &strategy); err != nil {
		return domain.Strategy{}, err
	}
	return strategy, nil
}

// DeleteStrategy removes the strategy and cascades to its analyses and
// trades; trade logs keep their rows with the references nulled.
func (s *JournalService) DeleteStrategy(ctx context.Context, userID, id int64) error {
	return s.strategies.Delete(ctx, userID, id)
}

// --- analyses ---

func (s *JournalService) CreateAnalysis(ctx context.Context, userID int64, payload map[string]any, images []ImageFile) (domain.Analysis, error) {
	if err := requireFields(payload,
		"symbol", "current_price", "entry_price", "target_price", "stop_loss",
		"quantity", "trade_type", "confidence_level", "timeframe", "technical_analysis",
	); err != nil {
		return domain.Analysis{}, err
	}

	strategyID, err := refField("strategy_id", payload["strategy_id"])
	if err != nil {
		return domain.Analysis{}, err
	}
	currentPrice, err := floatField("current_price", payload["current_price"])
	if err != nil {
		return domain.Analysis{}, err
	}
	entryPrice, err := floatField("entry_price", payload["entry_price"])
	if err != nil {
		return domain.Analysis{}, err
	}
	targetPrice, err := floatField("target_price", payload["target_price"])
	if err != nil {
		return domain.Analysis{}, err
	}
	stopLoss, err := floatField("stop_loss", payload["stop_loss"])
	if err != nil {
		return domain.Analysis{}, err
	}
	quantity, err := intField("quantity", payload["quantity"])
	if err != nil {
		return domain.Analysis{}, err
	}

	analysis := domain.Analysis{
		UserID:              userID,
		StrategyID:          strategyID,
		Symbol:              toString(payload["symbol"]),
		CurrentPrice:        currentPrice,
		EntryPrice:          entryPrice,
		TargetPrice:         targetPrice,
		StopLoss:            stopLoss,
		Quantity:            quantity,
		TradeType:           domain.TradeDirection(toString(payload["trade_type"])),
		ConfidenceLevel:     domain.ConfidenceLevel(toString(payload["confidence_level"])),
		Timeframe:           domain.AnalysisTimeframe(toString(payload["timeframe"])),
		StrategyName:        toString(payload["strategy_name"]),
		TechnicalAnalysis:   toString(payload["technical_analysis"]),
		FundamentalAnalysis: toString(payload["fundamental_analysis"]),
		AdditionalNotes:     toString(payload["additional_notes"]),
		Images:              []string{},
	}

	if !analysis.TradeType.Valid() {
		return domain.Analysis{}, domain.Validationf("invalid trade_type %q", analysis.TradeType)
	}
	if !analysis.ConfidenceLevel.Valid() {
		return domain.Analysis{}, domain.Validationf("invalid confidence_level %q", analysis.ConfidenceLevel)
	}
	if !analysis.Timeframe.Valid() {
		return domain.Analysis{}, domain.Validationf("invalid timeframe %q", analysis.Timeframe)
	}
	if err := s.validateStrategyRef(ctx, userID, analysis.StrategyID); err != nil {
		return domain.Analysis{}, err
	}

	urls, err := uploadImages(ctx, s.media, images, fmt.Sprintf("analysis/user_%d", userID))
	if err != nil {
		return domain.Analysis{}, err
	}
	analysis.Images = append(analysis.Images, urls...)

	if err := s.analyses.Create(ctx, &analysis); err != nil {
		return domain.Analysis{}, err
	}

	s.notifier.NotifyCreated(ctx, userID, "analysis", analysis.Symbol, analysis.ID)
	return analysis, nil
}

func (s *JournalService) GetAnalysis(ctx context.Context, userID, id int64) (domain.Analysis, error) {
	return s.analyses.GetByID(ctx, userID, id)
}

func (s *JournalService) ListAnalyses(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Analysis], error) {
	return s.analyses.List(ctx, userID, q)
}

func (s *JournalService) UpdateAnalysis(ctx context.Context, userID, id int64, payload map[string]any, images []ImageFile) (domain.Analysis, error) {
	analysis, err := s.analyses.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Analysis{}, err
	}

	for key, value := range payload {
		switch key {
		case "symbol":
			if toString(value) == "" {
				return domain.Analysis{}, domain.Validationf("symbol cannot be empty")
			}
			analysis.Symbol = toString(value)
		case "current_price":
			if analysis.CurrentPrice, err = floatField(key, value); err != nil {
				return domain.Analysis{}, err
			}
		case "entry_price":
			if analysis.EntryPrice, err = floatField(key, value); err != nil {
				return domain.Analysis{}, err
			}
		case "target_price":
			if analysis.TargetPrice, err = floatField(key, value); err != nil {
				return domain.Analysis{}, err
			}
		case "stop_loss":
			if analysis.StopLoss, err = floatField(key, value); err != nil {
				return domain.Analysis{}, err
			}
		case "quantity":
			if analysis.Quantity, err = intField(key, value); err != nil {
				return domain.Analysis{}, err
			}
		case "trade_type":
			analysis.TradeType = domain.TradeDirection(toString(value))
			if !analysis.TradeType.Valid() {
				return domain.Analysis{}, domain.Validationf("invalid trade_type %q", analysis.TradeType)
			}
		case "confidence_level":
			analysis.ConfidenceLevel = domain.ConfidenceLevel(toString(value))
			if !analysis.ConfidenceLevel.Valid() {
				return domain.Analysis{}, domain.Validationf("invalid confidence_level %q", analysis.ConfidenceLevel)
			}
		case "timeframe":
			analysis.Timeframe = domain.AnalysisTimeframe(toString(value))
			if !analysis.Timeframe.Valid() {
				return domain.Analysis{}, domain.Validationf("invalid timeframe %q", analysis.Timeframe)
			}
		case "strategy_id":
			if analysis.StrategyID, err = refField(key, value); err != nil {
				return domain.Analysis{}, err
			}
		case "strategy_name":
			analysis.StrategyName = toString(value)
		case "technical_analysis":
			analysis.TechnicalAnalysis = toString(value)
		case "fundamental_analysis":
			analysis.FundamentalAnalysis = toString(value)
		case "additional_notes":
			analysis.AdditionalNotes = toString(value)
		case "images":
			analysis.Images = toStringSlice(value)
		default:
			return domain.Analysis{}, domain.Validationf("field %q cannot be updated", key)
		}
	}

	if err := s.validateStrategyRef(ctx, userID, analysis.StrategyID); err != nil {
		return domain.Analysis{}, err
	}

	urls, err := uploadImages(ctx, s.media, images, fmt.Sprintf("analysis/user_%d", userID))
	if err != nil {
		return domain.Analysis{}, err
	}
	analysis.Images = append(analysis.Images, urls...)

	if err := s.analyses.Update(ctx, &analysis); err != nil {
		return domain.Analysis{}, err
	}
	return analysis, nil
}

func (s *JournalService) DeleteAnalysis(ctx context.Context, userID, id int64) error {
	return s.analyses.Delete(ctx, userID, id)
}
