package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// StatsService computes read-only aggregations over a user's trade logs.
type StatsService struct {
	logs   domain.TradeLogRepository
	logger zerolog.Logger
}

func NewStatsService(logs domain.TradeLogRepository, logger zerolog.Logger) (*StatsService, error) {
	if logs == nil {
		return nil, errors.New("trade log repository required")
	}
	return &StatsService{
		logs:   logs,
		logger: logger.With().Str("component", "stats").Logger(),
	}, nil
}

// StrategyWiseTrades buckets the user's trade logs by trading strategy and
// paginates over the buckets, not the underlying rows.
func (s *StatsService) StrategyWiseTrades(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.StrategyBucket], error) {
	logs, err := s.logs.ListFiltered(ctx, userID, q.Search)
	if err != nil {
		return domain.Page[domain.StrategyBucket]{}, err
	}

	buckets := domain.AggregateByStrategy(logs)
	return domain.PaginateBuckets(buckets, q), nil
}

func (s *StatsService) TradeLogStats(ctx context.Context, userID int64) (domain.TradeLogStats, error) {
	logs, err := s.logs.ListFiltered(ctx, userID, "")
	if err != nil {
		return domain.TradeLogStats{}, err
	}
	return domain.ComputeTradeLogStats(logs), nil
}
