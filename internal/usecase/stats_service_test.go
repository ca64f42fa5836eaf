package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

func seedLog(t *testing.T, repo *fakeTradeLogRepo, userID int64, strategy string, pnl float64) {
	t.Helper()
	log := domain.TradeLog{
		UserID:          userID,
		Symbol:          "AAPL",
		TradingStrategy: strategy,
		ProfitLoss:      &pnl,
	}
	require.NoError(t, repo.Create(context.Background(), &log))
}

func TestStrategyWiseTrades(t *testing.T) {
	logs := newFakeTradeLogRepo()
	seedLog(t, logs, 1, "Breakout", 10)
	seedLog(t, logs, 1, "Breakout", -5)
	seedLog(t, logs, 1, "Scalping", 3)
	seedLog(t, logs, 2, "Breakout", 100) // other user, must not leak

	svc, err := NewStatsService(logs, zerolog.Nop())
	require.NoError(t, err)

	page, err := svc.StrategyWiseTrades(context.Background(), 1, domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, "Breakout", page.Items[0].StrategyName)
	require.Equal(t, 2, page.Items[0].TotalTrades)
	require.Equal(t, 5.0, page.Items[0].TotalPnL)
	require.Equal(t, int64(2), page.Pagination.Total)
}

func TestStrategyWiseTradesSearch(t *testing.T) {
	logs := newFakeTradeLogRepo()
	seedLog(t, logs, 1, "Breakout", 10)
	seedLog(t, logs, 1, "Scalping", 3)

	svc, err := NewStatsService(logs, zerolog.Nop())
	require.NoError(t, err)

	page, err := svc.StrategyWiseTrades(context.Background(), 1, domain.ListQuery{Search: "scalp"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Scalping", page.Items[0].StrategyName)
}

func TestTradeLogStats(t *testing.T) {
	logs := newFakeTradeLogRepo()
	seedLog(t, logs, 1, "Breakout", 10)
	seedLog(t, logs, 1, "Breakout", -5)
	seedLog(t, logs, 1, "Scalping", 0)

	svc, err := NewStatsService(logs, zerolog.Nop())
	require.NoError(t, err)

	stats, err := svc.TradeLogStats(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Performance.TotalTrades)
	require.Equal(t, 1, stats.Counts.Success)
	require.Equal(t, 1, stats.Counts.Loss)
	require.Equal(t, 1, stats.Counts.Breakeven)
	require.Equal(t, 5.0, stats.Performance.TotalPnL)
	require.Equal(t, 33.33, stats.Performance.WinRate)
}
