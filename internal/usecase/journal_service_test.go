package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

type journalFixture struct {
	svc           *JournalService
	strategies    *fakeStrategyRepo
	trades        *fakeTradeRepo
	logs          *fakeTradeLogRepo
	notifications *fakeNotificationRepo
	publisher     *fakePublisher
	media         *fakeMedia
}

func newJournalFixture(t *testing.T) *journalFixture {
	t.Helper()

	f := &journalFixture{
		strategies:    newFakeStrategyRepo(),
		trades:        newFakeTradeRepo(),
		logs:          newFakeTradeLogRepo(),
		notifications: newFakeNotificationRepo(),
		publisher:     &fakePublisher{},
		media:         &fakeMedia{},
	}

	notifier, err := NewNotificationService(f.notifications, newFakeUserRepo(), f.publisher, zerolog.Nop())
	require.NoError(t, err)

	f.svc, err = NewJournalService(
		f.strategies, newFakeAnalysisRepo(), f.trades, f.logs,
		f.media, notifier, zerolog.Nop(),
	)
	require.NoError(t, err)
	return f
}

func strategyPayload() map[string]any {
	return map[string]any{
		"name":       "Morning Breakout",
		"category":   "Breakout",
		"risk_level": "Medium Risk",
		"timeframe":  "Intraday (1 day)",
	}
}

func tradePayload() map[string]any {
	return map[string]any{
		"symbol":       "AAPL",
		"entry_price":  100.0,
		"exit_price":   110.0,
		"quantity":     5,
		"trade_type":   "Long",
		"entry_reason": "breakout above resistance",
		"exit_reason":  "target hit",
	}
}

func TestCreateStrategy(t *testing.T) {
	f := newJournalFixture(t)

	strategy, err := f.svc.CreateStrategy(context.Background(), 1, strategyPayload(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), strategy.ID)
	require.Equal(t, domain.CategoryBreakout, strategy.Category)
	require.NotNil(t, strategy.Images)

	// post-create notification and push event
	require.Len(t, f.notifications.notifications, 1)
	require.Len(t, f.publisher.events, 1)
	require.Equal(t, "new_notification", f.publisher.events[0].Event)
}

func TestCreateStrategyValidation(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	payload := strategyPayload()
	delete(payload, "name")
	_, err := f.svc.CreateStrategy(ctx, 1, payload, nil)
	require.ErrorIs(t, err, domain.ErrValidation)

	payload = strategyPayload()
	payload["category"] = "Astrology"
	_, err = f.svc.CreateStrategy(ctx, 1, payload, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateStrategyRejectsUnknownKeys(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	strategy, err := f.svc.CreateStrategy(ctx, 1, strategyPayload(), nil)
	require.NoError(t, err)

	_, err = f.svc.UpdateStrategy(ctx, 1, strategy.ID, map[string]any{"user_id": 2}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.UpdateStrategy(ctx, 1, strategy.ID, map[string]any{"created_at": "2020-01-01"}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTradeComputesPnL(t *testing.T) {
	f := newJournalFixture(t)

	trade, err := f.svc.CreateTrade(context.Background(), 1, tradePayload(), nil)
	require.NoError(t, err)
	require.NotNil(t, trade.ProfitLoss)
	require.Equal(t, 50.0, *trade.ProfitLoss)
}

func TestCreateTradeFromFormStrings(t *testing.T) {
	f := newJournalFixture(t)

	// multipart forms deliver every field as a string
	payload := map[string]any{
		"symbol":       "TSLA",
		"entry_price":  "200.5",
		"exit_price":   "190.5",
		"quantity":     "10",
		"trade_type":   "Short",
		"entry_reason": "rejection at highs",
		"exit_reason":  "cover into support",
	}

	trade, err := f.svc.CreateTrade(context.Background(), 1, payload, nil)
	require.NoError(t, err)
	require.NotNil(t, trade.ProfitLoss)
	require.Equal(t, 100.0, *trade.ProfitLoss)
}

func TestCreateTradeValidation(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	payload := tradePayload()
	delete(payload, "exit_reason")
	_, err := f.svc.CreateTrade(ctx, 1, payload, nil)
	require.ErrorIs(t, err, domain.ErrValidation)

	payload = tradePayload()
	payload["trade_type"] = "Sideways"
	_, err = f.svc.CreateTrade(ctx, 1, payload, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTradeRejectsMalformedNumbers(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	payload := tradePayload()
	payload["entry_price"] = "abc"
	_, err := f.svc.CreateTrade(ctx, 1, payload, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.ErrorContains(t, err, "entry_price")

	payload = tradePayload()
	payload["quantity"] = "five"
	_, err = f.svc.CreateTrade(ctx, 1, payload, nil)
	require.ErrorIs(t, err, domain.ErrValidation)

	payload = tradePayload()
	payload["strategy_id"] = "first"
	_, err = f.svc.CreateTrade(ctx, 1, payload, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateTradeRejectsMalformedNumbers(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	trade, err := f.svc.CreateTrade(ctx, 1, tradePayload(), nil)
	require.NoError(t, err)

	_, err = f.svc.UpdateTrade(ctx, 1, trade.ID, map[string]any{"exit_price": "oops"}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)

	// the stored row is untouched
	stored, err := f.svc.GetTrade(ctx, 1, trade.ID)
	require.NoError(t, err)
	require.Equal(t, trade.ExitPrice, stored.ExitPrice)
}

func TestCreateAnalysisRejectsMalformedNumbers(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.svc.CreateAnalysis(context.Background(), 1, map[string]any{
		"symbol":             "AAPL",
		"current_price":      "n/a",
		"entry_price":        100.0,
		"target_price":       120.0,
		"stop_loss":          90.0,
		"quantity":           5,
		"trade_type":         "Long",
		"confidence_level":   "High",
		"timeframe":          "1 Week",
		"technical_analysis": "flag forming",
	}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.ErrorContains(t, err, "current_price")
}

func TestCreateTradeLogRejectsMalformedNumbers(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.svc.CreateTradeLog(context.Background(), 1, map[string]any{
		"symbol":      "NVDA",
		"entry_price": 500.0,
		"exit_price":  520.0,
		"quantity":    "two",
		"entry_date":  "2026-08-01",
	}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.ErrorContains(t, err, "quantity")
}

func TestCreateTradeRejectsForeignStrategy(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	other, err := f.svc.CreateStrategy(ctx, 2, strategyPayload(), nil)
	require.NoError(t, err)

	payload := tradePayload()
	payload["strategy_id"] = other.ID
	_, err = f.svc.CreateTrade(ctx, 1, payload, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateTradeRecomputesPnL(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	trade, err := f.svc.CreateTrade(ctx, 1, tradePayload(), nil)
	require.NoError(t, err)

	updated, err := f.svc.UpdateTrade(ctx, 1, trade.ID, map[string]any{"exit_price": 90.0}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.ProfitLoss)
	require.Equal(t, -50.0, *updated.ProfitLoss)
}

func TestUpdateTradeRejectsProfitLoss(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	trade, err := f.svc.CreateTrade(ctx, 1, tradePayload(), nil)
	require.NoError(t, err)

	_, err = f.svc.UpdateTrade(ctx, 1, trade.ID, map[string]any{"profit_loss": 9999.0}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestTradeOwnershipScoping(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	trade, err := f.svc.CreateTrade(ctx, 1, tradePayload(), nil)
	require.NoError(t, err)

	_, err = f.svc.GetTrade(ctx, 2, trade.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.DeleteTrade(ctx, 2, trade.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTradeLog(t *testing.T) {
	f := newJournalFixture(t)

	log, err := f.svc.CreateTradeLog(context.Background(), 1, map[string]any{
		"symbol":      "NVDA",
		"entry_price": 500.0,
		"exit_price":  520.0,
		"quantity":    2,
		"entry_date":  "2026-08-01",
		"trade_type":  "Long",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, log.ProfitLoss)
	require.Equal(t, 40.0, *log.ProfitLoss)
	require.Equal(t, 2026, log.EntryDate.Year())
}

func TestCreateTradeLogWithoutDirectionHasNilPnL(t *testing.T) {
	f := newJournalFixture(t)

	log, err := f.svc.CreateTradeLog(context.Background(), 1, map[string]any{
		"symbol":      "NVDA",
		"entry_price": 500.0,
		"exit_price":  520.0,
		"quantity":    2,
		"entry_date":  "2026-08-01",
	}, nil)
	require.NoError(t, err)
	require.Nil(t, log.ProfitLoss)
}

func TestCreateTradeLogInvalidEntryDate(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.svc.CreateTradeLog(context.Background(), 1, map[string]any{
		"symbol":      "NVDA",
		"entry_price": 500.0,
		"exit_price":  520.0,
		"quantity":    2,
		"entry_date":  "yesterday",
	}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateWithImagesUploads(t *testing.T) {
	f := newJournalFixture(t)

	trade, err := f.svc.CreateTrade(context.Background(), 1, tradePayload(), []ImageFile{
		{Filename: "entry.png", Reader: strings.NewReader("img1")},
		{Filename: "exit.jpg", Reader: strings.NewReader("img2")},
	})
	require.NoError(t, err)
	require.Len(t, trade.Images, 2)
	require.Contains(t, trade.Images[0], "trade/user_1")
}

func TestCreateWithBadImageExtensionFailsBeforeUpload(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.svc.CreateTrade(context.Background(), 1, tradePayload(), []ImageFile{
		{Filename: "ok.png", Reader: strings.NewReader("img")},
		{Filename: "notes.txt", Reader: strings.NewReader("text")},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Empty(t, f.media.uploads)
}
