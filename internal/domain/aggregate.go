package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

const NoStrategyBucket = "No Strategy"

type BucketTrade struct {
	ID         int64    `json:"id"`
	Symbol     string   `json:"symbol"`
	EntryPrice float64  `json:"entry_price"`
	ExitPrice  float64  `json:"exit_price"`
	Quantity   int      `json:"quantity"`
	PnL        float64  `json:"pnl"`
	Result     string   `json:"result"`
	Images     []string `json:"images"`
}

// StrategyBucket summarizes all trade logs sharing one free-text strategy
// label.
type StrategyBucket struct {
	StrategyName    string        `json:"strategy_name"`
	TotalTrades     int           `json:"total_trades"`
	SuccessTrades   int           `json:"success_trades"`
	LossTrades      int           `json:"loss_trades"`
	BreakevenTrades int           `json:"breakeven_trades"`
	TotalPnL        float64       `json:"total_pnl"`
	WinRate         float64       `json:"win_rate"`
	LossRate        float64       `json:"loss_rate"`
	Trades          []BucketTrade `json:"trades"`
}

// AggregateByStrategy groups trade logs by their trading_strategy label and
// returns buckets sorted by total trade count descending. The sort is stable:
// buckets with equal counts keep first-encounter order. A log without a label
// lands in the "No Strategy" bucket; a log without a profit_loss value counts
// as breakeven with zero P&L.
func AggregateByStrategy(logs []TradeLog) []StrategyBucket {
	index := make(map[string]int)
	buckets := make([]StrategyBucket, 0)

	for _, log := range logs {
		name := log.TradingStrategy
		if name == "" {
			name = NoStrategyBucket
		}

		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, StrategyBucket{StrategyName: name})
		}

		pnl := 0.0
		if log.ProfitLoss != nil {
			pnl = *log.ProfitLoss
		}

		var result string
		switch {
		case pnl > 0:
			buckets[i].SuccessTrades++
			result = "success"
		case pnl < 0:
			buckets[i].LossTrades++
			result = "loss"
		default:
			buckets[i].BreakevenTrades++
			result = "breakeven"
		}

		buckets[i].TotalTrades++
		buckets[i].TotalPnL += pnl
		buckets[i].Trades = append(buckets[i].Trades, BucketTrade{
			ID:         log.ID,
			Symbol:     log.Symbol,
			EntryPrice: log.EntryPrice,
			ExitPrice:  log.ExitPrice,
			Quantity:   log.Quantity,
			PnL:        pnl,
			Result:     result,
			Images:     log.Images,
		})
	}

	for i := range buckets {
		buckets[i].WinRate = Rate(buckets[i].SuccessTrades, buckets[i].TotalTrades)
		buckets[i].LossRate = Rate(buckets[i].LossTrades, buckets[i].TotalTrades)
	}

	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].TotalTrades > buckets[b].TotalTrades
	})

	return buckets
}

// PaginateBuckets slices an already-sorted bucket list. An out-of-range page
// yields empty items while the metadata still describes the full set.
func PaginateBuckets(buckets []StrategyBucket, q ListQuery) Page[StrategyBucket] {
	q = q.Normalize()

	start := q.Offset()
	end := start + q.PerPage
	items := []StrategyBucket{}
	if start < len(buckets) {
		if end > len(buckets) {
			end = len(buckets)
		}
		items = buckets[start:end]
	}

	return Page[StrategyBucket]{
		Items:      items,
		Pagination: NewPagination(q.Page, q.PerPage, int64(len(buckets))),
	}
}

// Rate converts successes/total into a percentage rounded to 2 decimal
// places; zero when total is zero.
func Rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(count)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	f, _ := rate.Float64()
	return f
}

type TradeLogCounts struct {
	Success   int `json:"success"`
	Loss      int `json:"loss"`
	Breakeven int `json:"breakeven"`
}

type TradeLogPerformance struct {
	TotalTrades int     `json:"total_trades"`
	WinRate     float64 `json:"win_rate"`
	LossRate    float64 `json:"loss_rate"`
	TotalPnL    float64 `json:"total_pnl"`
}

type TradeLogStats struct {
	Counts      TradeLogCounts      `json:"counts"`
	Performance TradeLogPerformance `json:"performance"`
}

// ComputeTradeLogStats summarizes a user's whole journal in one pass.
func ComputeTradeLogStats(logs []TradeLog) TradeLogStats {
	var stats TradeLogStats
	var totalPnL float64

	for _, log := range logs {
		pnl := 0.0
		if log.ProfitLoss != nil {
			pnl = *log.ProfitLoss
		}
		switch {
		case pnl > 0:
			stats.Counts.Success++
		case pnl < 0:
			stats.Counts.Loss++
		default:
			stats.Counts.Breakeven++
		}
		totalPnL += pnl
	}

	total := len(logs)
	stats.Performance = TradeLogPerformance{
		TotalTrades: total,
		WinRate:     Rate(stats.Counts.Success, total),
		LossRate:    Rate(stats.Counts.Loss, total),
		TotalPnL:    totalPnL,
	}
	return stats
}
