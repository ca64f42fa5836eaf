package domain

import "testing"

func logWithPnL(strategy string, pnl *float64) TradeLog {
	return TradeLog{TradingStrategy: strategy, ProfitLoss: pnl}
}

func TestAggregateByStrategy(t *testing.T) {
	logs := []TradeLog{
		logWithPnL("A", fptr(10)),
		logWithPnL("A", fptr(-5)),
		logWithPnL("B", fptr(0)),
	}

	buckets := AggregateByStrategy(logs)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}

	a := buckets[0]
	if a.StrategyName != "A" {
		t.Fatalf("expected bucket A first, got %q", a.StrategyName)
	}
	if a.TotalTrades != 2 || a.SuccessTrades != 1 || a.LossTrades != 1 {
		t.Fatalf("unexpected counts: %+v", a)
	}
	if a.TotalPnL != 5 {
		t.Fatalf("expected total pnl 5, got %f", a.TotalPnL)
	}
	if a.WinRate != 50.0 || a.LossRate != 50.0 {
		t.Fatalf("expected 50/50 rates, got %f/%f", a.WinRate, a.LossRate)
	}

	b := buckets[1]
	if b.StrategyName != "B" || b.BreakevenTrades != 1 {
		t.Fatalf("unexpected bucket B: %+v", b)
	}
	if b.WinRate != 0 || b.LossRate != 0 {
		t.Fatalf("breakeven-only bucket should have zero rates, got %f/%f", b.WinRate, b.LossRate)
	}
}

func TestAggregateByStrategyNilPnLIsBreakeven(t *testing.T) {
	buckets := AggregateByStrategy([]TradeLog{logWithPnL("A", nil)})
	if buckets[0].BreakevenTrades != 1 {
		t.Fatalf("nil pnl should count as breakeven: %+v", buckets[0])
	}
	if buckets[0].TotalPnL != 0 {
		t.Fatalf("nil pnl should contribute zero: %f", buckets[0].TotalPnL)
	}
	if buckets[0].Trades[0].Result != "breakeven" {
		t.Fatalf("unexpected result label %q", buckets[0].Trades[0].Result)
	}
}

func TestAggregateByStrategyEmptyLabel(t *testing.T) {
	buckets := AggregateByStrategy([]TradeLog{logWithPnL("", fptr(1))})
	if buckets[0].StrategyName != NoStrategyBucket {
		t.Fatalf("expected %q, got %q", NoStrategyBucket, buckets[0].StrategyName)
	}
}

func TestAggregateByStrategyStableOrderOnTies(t *testing.T) {
	logs := []TradeLog{
		logWithPnL("first", fptr(1)),
		logWithPnL("second", fptr(1)),
		logWithPnL("third", fptr(1)),
	}
	buckets := AggregateByStrategy(logs)
	names := []string{buckets[0].StrategyName, buckets[1].StrategyName, buckets[2].StrategyName}
	if names[0] != "first" || names[1] != "second" || names[2] != "third" {
		t.Fatalf("tie order not stable: %v", names)
	}
}

func TestRateRounding(t *testing.T) {
	if got := Rate(1, 3); got != 33.33 {
		t.Fatalf("expected 33.33, got %f", got)
	}
	if got := Rate(2, 3); got != 66.67 {
		t.Fatalf("expected 66.67, got %f", got)
	}
	if got := Rate(0, 0); got != 0 {
		t.Fatalf("expected 0 for empty bucket, got %f", got)
	}
}

func TestPaginateBuckets(t *testing.T) {
	buckets := make([]StrategyBucket, 5)
	for i := range buckets {
		buckets[i].StrategyName = string(rune('a' + i))
	}

	page := PaginateBuckets(buckets, ListQuery{Page: 2, PerPage: 2})
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].StrategyName != "c" {
		t.Fatalf("unexpected first item %q", page.Items[0].StrategyName)
	}
	if page.Pagination.Total != 5 || page.Pagination.Pages != 3 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
}

func TestPaginateBucketsOutOfRange(t *testing.T) {
	buckets := make([]StrategyBucket, 3)
	page := PaginateBuckets(buckets, ListQuery{Page: 9, PerPage: 10})
	if len(page.Items) != 0 {
		t.Fatalf("expected empty items, got %d", len(page.Items))
	}
	if page.Pagination.Total != 3 {
		t.Fatalf("metadata should describe the full set: %+v", page.Pagination)
	}
	if page.Pagination.HasNext {
		t.Fatal("page past the end should not advertise a next page")
	}
}

func TestComputeTradeLogStats(t *testing.T) {
	logs := []TradeLog{
		logWithPnL("A", fptr(10)),
		logWithPnL("A", fptr(-4)),
		logWithPnL("B", nil),
		logWithPnL("B", fptr(6)),
	}

	stats := ComputeTradeLogStats(logs)
	if stats.Counts.Success != 2 || stats.Counts.Loss != 1 || stats.Counts.Breakeven != 1 {
		t.Fatalf("unexpected counts: %+v", stats.Counts)
	}
	if stats.Performance.TotalTrades != 4 {
		t.Fatalf("expected 4 trades, got %d", stats.Performance.TotalTrades)
	}
	if stats.Performance.TotalPnL != 12 {
		t.Fatalf("expected total pnl 12, got %f", stats.Performance.TotalPnL)
	}
	if stats.Performance.WinRate != 50.0 {
		t.Fatalf("expected win rate 50, got %f", stats.Performance.WinRate)
	}
}
