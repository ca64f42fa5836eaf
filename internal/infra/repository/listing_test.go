package repository

import "testing"

// Every scalar model column is sortable; JSON image columns are not.
func TestSortableSetsCoverModelColumns(t *testing.T) {
	cases := []struct {
		name    string
		set     map[string]struct{}
		columns []string
	}{
		{"strategy", strategySortable, []string{
			"id", "user_id", "name", "category", "risk_level", "timeframe",
			"description", "trading_rules", "additional_notes", "created_at", "updated_at",
		}},
		{"analysis", analysisSortable, []string{
			"id", "user_id", "strategy_id", "symbol", "current_price", "entry_price",
			"target_price", "stop_loss", "quantity", "trade_type", "confidence_level",
			"timeframe", "strategy_name", "technical_analysis", "fundamental_analysis",
			"additional_notes", "created_at", "updated_at",
		}},
		{"trade", tradeSortable, []string{
			"id", "user_id", "strategy_id", "symbol", "entry_price", "exit_price",
			"quantity", "trade_type", "strategy_used", "entry_reason", "exit_reason",
			"emotions", "lessons_learned", "tags", "notes", "profit_loss",
			"entry_time", "exit_time", "created_at", "updated_at",
		}},
		{"trade_log", tradeLogSortable, []string{
			"id", "user_id", "trade_id", "strategy_id", "symbol", "entry_price",
			"exit_price", "quantity", "entry_date", "exit_date", "trade_type",
			"trading_strategy", "trade_notes", "profit_loss", "created_at", "updated_at",
		}},
	}

	for _, tc := range cases {
		for _, col := range tc.columns {
			if _, ok := tc.set[col]; !ok {
				t.Errorf("%s: column %q should be sortable", tc.name, col)
			}
		}
		if _, ok := tc.set["images"]; ok {
			t.Errorf("%s: images is a JSON column and must not be sortable", tc.name)
		}
		if len(tc.set) != len(tc.columns) {
			t.Errorf("%s: sortable set has %d entries, want %d", tc.name, len(tc.set), len(tc.columns))
		}
	}
}
