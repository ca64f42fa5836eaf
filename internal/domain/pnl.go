package domain

// ComputePnL returns the signed outcome of a closed position, or nil when it
// is undefined. Long positions profit when price rises, short positions when
// it falls. A missing input or a direction other than Long/Short yields nil;
// the function never errors.
func ComputePnL(entryPrice, exitPrice *float64, quantity *int, direction TradeDirection) *float64 {
	if entryPrice == nil || exitPrice == nil || quantity == nil {
		return nil
	}

	qty := float64(*quantity)
	var pnl float64
	switch direction {
	case DirectionLong:
		pnl = (*exitPrice - *entryPrice) * qty
	case DirectionShort:
		pnl = (*entryPrice - *exitPrice) * qty
	default:
		return nil
	}
	return &pnl
}
