package http

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"
)

// strategyWiseTrades godoc
// @Summary Trade logs aggregated per trading strategy
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (over strategy buckets)"
// @Param per_page query int false "Buckets per page (max 100)"
// @Param search query string false "Substring match over symbol, trading_strategy"
// @Success 200 {object} domain.Page[domain.StrategyBucket]
// @Failure 401 {object} ErrorResponse
// @Router /strategy-wise-trades [get]
func (r *Router) strategyWiseTrades(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	page, err := r.stats.StrategyWiseTrades(ctx, currentUserID(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// tradeLogStats godoc
// @Summary Overall trade log statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.TradeLogStats
// @Failure 401 {object} ErrorResponse
// @Router /trade-logs/stats [get]
func (r *Router) tradeLogStats(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	stats, err := r.stats.TradeLogStats(ctx, currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
