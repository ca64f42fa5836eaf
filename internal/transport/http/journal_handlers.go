package http

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"
)

// --- strategies ---

// listStrategies godoc
// @Summary List trading strategies
// @Tags strategies
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (max 100)"
// @Param search query string false "Substring match over name, description, category"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} domain.Page[domain.Strategy]
// @Failure 401 {object} ErrorResponse
// @Router /strategies [get]
func (r *Router) listStrategies(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	page, err := r.journal.ListStrategies(ctx, currentUserID(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// createStrategy godoc
// @Summary Create a trading strategy
// @Tags strategies
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.Strategy
// @Failure 400 {object} ErrorResponse
// @Router /strategies [post]
func (r *Router) createStrategy(c *fiber.Ctx) error {
	payload, images, cleanup, err := extractPayload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	strategy, err := r.journal.CreateStrategy(ctx, currentUserID(c), payload, images)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(strategy)
}

// getStrategy godoc
// @Summary Get one strategy
// @Tags strategies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Strategy ID"
// @Success 200 {object} domain.Strategy
// @Failure 404 {object} ErrorResponse
// @Router /strategies/{id} [get]
func (r *Router) getStrategy(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 5*time.Second)
	defer cancel()

	strategy, err := r.journal.GetStrategy(ctx, currentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(strategy)
}

// updateStrategy godoc
// @Summary Update a strategy
// @Tags strategies
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Strategy ID"
// @Success 200 {object} domain.Strategy
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /strategies/{id} [put]
func (r *Router) updateStrategy(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payload, images, cleanup, err := extractPayload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	strategy, err := r.journal.UpdateStrategy(ctx, currentUserID(c), id, payload, images)
	if err != nil {
		return err
	}
	return c.JSON(strategy)
}

// deleteStrategy godoc
// @Summary Delete a strategy and its analyses and trades
// @Tags strategies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Strategy ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /strategies/{id} [delete]
func (r *Router) deleteStrategy(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	if err := r.journal.DeleteStrategy(ctx, currentUserID(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "strategy deleted"})
}

// --- analyses ---

// listAnalyses godoc
// @Summary List market analyses
// @Tags analyses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (max 100)"
// @Param search query string false "Substring match over symbol, strategy_name"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} domain.Page[domain.Analysis]
// @Failure 401 {object} ErrorResponse
// @Router /analyses [get]
func (r *Router) listAnalyses(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	page, err := r.journal.ListAnalyses(ctx, currentUserID(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// createAnalysis godoc
// @Summary Create a market analysis
// @Tags analyses
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.Analysis
// @Failure 400 {object} ErrorResponse
// @Router /analyses [post]
func (r *Router) createAnalysis(c *fiber.Ctx) error {
	payload, images, cleanup, err := extractPayload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	analysis, err := r.journal.CreateAnalysis(ctx, currentUserID(c), payload, images)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(analysis)
}

// getAnalysis godoc
// @Summary Get one analysis
// @Tags analyses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Analysis ID"
// @Success 200 {object} domain.Analysis
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id} [get]
func (r *Router) getAnalysis(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 5*time.Second)
	defer cancel()

	analysis, err := r.journal.GetAnalysis(ctx, currentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(analysis)
}

// updateAnalysis godoc
// @Summary Update an analysis
// @Tags analyses
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Analysis ID"
// @Success 200 {object} domain.Analysis
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id} [put]
func (r *Router) updateAnalysis(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payload, images, cleanup, err := extractPayload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	analysis, err := r.journal.UpdateAnalysis(ctx, currentUserID(c), id, payload, images)
	if err != nil {
		return err
	}
	return c.JSON(analysis)
}

// deleteAnalysis godoc
// @Summary Delete an analysis
// @Tags analyses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Analysis ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id} [delete]
func (r *Router) deleteAnalysis(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	if err := r.journal.DeleteAnalysis(ctx, currentUserID(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "analysis deleted"})
}

// --- trades ---

// listTrades godoc
// @Summary List executed trades
// @Tags trades
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (max 100)"
// @Param search query string false "Substring match over symbol, strategy_used"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} domain.Page[domain.Trade]
// @Failure 401 {object} ErrorResponse
// @Router /trades [get]
func (r *Router) listTrades(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	page, err := r.journal.ListTrades(ctx, currentUserID(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// createTrade godoc
// @Summary Record an executed trade
// @Tags trades
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.Trade
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /trades [post]
func (r *Router) createTrade(c *fiber.Ctx) error {
	payload, images, cleanup, err := extractPayload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	trade, err := r.journal.CreateTrade(ctx, currentUserID(c), payload, images)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(trade)
}

// getTrade godoc
// @Summary Get one trade
// @Tags trades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trade ID"
// @Success 200 {object} domain.Trade
// @Failure 404 {object} ErrorResponse
// @Router /trades/{id} [get]
func (r *Router) getTrade(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 5*time.Second)
	defer cancel()

	trade, err := r.journal.GetTrade(ctx, currentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(trade)
}

// updateTrade godoc
// @Summary Update a trade
// @Tags trades
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trade ID"
// @Success 200 {object} domain.Trade
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /trades/{id} [put]
func (r *Router) updateTrade(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payload, images, cleanup, err := extractPayload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	trade, err := r.journal.UpdateTrade(ctx, currentUserID(c), id, payload, images)
	if err != nil {
		return err
	}
	return c.JSON(trade)
}

// deleteTrade godoc
// @Summary Delete a trade
// @Tags trades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trade ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /trades/{id} [delete]
func (r *Router) deleteTrade(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	if err := r.journal.DeleteTrade(ctx, currentUserID(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "trade deleted"})
}

// --- trade logs ---

// listTradeLogs godoc
// @Summary List trade journal entries
// @Tags trade-logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (max 100)"
// @Param search query string false "Substring match over symbol, trading_strategy"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} domain.Page[domain.TradeLog]
// @Failure 401 {object} ErrorResponse
// @Router /trade-logs [get]
func (r *Router) listTradeLogs(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	page, err := r.journal.ListTradeLogs(ctx, currentUserID(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// createTradeLog godoc
// @Summary Create a trade journal entry
// @Tags trade-logs
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.TradeLog
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /trade-logs [post]
func (r *Router) createTradeLog(c *fiber.Ctx) error {
	payload, images, cleanup, err := extractPayload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	log, err := r.journal.CreateTradeLog(ctx, currentUserID(c), payload, images)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

// getTradeLog godoc
// @Summary Get one trade journal entry
// @Tags trade-logs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trade log ID"
// @Success 200 {object} domain.TradeLog
// @Failure 404 {object} ErrorResponse
// @Router /trade-logs/{id} [get]
func (r *Router) getTradeLog(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 5*time.Second)
	defer cancel()

	log, err := r.journal.GetTradeLog(ctx, currentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(log)
}

// updateTradeLog godoc
// @Summary Update a trade journal entry
// @Tags trade-logs
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trade log ID"
// @Success 200 {object} domain.TradeLog
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /trade-logs/{id} [put]
func (r *Router) updateTradeLog(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payload, images, cleanup, err := extractPayload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	log, err := r.journal.UpdateTradeLog(ctx, currentUserID(c), id, payload, images)
	if err != nil {
		return err
	}
	return c.JSON(log)
}

// deleteTradeLog godoc
// @Summary Delete a trade journal entry
// @Tags trade-logs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trade log ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /trade-logs/{id} [delete]
func (r *Router) deleteTradeLog(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	if err := r.journal.DeleteTradeLog(ctx, currentUserID(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "trade log deleted"})
}
