package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

var tradeLogSortable = sortableSet(
	"id", "user_id", "trade_id", "strategy_id", "symbol", "entry_price",
	"exit_price", "quantity", "entry_date", "exit_date", "trade_type",
	"trading_strategy", "trade_notes", "profit_loss", "created_at", "updated_at",
)

type GormTradeLogRepository struct {
	db *gorm.DB
}

func NewGormTradeLogRepository(db *gorm.DB) (*GormTradeLogRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTradeLogRepository{db: db}, nil
}

func (r *GormTradeLogRepository) Create(ctx context.Context, log *domain.TradeLog) error {
	model := toTradeLogModel(*log)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*log = model.toDomain()
	return nil
}

func (r *GormTradeLogRepository) GetByID(ctx context.Context, userID, id int64) (domain.TradeLog, error) {
	var model TradeLogModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TradeLog{}, domain.ErrNotFound
		}
		return domain.TradeLog{}, err
	}
	return model.toDomain(), nil
}

func (r *GormTradeLogRepository) List(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.TradeLog], error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&TradeLogModel{}).Where("user_id = ?", userID)
	base = applySearch(base, q.Search, "symbol", "trading_strategy")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return domain.Page[domain.TradeLog]{}, err
	}

	var models []TradeLogModel
	err := applySort(base, q, tradeLogSortable).
		Offset(q.Offset()).
		Limit(q.PerPage).
		Find(&models).Error
	if err != nil {
		return domain.Page[domain.TradeLog]{}, err
	}

	items := make([]domain.TradeLog, len(models))
	for i, model := range models {
		items[i] = model.toDomain()
	}

	return domain.Page[domain.TradeLog]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, total),
	}, nil
}

// ListFiltered feeds the strategy-wise aggregation: all matching rows in
// insertion order, no pagination.
func (r *GormTradeLogRepository) ListFiltered(ctx context.Context, userID int64, search string) ([]domain.TradeLog, error) {
	base := r.db.WithContext(ctx).Model(&TradeLogModel{}).Where("user_id = ?", userID)
	base = applySearch(base, search, "symbol", "trading_strategy")

	var models []TradeLogModel
	if err := base.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	logs := make([]domain.TradeLog, len(models))
	for i, model := range models {
		logs[i] = model.toDomain()
	}
	return logs, nil
}

func (r *GormTradeLogRepository) Update(ctx context.Context, log *domain.TradeLog) error {
	model := toTradeLogModel(*log)
	result := r.db.WithContext(ctx).Model(&TradeLogModel{}).
		Where("id = ? AND user_id = ?", log.ID, log.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormTradeLogRepository) Delete(ctx context.Context, userID, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&TradeLogModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
