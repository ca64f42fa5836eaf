package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// Sortable sets cover every scalar column; JSON columns stay out.
var strategySortable = sortableSet(
	"id", "user_id", "name", "category", "risk_level", "timeframe",
	"description", "trading_rules", "additional_notes", "created_at", "updated_at",
)

type GormStrategyRepository struct {
	db *gorm.DB
}

func NewGormStrategyRepository(db *gorm.DB) (*GormStrategyRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormStrategyRepository{db: db}, nil
}

func (r *GormStrategyRepository) Create(ctx context.Context, strategy *domain.Strategy) error {
	model := toStrategyModel(*strategy)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*strategy = model.toDomain()
	return nil
}

func (r *GormStrategyRepository) GetByID(ctx context.Context, userID, id int64) (domain.Strategy, error) {
	var model StrategyModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Strategy{}, domain.ErrNotFound
		}
		return domain.Strategy{}, err
	}
	return model.toDomain(), nil
}

func (r *GormStrategyRepository) List(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Strategy], error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&StrategyModel{}).Where("user_id = ?", userID)
	base = applySearch(base, q.Search, "name", "description", "category")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return domain.Page[domain.Strategy]{}, err
	}

	var models []StrategyModel
	err := applySort(base, q, strategySortable).
		Offset(q.Offset()).
		Limit(q.PerPage).
		Find(&models).Error
	if err != nil {
		return domain.Page[domain.Strategy]{}, err
	}

	items := make([]domain.Strategy, len(models))
	for i, model := range models {
		items[i] = model.toDomain()
	}

	return domain.Page[domain.Strategy]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, total),
	}, nil
}

func (r *GormStrategyRepository) Update(ctx context.Context, strategy *domain.Strategy) error {
	model := toStrategyModel(*strategy)
	result := r.db.WithContext(ctx).Model(&StrategyModel{}).
		Where("id = ? AND user_id = ?", strategy.ID, strategy.UserID).
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

// Delete cascades to the strategy's analyses and trades; trade logs keep
// their rows but lose the strategy reference.
func (r *GormStrategyRepository) Delete(ctx context.Context, userID, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&StrategyModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Where("strategy_id = ? AND user_id = ?", id, userID).
			Delete(&AnalysisModel{}).Error; err != nil {
			return err
		}

		var tradeIDs []int64
		if err := tx.Model(&TradeModel{}).
			Where("strategy_id = ? AND user_id = ?", id, userID).
			Pluck("id", &tradeIDs).Error; err != nil {
			return err
		}
		if len(tradeIDs) > 0 {
			if err := tx.Model(&TradeLogModel{}).
				Where("trade_id IN ?", tradeIDs).
				Update("trade_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", tradeIDs).Delete(&TradeModel{}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&TradeLogModel{}).
			Where("strategy_id = ? AND user_id = ?", id, userID).
			Update("strategy_id", nil).Error
	})
}
