package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

var tradeSortable = sortableSet(
	"id", "user_id", "strategy_id", "symbol", "entry_price", "exit_price",
	"quantity", "trade_type", "strategy_used", "entry_reason", "exit_reason",
	"emotions", "lessons_learned", "tags", "notes", "profit_loss",
	"entry_time", "exit_time", "created_at", "updated_at",
)

type GormTradeRepository struct {
	db *gorm.DB
}

func NewGormTradeRepository(db *gorm.DB) (*GormTradeRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTradeRepository{db: db}, nil
}

func (r *GormTradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	model := toTradeModel(*trade)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*trade = model.toDomain()
	return nil
}

func (r *GormTradeRepository) GetByID(ctx context.Context, userID, id int64) (domain.Trade, error) {
	var model TradeModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Trade{}, domain.ErrNotFound
		}
		return domain.Trade{}, err
	}
	return model.toDomain(), nil
}

func (r *GormTradeRepository) List(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Trade], error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&TradeModel{}).Where("user_id = ?", userID)
	base = applySearch(base, q.Search, "symbol", "strategy_used")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return domain.Page[domain.Trade]{}, err
	}

	var models []TradeModel
	err := applySort(base, q, tradeSortable).
		Offset(q.Offset()).
		Limit(q.PerPage).
		Find(&models).Error
	if err != nil {
		return domain.Page[domain.Trade]{}, err
	}

	items := make([]domain.Trade, len(models))
	for i, model := range models {
		items[i] = model.toDomain()
	}

	return domain.Page[domain.Trade]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, total),
	}, nil
}

func (r *GormTradeRepository) Update(ctx context.Context, trade *domain.Trade) error {
	model := toTradeModel(*trade)
	result := r.db.WithContext(ctx).Model(&TradeModel{}).
		Where("id = ? AND user_id = ?", trade.ID, trade.UserID).
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

// Delete detaches dependent trade logs instead of removing them; journal
// entries outlive the trade they reference.
func (r *GormTradeRepository) Delete(ctx context.Context, userID, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&TradeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		return tx.Model(&TradeLogModel{}).
			Where("trade_id = ? AND user_id = ?", id, userID).
			Update("trade_id", nil).Error
	})
}
