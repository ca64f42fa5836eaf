package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

var analysisSortable = sortableSet(
	"id", "user_id", "strategy_id", "symbol", "current_price", "entry_price",
	"target_price", "stop_loss", "quantity", "trade_type", "confidence_level",
	"timeframe", "strategy_name", "technical_analysis", "fundamental_analysis",
	"additional_notes", "created_at", "updated_at",
)

type GormAnalysisRepository struct {
	db *gorm.DB
}

func NewGormAnalysisRepository(db *gorm.DB) (*GormAnalysisRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormAnalysisRepository{db: db}, nil
}

func (r *GormAnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) error {
	model := toAnalysisModel(*analysis)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*analysis = model.toDomain()
	return nil
}

func (r *GormAnalysisRepository) GetByID(ctx context.Context, userID, id int64) (domain.Analysis, error) {
	var model AnalysisModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Analysis{}, domain.ErrNotFound
		}
		return domain.Analysis{}, err
	}
	return model.toDomain(), nil
}

func (r *GormAnalysisRepository) List(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Analysis], error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&AnalysisModel{}).Where("user_id = ?", userID)
	base = applySearch(base, q.Search, "symbol", "strategy_name")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return domain.Page[domain.Analysis]{}, err
	}

	var models []AnalysisModel
	err := applySort(base, q, analysisSortable).
		Offset(q.Offset()).
		Limit(q.PerPage).
		Find(&models).Error
	if err != nil {
		return domain.Page[domain.Analysis]{}, err
	}

	items := make([]domain.Analysis, len(models))
	for i, model := range models {
		items[i] = model.toDomain()
	}

	return domain.Page[domain.Analysis]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, total),
	}, nil
}

func (r *GormAnalysisRepository) Update(ctx context.Context, analysis *domain.Analysis) error {
	model := toAnalysisModel(*analysis)
	result := r.db.WithContext(ctx).Model(&AnalysisModel{}).
		Where("id = ? AND user_id = ?", analysis.ID, analysis.UserID).
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

func (r *GormAnalysisRepository) Delete(ctx context.Context, userID, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&AnalysisModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
