package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) (*GormNotificationRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormNotificationRepository{db: db}, nil
}

func (r *GormNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	model := toNotificationModel(*notification)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*notification = model.toDomain()
	return nil
}

func (r *GormNotificationRepository) GetByID(ctx context.Context, userID, id int64) (domain.Notification, error) {
	var model NotificationModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Notification{}, domain.ErrNotFound
		}
		return domain.Notification{}, err
	}
	return model.toDomain(), nil
}

func (r *GormNotificationRepository) List(ctx context.Context, userID int64, q domain.ListQuery, unreadOnly bool) (domain.Page[domain.Notification], error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&NotificationModel{}).Where("user_id = ?", userID)
	if unreadOnly {
		base = base.Where("is_read = ?", false)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return domain.Page[domain.Notification]{}, err
	}

	var models []NotificationModel
	err := base.Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.PerPage).
		Find(&models).Error
	if err != nil {
		return domain.Page[domain.Notification]{}, err
	}

	items := make([]domain.Notification, len(models))
	for i, model := range models {
		items[i] = model.toDomain()
	}

	return domain.Page[domain.Notification]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, total),
	}, nil
}

func (r *GormNotificationRepository) MarkRead(ctx context.Context, userID, id int64) (domain.Notification, error) {
	var model NotificationModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&NotificationModel{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_read", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("id = ?", id).First(&model).Error
	})
	if err != nil {
		return domain.Notification{}, err
	}
	return model.toDomain(), nil
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *GormNotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *GormNotificationRepository) Delete(ctx context.Context, userID, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&NotificationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
