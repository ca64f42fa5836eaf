package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormUserRepository{db: db}, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&UserModel{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
		}

		model := toUserModel(*user)
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		*user = model.toDomain()
		return nil
	})
}

func (r *GormUserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return model.toDomain(), nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return model.toDomain(), nil
}

func (r *GormUserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&UserModel{}).
			Where("email = ? AND id <> ?", user.Email, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
		}

		model := toUserModel(*user)
		result := tx.Model(&UserModel{}).
			Where("id = ?", user.ID).
			Select("*").
			Omit("id", "created_at").
			Updates(&model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Delete removes the account and everything it owns in one transaction.
func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&TradeLogModel{},
			&TradeModel{},
			&AnalysisModel{},
			&StrategyModel{},
			&NotificationModel{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&UserModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *GormUserRepository) CountOwned(ctx context.Context, userID int64) (domain.ProfileCounts, error) {
	var counts domain.ProfileCounts

	db := r.db.WithContext(ctx)
	if err := db.Model(&StrategyModel{}).Where("user_id = ?", userID).Count(&counts.Strategies).Error; err != nil {
		return domain.ProfileCounts{}, err
	}
	if err := db.Model(&TradeModel{}).Where("user_id = ?", userID).Count(&counts.Trades).Error; err != nil {
		return domain.ProfileCounts{}, err
	}
	if err := db.Model(&AnalysisModel{}).Where("user_id = ?", userID).Count(&counts.Analyses).Error; err != nil {
		return domain.ProfileCounts{}, err
	}
	return counts, nil
}
