package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/gkishore1002/TradeFlow-BE/internal/infra/repository"
)

func ApplyMigrations(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&repository.UserModel{},
		&repository.StrategyModel{},
		&repository.AnalysisModel{},
		&repository.TradeModel{},
		&repository.TradeLogModel{},
		&repository.NotificationModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
