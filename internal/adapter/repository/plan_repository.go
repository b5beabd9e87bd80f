package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

type planRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB, logger *zap.Logger) repository.PlanRepository {
	return &planRepository{db: db, logger: logger}
}

// Sync upserts the catalog rows keyed by slug.
func (r *planRepository) Sync(ctx context.Context, plans []model.SubscriptionPlan) error {
	if len(plans) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "monthly_price", "yearly_price",
				"max_students", "max_teachers", "max_schools",
				"storage_gb", "features", "updated_at",
			}),
		}).
		Create(&plans).Error
	if err != nil {
		r.logger.Error("Failed to sync plan catalog", zap.Error(err))
		return fmt.Errorf("failed to sync plan catalog: %w", err)
	}

	r.logger.Info("Plan catalog synced", zap.Int("plans", len(plans)))
	return nil
}

func (r *planRepository) List(ctx context.Context) ([]model.SubscriptionPlan, error) {
	var plans []model.SubscriptionPlan

	err := r.db.WithContext(ctx).
		Order("monthly_price ASC").
		Find(&plans).Error
	if err != nil {
		r.logger.Error("Failed to list plans", zap.Error(err))
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return plans, nil
}
