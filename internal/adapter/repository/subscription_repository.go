package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolhub/internal/domain/entity"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

type subscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger *zap.Logger) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db, logger: logger}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	err := r.db.WithContext(ctx).Create(sub).Error
	if err != nil {
		r.logger.Error("Failed to create subscription",
			zap.String("school_id", sub.SchoolID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	var sub model.Subscription

	err := r.db.WithContext(ctx).
		Preload("School").
		Where("id = ?", id).
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrSubscriptionNotFound
		}
		r.logger.Error("Failed to get subscription by ID",
			zap.String("subscription_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

func (r *subscriptionRepository) GetBySchoolID(ctx context.Context, schoolID uuid.UUID) (*model.Subscription, error) {
	var sub model.Subscription

	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("created_at DESC").
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get subscription by school ID",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

func (r *subscriptionRepository) List(ctx context.Context, status string, offset, limit int) ([]model.Subscription, int64, error) {
	var subs []model.Subscription
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Subscription{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count subscriptions", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	err := query.
		Preload("School").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		r.logger.Error("Failed to list subscriptions",
			zap.String("status", status),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return subs, total, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *model.Subscription) error {
	err := r.db.WithContext(ctx).Save(sub).Error
	if err != nil {
		r.logger.Error("Failed to update subscription",
			zap.String("subscription_id", sub.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

// UpdateStatus writes the status change and its audit row in one
// transaction so the trail can never disagree with the subscription.
func (r *subscriptionRepository) UpdateStatus(ctx context.Context, sub *model.Subscription, newStatus model.SubscriptionStatus, action string, actorID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		}
		if newStatus == model.SubscriptionStatusCancelled {
			now := time.Now()
			updates["cancelled_at"] = &now
			updates["auto_renew"] = false
		}
		if sub.Status == model.SubscriptionStatusCancelled && newStatus == model.SubscriptionStatusActive {
			updates["cancelled_at"] = nil
		}

		if err := tx.Model(&model.Subscription{}).
			Where("id = ?", sub.ID).
			Updates(updates).Error; err != nil {
			r.logger.Error("Failed to update subscription status",
				zap.String("subscription_id", sub.ID.String()),
				zap.String("action", action),
				zap.Error(err))
			return fmt.Errorf("failed to update subscription status: %w", err)
		}

		audit := &model.AuditLog{
			ActorID:  actorID,
			Action:   action,
			Entity:   "subscription",
			EntityID: sub.ID.String(),
			Detail: model.JSONB{
				"from": string(sub.Status),
				"to":   string(newStatus),
			},
		}
		if err := tx.Create(audit).Error; err != nil {
			r.logger.Error("Failed to write subscription audit row",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to write audit row: %w", err)
		}

		sub.Status = newStatus
		return nil
	})
}

// ChangePlan writes the plan switch and its audit row atomically.
func (r *subscriptionRepository) ChangePlan(ctx context.Context, sub *model.Subscription, targetSlug string, actorID *uuid.UUID, detail model.JSONB) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Subscription{}).
			Where("id = ?", sub.ID).
			Updates(map[string]interface{}{
				"plan_slug":  targetSlug,
				"updated_at": time.Now(),
			}).Error; err != nil {
			r.logger.Error("Failed to change subscription plan",
				zap.String("subscription_id", sub.ID.String()),
				zap.String("target_plan", targetSlug),
				zap.Error(err))
			return fmt.Errorf("failed to change plan: %w", err)
		}

		audit := &model.AuditLog{
			ActorID:  actorID,
			Action:   "plan_change",
			Entity:   "subscription",
			EntityID: sub.ID.String(),
			Detail:   detail,
		}
		if err := tx.Create(audit).Error; err != nil {
			r.logger.Error("Failed to write plan change audit row",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to write audit row: %w", err)
		}

		sub.PlanSlug = targetSlug
		return nil
	})
}

// CountByStatus groups the subscriptions table; the dashboard counts are
// always derived, never stored.
func (r *subscriptionRepository) CountByStatus(ctx context.Context) (*entity.SubscriptionStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("Failed to count subscriptions by status", zap.Error(err))
		return nil, fmt.Errorf("failed to count subscriptions by status: %w", err)
	}

	stats := &entity.SubscriptionStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch model.SubscriptionStatus(row.Status) {
		case model.SubscriptionStatusTrial:
			stats.Trial = row.Count
		case model.SubscriptionStatusActive:
			stats.Active = row.Count
		case model.SubscriptionStatusSuspended:
			stats.Suspended = row.Count
		case model.SubscriptionStatusCancelled:
			stats.Cancelled = row.Count
		case model.SubscriptionStatusInactive:
			stats.Inactive = row.Count
		}
	}

	return stats, nil
}
