package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

type paymentMethodRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentMethodRepository {
	return &paymentMethodRepository{db: db, logger: logger}
}

func (r *paymentMethodRepository) Create(ctx context.Context, pm *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A new default demotes the previous one
		if pm.IsDefault {
			if err := tx.Model(&model.PaymentMethod{}).
				Where("school_id = ? AND deleted_at IS NULL", pm.SchoolID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default payment method: %w", err)
			}
		}

		if err := tx.Create(pm).Error; err != nil {
			r.logger.Error("Failed to create payment method",
				zap.String("school_id", pm.SchoolID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to create payment method: %w", err)
		}
		return nil
	})
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	var pm model.PaymentMethod

	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&pm).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrPaymentMethodNotFound
		}
		r.logger.Error("Failed to get payment method",
			zap.String("payment_method_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}

	return &pm, nil
}

func (r *paymentMethodRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod

	err := r.db.WithContext(ctx).
		Where("school_id = ? AND deleted_at IS NULL", schoolID).
		Order("is_default DESC, created_at ASC").
		Find(&methods).Error
	if err != nil {
		r.logger.Error("Failed to list payment methods",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	return methods, nil
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.PaymentMethod{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": &now,
			"is_default": false,
		})

	if result.Error != nil {
		r.logger.Error("Failed to delete payment method",
			zap.String("payment_method_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete payment method: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrPaymentMethodNotFound
	}

	return nil
}
