package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

type staffRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB, logger *zap.Logger) repository.StaffRepository {
	return &staffRepository{db: db, logger: logger}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	err := r.db.WithContext(ctx).Create(staff).Error
	if err != nil {
		r.logger.Error("Failed to create staff member",
			zap.String("school_id", staff.SchoolID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create staff member: %w", err)
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var staff model.Staff

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrStaffNotFound
		}
		r.logger.Error("Failed to get staff member",
			zap.String("staff_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	return &staff, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var staff model.Staff

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get staff member by email", zap.Error(err))
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	return &staff, nil
}

func (r *staffRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, offset, limit int) ([]model.Staff, int64, error) {
	var staff []model.Staff
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Staff{}).
		Where("school_id = ?", schoolID)

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count staff",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count staff: %w", err)
	}

	err := query.
		Order("last_name ASC, first_name ASC").
		Offset(offset).
		Limit(limit).
		Find(&staff).Error
	if err != nil {
		r.logger.Error("Failed to list staff",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list staff: %w", err)
	}

	return staff, total, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	err := r.db.WithContext(ctx).Save(staff).Error
	if err != nil {
		r.logger.Error("Failed to update staff member",
			zap.String("staff_id", staff.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update staff member: %w", err)
	}
	return nil
}
