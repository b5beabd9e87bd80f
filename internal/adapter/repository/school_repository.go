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

type schoolRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db *gorm.DB, logger *zap.Logger) repository.SchoolRepository {
	return &schoolRepository{db: db, logger: logger}
}

func (r *schoolRepository) Create(ctx context.Context, school *model.School) error {
	err := r.db.WithContext(ctx).Create(school).Error
	if err != nil {
		r.logger.Error("Failed to create school",
			zap.String("subdomain", school.Subdomain),
			zap.Error(err))
		return fmt.Errorf("failed to create school: %w", err)
	}
	return nil
}

func (r *schoolRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.School, error) {
	var school model.School

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&school).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrSchoolNotFound
		}
		r.logger.Error("Failed to get school",
			zap.String("school_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	return &school, nil
}

func (r *schoolRepository) GetBySubdomain(ctx context.Context, subdomain string) (*model.School, error) {
	var school model.School

	err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&school).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get school by subdomain",
			zap.String("subdomain", subdomain),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	return &school, nil
}

func (r *schoolRepository) List(ctx context.Context, offset, limit int) ([]model.School, int64, error) {
	var schools []model.School
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.School{}).Count(&total).Error; err != nil {
		r.logger.Error("Failed to count schools", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count schools: %w", err)
	}

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&schools).Error
	if err != nil {
		r.logger.Error("Failed to list schools", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list schools: %w", err)
	}

	return schools, total, nil
}

func (r *schoolRepository) Update(ctx context.Context, school *model.School) error {
	err := r.db.WithContext(ctx).Save(school).Error
	if err != nil {
		r.logger.Error("Failed to update school",
			zap.String("school_id", school.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update school: %w", err)
	}
	return nil
}
