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

type classRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *gorm.DB, logger *zap.Logger) repository.ClassRepository {
	return &classRepository{db: db, logger: logger}
}

func (r *classRepository) Create(ctx context.Context, class *model.SchoolClass) error {
	err := r.db.WithContext(ctx).Create(class).Error
	if err != nil {
		r.logger.Error("Failed to create class",
			zap.String("school_id", class.SchoolID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

func (r *classRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SchoolClass, error) {
	var class model.SchoolClass

	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("id = ?", id).
		First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrClassNotFound
		}
		r.logger.Error("Failed to get class",
			zap.String("class_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get class: %w", err)
	}

	return &class, nil
}

func (r *classRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolClass, error) {
	var classes []model.SchoolClass

	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("school_id = ?", schoolID).
		Order("level ASC, name ASC").
		Find(&classes).Error
	if err != nil {
		r.logger.Error("Failed to list classes",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	return classes, nil
}

func (r *classRepository) Update(ctx context.Context, class *model.SchoolClass) error {
	err := r.db.WithContext(ctx).Save(class).Error
	if err != nil {
		r.logger.Error("Failed to update class",
			zap.String("class_id", class.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update class: %w", err)
	}
	return nil
}

type subjectRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *gorm.DB, logger *zap.Logger) repository.SubjectRepository {
	return &subjectRepository{db: db, logger: logger}
}

func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	err := r.db.WithContext(ctx).Create(subject).Error
	if err != nil {
		r.logger.Error("Failed to create subject",
			zap.String("school_id", subject.SchoolID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	var subject model.Subject

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrSubjectNotFound
		}
		r.logger.Error("Failed to get subject",
			zap.String("subject_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return &subject, nil
}

func (r *subjectRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.Subject, error) {
	var subjects []model.Subject

	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("code ASC").
		Find(&subjects).Error
	if err != nil {
		r.logger.Error("Failed to list subjects",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	return subjects, nil
}

func (r *subjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	err := r.db.WithContext(ctx).Save(subject).Error
	if err != nil {
		r.logger.Error("Failed to update subject",
			zap.String("subject_id", subject.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update subject: %w", err)
	}
	return nil
}
