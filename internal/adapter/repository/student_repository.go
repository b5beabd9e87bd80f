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

type studentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB, logger *zap.Logger) repository.StudentRepository {
	return &studentRepository{db: db, logger: logger}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	err := r.db.WithContext(ctx).Create(student).Error
	if err != nil {
		r.logger.Error("Failed to create student",
			zap.String("school_id", student.SchoolID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student

	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrStudentNotFound
		}
		r.logger.Error("Failed to get student",
			zap.String("student_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return &student, nil
}

func (r *studentRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("school_id = ?", schoolID)

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count students",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	err := query.
		Preload("Class").
		Order("last_name ASC, first_name ASC").
		Offset(offset).
		Limit(limit).
		Find(&students).Error
	if err != nil {
		r.logger.Error("Failed to list students",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}

	return students, total, nil
}

func (r *studentRepository) Update(ctx context.Context, student *model.Student) error {
	err := r.db.WithContext(ctx).Save(student).Error
	if err != nil {
		r.logger.Error("Failed to update student",
			zap.String("student_id", student.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}
