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

type admissionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAdmissionRepository creates a new admission repository
func NewAdmissionRepository(db *gorm.DB, logger *zap.Logger) repository.AdmissionRepository {
	return &admissionRepository{db: db, logger: logger}
}

func (r *admissionRepository) Create(ctx context.Context, admission *model.Admission) error {
	err := r.db.WithContext(ctx).Create(admission).Error
	if err != nil {
		r.logger.Error("Failed to create admission",
			zap.String("school_id", admission.SchoolID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create admission: %w", err)
	}
	return nil
}

func (r *admissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Admission, error) {
	var admission model.Admission

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&admission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrAdmissionNotFound
		}
		r.logger.Error("Failed to get admission",
			zap.String("admission_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}

	return &admission, nil
}

func (r *admissionRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, status string, offset, limit int) ([]model.Admission, int64, error) {
	var admissions []model.Admission
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Admission{}).
		Where("school_id = ?", schoolID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count admissions",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count admissions: %w", err)
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&admissions).Error
	if err != nil {
		r.logger.Error("Failed to list admissions",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list admissions: %w", err)
	}

	return admissions, total, nil
}

// Approve enrolls the applicant: the student row, the admission decision
// and the subscription's student counter all change in one transaction.
func (r *admissionRepository) Approve(ctx context.Context, admission *model.Admission, student *model.Student, decidedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			r.logger.Error("Failed to create student from admission",
				zap.String("admission_id", admission.ID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to create student: %w", err)
		}

		now := time.Now()
		result := tx.Model(&model.Admission{}).
			Where("id = ? AND status = ?", admission.ID, model.AdmissionStatusPending).
			Updates(map[string]interface{}{
				"status":     model.AdmissionStatusApproved,
				"decided_at": &now,
				"decided_by": decidedBy,
				"student_id": student.ID,
				"updated_at": now,
			})
		if result.Error != nil {
			r.logger.Error("Failed to approve admission",
				zap.String("admission_id", admission.ID.String()),
				zap.Error(result.Error))
			return fmt.Errorf("failed to approve admission: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainErrors.ErrAdmissionAlreadyDecided
		}

		err := tx.Model(&model.Subscription{}).
			Where("school_id = ?", admission.SchoolID).
			UpdateColumn("students_count", gorm.Expr("students_count + 1")).Error
		if err != nil {
			r.logger.Error("Failed to bump student usage counter",
				zap.String("school_id", admission.SchoolID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to update usage counter: %w", err)
		}

		admission.Status = model.AdmissionStatusApproved
		admission.StudentID = &student.ID
		return nil
	})
}

func (r *admissionRepository) Reject(ctx context.Context, admission *model.Admission, decidedBy uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Admission{}).
		Where("id = ? AND status = ?", admission.ID, model.AdmissionStatusPending).
		Updates(map[string]interface{}{
			"status":     model.AdmissionStatusRejected,
			"decided_at": &now,
			"decided_by": decidedBy,
			"updated_at": now,
		})

	if result.Error != nil {
		r.logger.Error("Failed to reject admission",
			zap.String("admission_id", admission.ID.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to reject admission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrAdmissionAlreadyDecided
	}

	admission.Status = model.AdmissionStatusRejected
	return nil
}
