package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schoolhub/internal/domain/entity"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

// EnrollmentService manages students, classes, subjects and the
// admissions pipeline.
type EnrollmentService struct {
	studentRepo   repository.StudentRepository
	classRepo     repository.ClassRepository
	subjectRepo   repository.SubjectRepository
	admissionRepo repository.AdmissionRepository
	logger        *zap.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	studentRepo repository.StudentRepository,
	classRepo repository.ClassRepository,
	subjectRepo repository.SubjectRepository,
	admissionRepo repository.AdmissionRepository,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		studentRepo:   studentRepo,
		classRepo:     classRepo,
		subjectRepo:   subjectRepo,
		admissionRepo: admissionRepo,
		logger:        logger,
	}
}

// CreateStudent enrolls a student directly, outside the admissions
// pipeline. The admission number must be unique within the school.
func (s *EnrollmentService) CreateStudent(ctx context.Context, student *model.Student) error {
	if student.Status == "" {
		student.Status = model.StudentStatusActive
	}
	return s.studentRepo.Create(ctx, student)
}

// GetStudent returns a student by ID.
func (s *EnrollmentService) GetStudent(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents returns a page of a school's students.
func (s *EnrollmentService) ListStudents(ctx context.Context, schoolID uuid.UUID, params *entity.PaginationParams) ([]model.Student, entity.PaginationMeta, error) {
	params.Validate()
	students, total, err := s.studentRepo.ListBySchool(ctx, schoolID, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, entity.PaginationMeta{}, err
	}
	return students, entity.NewPaginationMeta(params.Page, params.Limit, total), nil
}

// UpdateStudent saves mutable student fields.
func (s *EnrollmentService) UpdateStudent(ctx context.Context, student *model.Student) error {
	return s.studentRepo.Update(ctx, student)
}

// CreateClass adds a teaching group.
func (s *EnrollmentService) CreateClass(ctx context.Context, class *model.SchoolClass) error {
	return s.classRepo.Create(ctx, class)
}

// GetClass returns a class by ID.
func (s *EnrollmentService) GetClass(ctx context.Context, id uuid.UUID) (*model.SchoolClass, error) {
	return s.classRepo.GetByID(ctx, id)
}

// ListClasses returns all of a school's classes.
func (s *EnrollmentService) ListClasses(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolClass, error) {
	return s.classRepo.ListBySchool(ctx, schoolID)
}

// UpdateClass saves mutable class fields.
func (s *EnrollmentService) UpdateClass(ctx context.Context, class *model.SchoolClass) error {
	return s.classRepo.Update(ctx, class)
}

// CreateSubject adds a subject. Codes are unique within a school.
func (s *EnrollmentService) CreateSubject(ctx context.Context, subject *model.Subject) error {
	return s.subjectRepo.Create(ctx, subject)
}

// ListSubjects returns all of a school's subjects.
func (s *EnrollmentService) ListSubjects(ctx context.Context, schoolID uuid.UUID) ([]model.Subject, error) {
	return s.subjectRepo.ListBySchool(ctx, schoolID)
}

// GetSubject returns a subject by ID.
func (s *EnrollmentService) GetSubject(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// UpdateSubject saves mutable subject fields.
func (s *EnrollmentService) UpdateSubject(ctx context.Context, subject *model.Subject) error {
	return s.subjectRepo.Update(ctx, subject)
}

// SubmitAdmission files an application to enroll.
func (s *EnrollmentService) SubmitAdmission(ctx context.Context, admission *model.Admission) error {
	admission.Status = model.AdmissionStatusPending
	if err := s.admissionRepo.Create(ctx, admission); err != nil {
		return err
	}

	s.logger.Info("Admission submitted",
		zap.String("admission_id", admission.ID.String()),
		zap.String("school_id", admission.SchoolID.String()))
	return nil
}

// GetAdmission returns an admission by ID.
func (s *EnrollmentService) GetAdmission(ctx context.Context, id uuid.UUID) (*model.Admission, error) {
	return s.admissionRepo.GetByID(ctx, id)
}

// ListAdmissions returns a page of a school's admissions, optionally
// filtered by status.
func (s *EnrollmentService) ListAdmissions(ctx context.Context, schoolID uuid.UUID, status string, params *entity.PaginationParams) ([]model.Admission, entity.PaginationMeta, error) {
	params.Validate()
	admissions, total, err := s.admissionRepo.ListBySchool(ctx, schoolID, status, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, entity.PaginationMeta{}, err
	}
	return admissions, entity.NewPaginationMeta(params.Page, params.Limit, total), nil
}

// ApproveAdmission turns a pending application into a student. The
// student row, the admission decision and the subscription's usage
// counter all change in one transaction; deciding an already-decided
// admission is an error.
func (s *EnrollmentService) ApproveAdmission(ctx context.Context, id uuid.UUID, admissionNumber string, decidedBy uuid.UUID) (*model.Student, error) {
	admission, err := s.admissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admission.Status != model.AdmissionStatusPending {
		return nil, domainErrors.ErrAdmissionAlreadyDecided
	}

	if admissionNumber == "" {
		admissionNumber = defaultAdmissionNumber(admission)
	}

	student := &model.Student{
		SchoolID:        admission.SchoolID,
		AdmissionNumber: admissionNumber,
		FirstName:       admission.FirstName,
		LastName:        admission.LastName,
		DateOfBirth:     admission.DateOfBirth,
		ClassID:         admission.AppliedClassID,
		GuardianName:    admission.GuardianName,
		GuardianPhone:   admission.GuardianPhone,
		Status:          model.StudentStatusActive,
	}

	if err := s.admissionRepo.Approve(ctx, admission, student, decidedBy); err != nil {
		return nil, err
	}

	s.logger.Info("Admission approved",
		zap.String("admission_id", admission.ID.String()),
		zap.String("student_id", student.ID.String()),
		zap.String("decided_by", decidedBy.String()))

	return student, nil
}

// RejectAdmission settles a pending application without enrolling.
func (s *EnrollmentService) RejectAdmission(ctx context.Context, id uuid.UUID, decidedBy uuid.UUID) (*model.Admission, error) {
	admission, err := s.admissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admission.Status != model.AdmissionStatusPending {
		return nil, domainErrors.ErrAdmissionAlreadyDecided
	}

	if err := s.admissionRepo.Reject(ctx, admission, decidedBy); err != nil {
		return nil, err
	}
	return admission, nil
}

// defaultAdmissionNumber derives a number when the approver leaves it
// blank, e.g. ADM-2026-1A2B3C.
func defaultAdmissionNumber(admission *model.Admission) string {
	short := admission.ID.String()[:6]
	return fmt.Sprintf("ADM-%d-%s", time.Now().Year(), short)
}
