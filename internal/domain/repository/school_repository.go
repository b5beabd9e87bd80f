package repository

import (
	"context"

	"github.com/google/uuid"

	"schoolhub/internal/domain/model"
)

type SchoolRepository interface {
	Create(ctx context.Context, school *model.School) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.School, error)
	// GetBySubdomain returns nil when the subdomain is unclaimed.
	GetBySubdomain(ctx context.Context, subdomain string) (*model.School, error)
	List(ctx context.Context, offset, limit int) ([]model.School, int64, error)
	Update(ctx context.Context, school *model.School) error
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID, offset, limit int) ([]model.Student, int64, error)
	Update(ctx context.Context, student *model.Student) error
}

type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	// GetByEmail returns nil when no staff account uses the email.
	GetByEmail(ctx context.Context, email string) (*model.Staff, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID, offset, limit int) ([]model.Staff, int64, error)
	Update(ctx context.Context, staff *model.Staff) error
}

type ClassRepository interface {
	Create(ctx context.Context, class *model.SchoolClass) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SchoolClass, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolClass, error)
	Update(ctx context.Context, class *model.SchoolClass) error
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.Subject, error)
	Update(ctx context.Context, subject *model.Subject) error
}

type AdmissionRepository interface {
	Create(ctx context.Context, admission *model.Admission) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Admission, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID, status string, offset, limit int) ([]model.Admission, int64, error)

	// Approve creates the student, settles the admission and bumps the
	// subscription's student counter in one transaction.
	Approve(ctx context.Context, admission *model.Admission, student *model.Student, decidedBy uuid.UUID) error

	Reject(ctx context.Context, admission *model.Admission, decidedBy uuid.UUID) error
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.SupportTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID, status string, offset, limit int) ([]model.SupportTicket, int64, error)
	Update(ctx context.Context, ticket *model.SupportTicket) error
}
