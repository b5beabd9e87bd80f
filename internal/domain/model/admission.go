package model

import (
	"time"

	"github.com/google/uuid"
)

// Admission status constants
const (
	AdmissionStatusPending  = "pending"
	AdmissionStatusApproved = "approved"
	AdmissionStatusRejected = "rejected"
)

// Admission is an application to enroll. Approval creates the Student and
// bumps the subscription's student usage counter in one transaction.
type Admission struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	FirstName      string     `gorm:"not null;size:80" json:"first_name"`
	LastName       string     `gorm:"not null;size:80" json:"last_name"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	GuardianName   string     `gorm:"size:150" json:"guardian_name,omitempty"`
	GuardianPhone  string     `gorm:"size:30" json:"guardian_phone,omitempty"`
	AppliedClassID *uuid.UUID `gorm:"type:uuid" json:"applied_class_id,omitempty"`
	Status         string     `gorm:"not null;size:20;default:'pending';index" json:"status"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	DecidedBy      *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	StudentID      *uuid.UUID `gorm:"type:uuid" json:"student_id,omitempty"`
	CreatedAt      time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Admission) TableName() string {
	return "admissions"
}
