package model

import (
	"time"

	"github.com/google/uuid"
)

// Student status constants
const (
	StudentStatusActive     = "active"
	StudentStatusGraduated  = "graduated"
	StudentStatusTransferred = "transferred"
	StudentStatusWithdrawn  = "withdrawn"
)

type Student struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_students_school_admission_no" json:"school_id"`
	AdmissionNumber string     `gorm:"not null;size:30;uniqueIndex:idx_students_school_admission_no" json:"admission_number"`
	FirstName       string     `gorm:"not null;size:80" json:"first_name"`
	LastName        string     `gorm:"not null;size:80" json:"last_name"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	ClassID         *uuid.UUID `gorm:"type:uuid;index" json:"class_id,omitempty"`
	GuardianName    string     `gorm:"size:150" json:"guardian_name,omitempty"`
	GuardianPhone   string     `gorm:"size:30" json:"guardian_phone,omitempty"`
	Status          string     `gorm:"not null;size:20;default:'active'" json:"status"`
	CreatedAt       time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"default:now()" json:"updated_at"`

	// Relations
	School *School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Class  *SchoolClass `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// TableName specifies the table name for GORM
func (Student) TableName() string {
	return "students"
}
