package model

import (
	"time"

	"github.com/google/uuid"
)

// SchoolClass is a teaching group, e.g. "Grade 4 West".
type SchoolClass struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	Name      string     `gorm:"not null;size:80" json:"name"`
	Level     string     `gorm:"size:30" json:"level,omitempty"`
	Stream    string     `gorm:"size:30" json:"stream,omitempty"`
	TeacherID *uuid.UUID `gorm:"type:uuid;index" json:"teacher_id,omitempty"`
	CreatedAt time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"default:now()" json:"updated_at"`

	// Relations
	Teacher *Staff `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

// TableName specifies the table name for GORM
func (SchoolClass) TableName() string {
	return "classes"
}

type Subject struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subjects_school_code" json:"school_id"`
	Code      string    `gorm:"not null;size:20;uniqueIndex:idx_subjects_school_code" json:"code"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Subject) TableName() string {
	return "subjects"
}
