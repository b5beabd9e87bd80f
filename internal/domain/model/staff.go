package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff role constants
const (
	StaffRoleAdmin   = "admin"
	StaffRoleTeacher = "teacher"
	StaffRoleBursar  = "bursar"
)

// Staff is a school employee with API access. PasswordHash is bcrypt and
// never serialized.
type Staff struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID     uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Email        string    `gorm:"unique;not null;size:150" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"not null;size:80" json:"first_name"`
	LastName     string    `gorm:"not null;size:80" json:"last_name"`
	Role         string    `gorm:"not null;size:20;default:'teacher'" json:"role"`
	Phone        string    `gorm:"size:30" json:"phone,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:now()" json:"updated_at"`

	// Relations
	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

// TableName specifies the table name for GORM
func (Staff) TableName() string {
	return "staff_users"
}
