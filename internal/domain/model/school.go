package model

import (
	"time"

	"github.com/google/uuid"
)

// School is a tenant. Each school owns at most one current subscription.
type School struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"not null;size:150" json:"name"`
	Subdomain    string    `gorm:"unique;not null;size:63" json:"subdomain"`
	ContactEmail string    `gorm:"not null;size:150" json:"contact_email"`
	ContactPhone string    `gorm:"size:30" json:"contact_phone,omitempty"`
	Address      string    `gorm:"size:300" json:"address,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (School) TableName() string {
	return "schools"
}
