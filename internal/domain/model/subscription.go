package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusSuspended SubscriptionStatus = "suspended"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusInactive  SubscriptionStatus = "inactive"
)

// Scan implements sql.Scanner interface
func (s *SubscriptionStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = SubscriptionStatus(v)
	case []byte:
		*s = SubscriptionStatus(v)
	default:
		*s = SubscriptionStatusInactive
	}
	return nil
}

// Value implements driver.Valuer interface
func (s SubscriptionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Subscription tracks a school's relationship to a plan. Rows are never
// hard-deleted; cancelled subscriptions stay for history.
type Subscription struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"school_id"`
	PlanSlug        string             `gorm:"not null;size:20" json:"plan_slug"`
	BillingCycle    string             `gorm:"not null;size:10;default:'monthly'" json:"billing_cycle"`
	Status          SubscriptionStatus `gorm:"type:subscription_status;not null;default:'trial'" json:"status"`
	StartDate       time.Time          `gorm:"not null" json:"start_date"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	NextBillingDate *time.Time         `json:"next_billing_date,omitempty"`
	CancelledAt     *time.Time         `json:"cancelled_at,omitempty"`
	AutoRenew       bool               `gorm:"default:true" json:"auto_renew"`

	// Usage counters checked against plan maxima as soft limits
	StudentsCount int `gorm:"default:0" json:"students_count"`
	TeachersCount int `gorm:"default:0" json:"teachers_count"`
	StorageUsedGB int `gorm:"default:0" json:"storage_used_gb"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`

	// Relations
	School *School           `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Plan   *SubscriptionPlan `gorm:"foreignKey:PlanSlug;references:Slug" json:"plan,omitempty"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
