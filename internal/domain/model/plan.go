package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionPlan mirrors the compiled-in plan catalog into the database
// so reporting queries can join against plan attributes. The seed command
// refreshes these rows; the catalog stays the source of truth.
type SubscriptionPlan struct {
	Slug         string          `gorm:"primaryKey;size:20" json:"slug"`
	Name         string          `gorm:"not null;size:50" json:"name"`
	MonthlyPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monthly_price"`
	YearlyPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"yearly_price"`
	MaxStudents  int             `gorm:"not null" json:"max_students"`
	MaxTeachers  int             `gorm:"not null" json:"max_teachers"`
	MaxSchools   int             `gorm:"not null" json:"max_schools"`
	StorageGB    int             `gorm:"not null" json:"storage_gb"`
	Features     JSONB           `gorm:"type:jsonb;default:'{}'" json:"features"`
	CreatedAt    time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
