package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a stored way for a school to settle invoices. Gateway
// tokens are AES-GCM encrypted at rest; only the masked detail (e.g. a
// card's last four digits) is ever returned to clients.
type PaymentMethod struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	Type         string     `gorm:"not null;size:20" json:"type"`
	MaskedDetail string     `gorm:"size:50" json:"masked_detail"`
	TokenCipher  string     `gorm:"column:token_cipher" json:"-"`
	TokenIV      string     `gorm:"column:token_iv" json:"-"`
	IsDefault    bool       `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"default:now()" json:"updated_at"`
	DeletedAt    *time.Time `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
