package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRefunded  InvoiceStatus = "refunded"
)

// Scan implements sql.Scanner interface
func (s *InvoiceStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = InvoiceStatus(v)
	case []byte:
		*s = InvoiceStatus(v)
	default:
		*s = InvoiceStatusDraft
	}
	return nil
}

// Value implements driver.Valuer interface
func (s InvoiceStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Invoice is an audit-trail record; rows are never deleted. Total always
// equals Amount + Tax, and a paid invoice always carries PaidDate.
type Invoice struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SubscriptionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"subscription_id"`
	Number         string          `gorm:"unique;not null;size:30" json:"number"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Tax            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status         InvoiceStatus   `gorm:"type:invoice_status;not null;default:'draft'" json:"status"`
	IssueDate      time.Time       `gorm:"not null" json:"issue_date"`
	DueDate        time.Time       `gorm:"not null;index" json:"due_date"`
	PaidDate       *time.Time      `json:"paid_date,omitempty"`
	CreatedAt      time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"default:now()" json:"updated_at"`

	// Relations
	Subscription *Subscription     `gorm:"foreignKey:SubscriptionID" json:"subscription,omitempty"`
	LineItems    []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"line_items,omitempty"`
	Payments     []Payment         `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// TableName specifies the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLineItem is one billed line on an invoice
type InvoiceLineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string          `gorm:"not null;size:200" json:"description"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}
