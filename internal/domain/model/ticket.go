package model

import (
	"time"

	"github.com/google/uuid"
)

// Ticket status constants
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// Ticket priority constants
const (
	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
)

type SupportTicket struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Subject   string    `gorm:"not null;size:200" json:"subject"`
	Body      string    `gorm:"not null" json:"body"`
	Priority  string    `gorm:"not null;size:10;default:'medium'" json:"priority"`
	Status    string    `gorm:"not null;size:20;default:'open';index" json:"status"`
	OpenedBy  uuid.UUID `gorm:"type:uuid;not null" json:"opened_by"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (SupportTicket) TableName() string {
	return "support_tickets"
}
