package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageWarning flags a usage counter at or over its plan maximum. Limits
// are soft: the API warns, it never blocks.
type UsageWarning struct {
	Resource string `json:"resource"`
	Used     int    `json:"used"`
	Limit    int    `json:"limit"`
}

// Usage is the current resource consumption of a subscription.
type Usage struct {
	Students      int `json:"students"`
	Teachers      int `json:"teachers"`
	StorageUsedGB int `json:"storage_used_gb"`
}

// Subscription is the API view of a school's subscription, joined with
// the catalog plan it points at.
type Subscription struct {
	ID              uuid.UUID       `json:"id"`
	SchoolID        uuid.UUID       `json:"school_id"`
	SchoolName      string          `json:"school_name,omitempty"`
	PlanSlug        string          `json:"plan_slug"`
	PlanName        string          `json:"plan_name"`
	BillingCycle    string          `json:"billing_cycle"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	NextBillingDate *time.Time      `json:"next_billing_date,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	AutoRenew       bool            `json:"auto_renew"`
	Usage           Usage           `json:"usage"`
	Warnings        []UsageWarning  `json:"warnings,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SubscriptionStats are dashboard counts derived from the subscriptions
// table at read time, never maintained as separate counters.
type SubscriptionStats struct {
	Total     int64 `json:"total"`
	Trial     int64 `json:"trial"`
	Active    int64 `json:"active"`
	Suspended int64 `json:"suspended"`
	Cancelled int64 `json:"cancelled"`
	Inactive  int64 `json:"inactive"`
}

// PaginatedSubscriptionsResponse represents a paginated subscription list
type PaginatedSubscriptionsResponse struct {
	Data       []*Subscription `json:"data"`
	Pagination PaginationMeta  `json:"pagination"`
}
