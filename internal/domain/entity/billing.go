package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"schoolhub/internal/domain/billing"
)

// When a plan change takes effect. Upgrades honor the caller's choice;
// downgrades always wait for the next billing cycle.
const (
	EffectiveImmediate = "immediate"
	EffectiveNextCycle = "next_cycle"
)

// PlanChangeResult is the response of a plan-change request: the
// calculator output plus what was applied.
type PlanChangeResult struct {
	billing.PlanChange
	PreviousPlan  string     `json:"previous_plan"`
	NewPlan       string     `json:"new_plan"`
	EffectiveDate string     `json:"effective_date"`
	AppliedAt     *time.Time `json:"applied_at,omitempty"`
}

// BillingStats is the read-time aggregation over the invoice set.
// Nothing here is cached; every request recomputes from the database.
type BillingStats struct {
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalPending   decimal.Decimal `json:"total_pending"`
	TotalOverdue   decimal.Decimal `json:"total_overdue"`
	OverdueAmount  decimal.Decimal `json:"overdue_amount"`
	CollectionRate decimal.Decimal `json:"collection_rate"`
	InvoiceCount   int64           `json:"invoice_count"`
}
