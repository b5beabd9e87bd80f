package repository

import (
	"context"

	"github.com/google/uuid"

	"schoolhub/internal/domain/billing"
	"schoolhub/internal/domain/model"
)

// PlanRepository mirrors the compiled-in catalog into the database for
// reporting joins.
type PlanRepository interface {
	// Sync upserts every catalog plan.
	Sync(ctx context.Context, plans []model.SubscriptionPlan) error
	List(ctx context.Context) ([]model.SubscriptionPlan, error)
}

// InvoiceRepository persists invoices. Invoices are never deleted.
type InvoiceRepository interface {
	// CreateWithLineItems inserts the invoice and its line items in one
	// transaction.
	CreateWithLineItems(ctx context.Context, invoice *model.Invoice, items []model.InvoiceLineItem) error

	// GetByID returns the invoice with line items and payments preloaded.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)

	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID, offset, limit int) ([]model.Invoice, int64, error)

	// MarkSent moves a draft invoice to sent.
	MarkSent(ctx context.Context, id uuid.UUID) error

	// CollectionTotals buckets every invoice total into paid, pending and
	// overdue at read time, and returns the invoice count.
	CollectionTotals(ctx context.Context) (billing.CollectionTotals, int64, error)
}

// PaymentRepository persists payments against invoices.
type PaymentRepository interface {
	// Record inserts the payment and, when completed payments now cover
	// the invoice total, flips the invoice to paid — all in one
	// transaction together with the audit row.
	Record(ctx context.Context, payment *model.Payment, actorID *uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.Payment, error)
}

// PaymentMethodRepository stores a school's saved payment methods.
type PaymentMethodRepository interface {
	Create(ctx context.Context, pm *model.PaymentMethod) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.PaymentMethod, error)
	// Delete soft-deletes the payment method.
	Delete(ctx context.Context, id uuid.UUID) error
}
