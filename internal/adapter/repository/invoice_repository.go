package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolhub/internal/domain/billing"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

type invoiceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB, logger *zap.Logger) repository.InvoiceRepository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, invoice *model.Invoice, items []model.InvoiceLineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			r.logger.Error("Failed to create invoice",
				zap.String("subscription_id", invoice.SubscriptionID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				r.logger.Error("Failed to create invoice line items",
					zap.String("invoice_id", invoice.ID.String()),
					zap.Error(err))
				return fmt.Errorf("failed to create invoice line items: %w", err)
			}
		}

		invoice.LineItems = items
		return nil
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice

	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Payments").
		Where("id = ?", id).
		First(&invoice).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrInvoiceNotFound
		}
		r.logger.Error("Failed to get invoice",
			zap.String("invoice_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return &invoice, nil
}

func (r *invoiceRepository) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID, offset, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("subscription_id = ?", subscriptionID)

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count invoices",
			zap.String("subscription_id", subscriptionID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	err := query.
		Preload("LineItems").
		Order("issue_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		r.logger.Error("Failed to list invoices",
			zap.String("subscription_id", subscriptionID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, total, nil
}

func (r *invoiceRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("id = ? AND status = ?", id, model.InvoiceStatusDraft).
		Updates(map[string]interface{}{
			"status":     model.InvoiceStatusSent,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to mark invoice sent",
			zap.String("invoice_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark invoice sent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrInvoiceNotFound
	}

	return nil
}

// CollectionTotals buckets invoice totals at read time. An invoice is
// overdue when its due date has passed and it is not paid, regardless of
// any stored status; pending is everything else unpaid.
func (r *invoiceRepository) CollectionTotals(ctx context.Context) (billing.CollectionTotals, int64, error) {
	var row struct {
		Paid    decimal.Decimal
		Pending decimal.Decimal
		Overdue decimal.Decimal
		Count   int64
	}

	err := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Select(`
			COALESCE(SUM(total) FILTER (WHERE status = 'paid'), 0) AS paid,
			COALESCE(SUM(total) FILTER (WHERE status <> 'paid' AND due_date >= now()), 0) AS pending,
			COALESCE(SUM(total) FILTER (WHERE status <> 'paid' AND due_date < now()), 0) AS overdue,
			COUNT(*) AS count`).
		Scan(&row).Error
	if err != nil {
		r.logger.Error("Failed to aggregate invoice totals", zap.Error(err))
		return billing.CollectionTotals{}, 0, fmt.Errorf("failed to aggregate invoice totals: %w", err)
	}

	return billing.CollectionTotals{
		Paid:    row.Paid,
		Pending: row.Pending,
		Overdue: row.Overdue,
	}, row.Count, nil
}
