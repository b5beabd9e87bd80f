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

	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{db: db, logger: logger}
}

// Record inserts the payment and settles the invoice when completed
// payments now cover its total. Everything happens in one transaction so
// a crash cannot leave a paid invoice without its payment or vice versa.
func (r *paymentRepository) Record(ctx context.Context, payment *model.Payment, actorID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice model.Invoice
		if err := tx.Where("id = ?", payment.InvoiceID).First(&invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrInvoiceNotFound
			}
			r.logger.Error("Failed to load invoice for payment",
				zap.String("invoice_id", payment.InvoiceID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		switch invoice.Status {
		case model.InvoiceStatusCancelled, model.InvoiceStatusRefunded, model.InvoiceStatusPaid:
			return domainErrors.ErrInvoiceNotPayable
		}

		if err := tx.Create(payment).Error; err != nil {
			r.logger.Error("Failed to record payment",
				zap.String("invoice_id", payment.InvoiceID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to record payment: %w", err)
		}

		// Sum completed payments including the one just written
		var covered decimal.Decimal
		err := tx.Model(&model.Payment{}).
			Where("invoice_id = ? AND status = ?", payment.InvoiceID, model.PaymentStatusCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&covered).Error
		if err != nil {
			r.logger.Error("Failed to sum invoice payments",
				zap.String("invoice_id", payment.InvoiceID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to sum invoice payments: %w", err)
		}

		if covered.GreaterThanOrEqual(invoice.Total) {
			now := time.Now()
			if err := tx.Model(&model.Invoice{}).
				Where("id = ?", invoice.ID).
				Updates(map[string]interface{}{
					"status":     model.InvoiceStatusPaid,
					"paid_date":  &now,
					"updated_at": now,
				}).Error; err != nil {
				r.logger.Error("Failed to mark invoice paid",
					zap.String("invoice_id", invoice.ID.String()),
					zap.Error(err))
				return fmt.Errorf("failed to mark invoice paid: %w", err)
			}
		}

		audit := &model.AuditLog{
			ActorID:  actorID,
			Action:   "payment_recorded",
			Entity:   "invoice",
			EntityID: invoice.ID.String(),
			Detail: model.JSONB{
				"payment_id": payment.ID.String(),
				"amount":     payment.Amount.String(),
				"method":     payment.Method,
			},
		}
		if err := tx.Create(audit).Error; err != nil {
			r.logger.Error("Failed to write payment audit row",
				zap.String("invoice_id", invoice.ID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to write audit row: %w", err)
		}

		return nil
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Preload("Invoice").
		Where("id = ?", id).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get payment",
			zap.String("payment_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment

	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		r.logger.Error("Failed to list payments",
			zap.String("invoice_id", invoiceID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}
