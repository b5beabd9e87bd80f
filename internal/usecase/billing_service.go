package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"schoolhub/internal/domain/billing"
	"schoolhub/internal/domain/entity"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/gateway"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
	"schoolhub/internal/infrastructure/crypto"
)

const (
	invoiceDueDays  = 14
	defaultCurrency = "usd"
)

// BillingService issues invoices and records payments against them.
type BillingService struct {
	invoiceRepo      repository.InvoiceRepository
	paymentRepo      repository.PaymentRepository
	methodRepo       repository.PaymentMethodRepository
	subscriptionRepo repository.SubscriptionRepository
	cardGateway      gateway.CardGateway
	cipher           crypto.TokenCipher
	logger           *zap.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	methodRepo repository.PaymentMethodRepository,
	subscriptionRepo repository.SubscriptionRepository,
	cardGateway gateway.CardGateway,
	cipher crypto.TokenCipher,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
		methodRepo:       methodRepo,
		subscriptionRepo: subscriptionRepo,
		cardGateway:      cardGateway,
		cipher:           cipher,
		logger:           logger,
	}
}

// IssueInvoice creates a draft invoice for the subscription's current
// plan period. Tax is a flat rate on the amount, rounded to cents, and
// the stored total always equals amount plus tax.
func (s *BillingService) IssueInvoice(ctx context.Context, subscriptionID uuid.UUID) (*model.Invoice, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	plan, err := billing.GetPlan(billing.Slug(sub.PlanSlug))
	if err != nil {
		return nil, err
	}
	amount, err := plan.Price(billing.Cycle(sub.BillingCycle))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := &model.Invoice{
		SubscriptionID: sub.ID,
		Number:         newInvoiceNumber(now),
		Amount:         amount,
		Tax:            billing.ComputeTax(amount),
		Total:          billing.InvoiceTotal(amount),
		Status:         model.InvoiceStatusDraft,
		IssueDate:      now,
		DueDate:        now.AddDate(0, 0, invoiceDueDays),
	}
	items := []model.InvoiceLineItem{
		{
			Description: fmt.Sprintf("%s plan (%s)", plan.Name, sub.BillingCycle),
			Quantity:    1,
			UnitPrice:   amount,
		},
	}

	if err := s.invoiceRepo.CreateWithLineItems(ctx, invoice, items); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice issued",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.String("total", invoice.Total.String()))

	return invoice, nil
}

// SendInvoice moves a draft invoice to sent.
func (s *BillingService) SendInvoice(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.MarkSent(ctx, id)
}

// GetInvoice returns an invoice with its line items and payments.
func (s *BillingService) GetInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

// ListInvoices returns a page of a subscription's invoices.
func (s *BillingService) ListInvoices(ctx context.Context, subscriptionID uuid.UUID, params *entity.PaginationParams) ([]model.Invoice, entity.PaginationMeta, error) {
	params.Validate()
	invoices, total, err := s.invoiceRepo.ListBySubscription(ctx, subscriptionID, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, entity.PaginationMeta{}, err
	}
	return invoices, entity.NewPaginationMeta(params.Page, params.Limit, total), nil
}

// RecordPaymentInput carries a payment against an invoice. For card
// payments PaymentMethodID selects the stored card to charge; other
// methods record money collected out of band.
type RecordPaymentInput struct {
	InvoiceID       uuid.UUID
	Amount          decimal.Decimal
	Method          string
	Reference       string
	PaymentMethodID *uuid.UUID
	ActorID         *uuid.UUID
}

// RecordPayment records money against an invoice. Partial payments are
// accepted; once completed payments cover the total the invoice flips to
// paid. A declined card records a failed payment rather than an error.
func (s *BillingService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*model.Payment, error) {
	if !model.ValidPaymentMethod(input.Method) {
		return nil, domainErrors.NewValidationError("unknown payment method: %s", input.Method)
	}
	if !input.Amount.IsPositive() {
		return nil, domainErrors.NewValidationError("payment amount must be positive")
	}

	payment := &model.Payment{
		InvoiceID: input.InvoiceID,
		Amount:    input.Amount,
		Method:    input.Method,
		Reference: input.Reference,
	}

	if input.Method == model.PaymentMethodCard {
		if err := s.chargeCard(ctx, input, payment); err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		payment.Status = model.PaymentStatusCompleted
		payment.PaidAt = &now
	}

	if err := s.paymentRepo.Record(ctx, payment, input.ActorID); err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", input.InvoiceID.String()),
		zap.String("method", input.Method),
		zap.String("status", payment.Status))

	return payment, nil
}

// chargeCard runs the stored card through the gateway and fills in the
// payment outcome. Gateway declines become failed payments; transport
// errors propagate.
func (s *BillingService) chargeCard(ctx context.Context, input *RecordPaymentInput, payment *model.Payment) error {
	if input.PaymentMethodID == nil {
		return domainErrors.ErrPaymentMethodNotFound
	}

	method, err := s.methodRepo.GetByID(ctx, *input.PaymentMethodID)
	if err != nil {
		return err
	}

	token, err := s.cipher.Decrypt(method.TokenCipher, method.TokenIV)
	if err != nil {
		return fmt.Errorf("failed to decrypt payment token: %w", err)
	}

	result, err := s.cardGateway.Charge(ctx, &gateway.ChargeRequest{
		Token:       token,
		Amount:      input.Amount,
		Currency:    defaultCurrency,
		Description: fmt.Sprintf("Invoice payment %s", input.InvoiceID),
	})
	if err != nil {
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) {
			msg := gwErr.Message
			payment.Status = model.PaymentStatusFailed
			payment.FailureMessage = &msg
			return nil
		}
		return err
	}

	payment.GatewayChargeID = &result.ChargeID
	if result.Status == gateway.ChargeStatusSucceeded {
		now := time.Now()
		payment.Status = model.PaymentStatusCompleted
		payment.PaidAt = &now
	} else {
		payment.Status = model.PaymentStatusFailed
	}
	return nil
}

// AddPaymentMethodInput carries a new stored payment method. Token is
// the raw gateway token; it is encrypted before it reaches the database.
type AddPaymentMethodInput struct {
	SchoolID     uuid.UUID
	Type         string
	Token        string
	MaskedDetail string
	IsDefault    bool
}

// AddPaymentMethod stores an encrypted gateway token for a school.
func (s *BillingService) AddPaymentMethod(ctx context.Context, input *AddPaymentMethodInput) (*model.PaymentMethod, error) {
	if input.Token == "" {
		return nil, domainErrors.NewValidationError("payment token is required")
	}

	ciphertext, iv, err := s.cipher.Encrypt(input.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt payment token: %w", err)
	}

	pm := &model.PaymentMethod{
		SchoolID:     input.SchoolID,
		Type:         input.Type,
		MaskedDetail: input.MaskedDetail,
		TokenCipher:  ciphertext,
		TokenIV:      iv,
		IsDefault:    input.IsDefault,
	}
	if err := s.methodRepo.Create(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

// ListPaymentMethods returns a school's stored payment methods.
func (s *BillingService) ListPaymentMethods(ctx context.Context, schoolID uuid.UUID) ([]model.PaymentMethod, error) {
	return s.methodRepo.ListBySchool(ctx, schoolID)
}

// DeletePaymentMethod soft-deletes a stored payment method.
func (s *BillingService) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	return s.methodRepo.Delete(ctx, id)
}

// Stats aggregates the invoice set at read time. Nothing is cached; the
// collection rate is recomputed from the buckets on every call.
func (s *BillingService) Stats(ctx context.Context) (*entity.BillingStats, error) {
	totals, count, err := s.invoiceRepo.CollectionTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.BillingStats{
		TotalPaid:      totals.Paid,
		TotalPending:   totals.Pending,
		TotalOverdue:   totals.Overdue,
		OverdueAmount:  totals.Overdue,
		CollectionRate: billing.CollectionRate(totals),
		InvoiceCount:   count,
	}, nil
}

// newInvoiceNumber builds a unique human-readable invoice number, e.g.
// INV-202608-4F2A1C9B.
func newInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", now.Format("200601"), suffix)
}
