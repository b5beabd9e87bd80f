package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"schoolhub/internal/domain/billing"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/gateway"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/usecase"
)

type billingMocks struct {
	invoiceRepo *MockInvoiceRepository
	paymentRepo *MockPaymentRepository
	methodRepo  *MockPaymentMethodRepository
	subRepo     *MockSubscriptionRepository
	gateway     *MockCardGateway
	cipher      *MockTokenCipher
}

func newBillingService(t *testing.T) (*usecase.BillingService, *billingMocks) {
	t.Helper()
	m := &billingMocks{
		invoiceRepo: new(MockInvoiceRepository),
		paymentRepo: new(MockPaymentRepository),
		methodRepo:  new(MockPaymentMethodRepository),
		subRepo:     new(MockSubscriptionRepository),
		gateway:     new(MockCardGateway),
		cipher:      new(MockTokenCipher),
	}
	service := usecase.NewBillingService(
		m.invoiceRepo, m.paymentRepo, m.methodRepo, m.subRepo,
		m.gateway, m.cipher, zap.NewNop(),
	)
	return service, m
}

func TestBillingService_IssueInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("invoice carries tax and a matching total", func(t *testing.T) {
		service, m := newBillingService(t)

		sub := newSubscription(model.SubscriptionStatusActive, "basic", "monthly")
		m.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
		m.invoiceRepo.On("CreateWithLineItems", ctx,
			mock.AnythingOfType("*model.Invoice"),
			mock.AnythingOfType("[]model.InvoiceLineItem")).Return(nil)

		invoice, err := service.IssueInvoice(ctx, sub.ID)

		require.NoError(t, err)
		assert.Equal(t, "99", invoice.Amount.String())
		assert.Equal(t, "14.85", invoice.Tax.String())
		assert.Equal(t, "113.85", invoice.Total.String())
		assert.True(t, invoice.Amount.Add(invoice.Tax).Equal(invoice.Total))
		assert.Equal(t, model.InvoiceStatusDraft, invoice.Status)
		assert.Contains(t, invoice.Number, "INV-")
		assert.True(t, invoice.DueDate.After(invoice.IssueDate))
	})

	t.Run("yearly cycle bills the yearly price", func(t *testing.T) {
		service, m := newBillingService(t)

		sub := newSubscription(model.SubscriptionStatusActive, "premium", "yearly")
		m.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
		m.invoiceRepo.On("CreateWithLineItems", ctx,
			mock.AnythingOfType("*model.Invoice"),
			mock.AnythingOfType("[]model.InvoiceLineItem")).Return(nil)

		invoice, err := service.IssueInvoice(ctx, sub.ID)

		require.NoError(t, err)
		assert.Equal(t, "2990", invoice.Amount.String())
		assert.True(t, invoice.Total.Equal(billing.InvoiceTotal(invoice.Amount)))
	})
}

func TestBillingService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	invoiceID := uuid.New()

	t.Run("bank transfer records a completed payment", func(t *testing.T) {
		service, m := newBillingService(t)
		m.paymentRepo.On("Record", ctx, mock.AnythingOfType("*model.Payment"), (*uuid.UUID)(nil)).Return(nil)

		payment, err := service.RecordPayment(ctx, &usecase.RecordPaymentInput{
			InvoiceID: invoiceID,
			Amount:    decimal.NewFromInt(50),
			Method:    model.PaymentMethodBankTransfer,
			Reference: "TRX-1009",
		})

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
		assert.NotNil(t, payment.PaidAt)
		m.paymentRepo.AssertExpectations(t)
	})

	t.Run("card payment charges the stored token", func(t *testing.T) {
		service, m := newBillingService(t)

		methodID := uuid.New()
		m.methodRepo.On("GetByID", ctx, methodID).Return(&model.PaymentMethod{
			ID:          methodID,
			TokenCipher: "ct",
			TokenIV:     "iv",
		}, nil)
		m.cipher.On("Decrypt", "ct", "iv").Return("tok_visa", nil)
		m.gateway.On("Charge", ctx, mock.MatchedBy(func(req *gateway.ChargeRequest) bool {
			return req.Token == "tok_visa" && req.Amount.Equal(decimal.NewFromInt(100))
		})).Return(&gateway.ChargeResult{ChargeID: "ch_1", Status: gateway.ChargeStatusSucceeded}, nil)
		m.paymentRepo.On("Record", ctx, mock.AnythingOfType("*model.Payment"), (*uuid.UUID)(nil)).Return(nil)

		payment, err := service.RecordPayment(ctx, &usecase.RecordPaymentInput{
			InvoiceID:       invoiceID,
			Amount:          decimal.NewFromInt(100),
			Method:          model.PaymentMethodCard,
			PaymentMethodID: &methodID,
		})

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
		require.NotNil(t, payment.GatewayChargeID)
		assert.Equal(t, "ch_1", *payment.GatewayChargeID)
	})

	t.Run("declined card records a failed payment", func(t *testing.T) {
		service, m := newBillingService(t)

		methodID := uuid.New()
		m.methodRepo.On("GetByID", ctx, methodID).Return(&model.PaymentMethod{
			ID:          methodID,
			TokenCipher: "ct",
			TokenIV:     "iv",
		}, nil)
		m.cipher.On("Decrypt", "ct", "iv").Return("tok_declined", nil)
		m.gateway.On("Charge", ctx, mock.Anything).Return(nil, &gateway.Error{
			Code:    "card_declined",
			Message: "insufficient funds",
		})
		m.paymentRepo.On("Record", ctx, mock.AnythingOfType("*model.Payment"), (*uuid.UUID)(nil)).Return(nil)

		payment, err := service.RecordPayment(ctx, &usecase.RecordPaymentInput{
			InvoiceID:       invoiceID,
			Amount:          decimal.NewFromInt(100),
			Method:          model.PaymentMethodCard,
			PaymentMethodID: &methodID,
		})

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, payment.Status)
		require.NotNil(t, payment.FailureMessage)
		assert.Equal(t, "insufficient funds", *payment.FailureMessage)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		service, _ := newBillingService(t)

		_, err := service.RecordPayment(ctx, &usecase.RecordPaymentInput{
			InvoiceID: invoiceID,
			Amount:    decimal.NewFromInt(10),
			Method:    "barter",
		})

		var validationErr *domainErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		service, _ := newBillingService(t)

		_, err := service.RecordPayment(ctx, &usecase.RecordPaymentInput{
			InvoiceID: invoiceID,
			Amount:    decimal.Zero,
			Method:    model.PaymentMethodCash,
		})

		var validationErr *domainErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestBillingService_AddPaymentMethod(t *testing.T) {
	ctx := context.Background()

	t.Run("encrypts the token before storage", func(t *testing.T) {
		service, m := newBillingService(t)

		m.cipher.On("Encrypt", "tok_visa").Return("ciphertext", "iv", nil)
		m.methodRepo.On("Create", ctx, mock.MatchedBy(func(pm *model.PaymentMethod) bool {
			return pm.TokenCipher == "ciphertext" && pm.TokenIV == "iv"
		})).Return(nil)

		pm, err := service.AddPaymentMethod(ctx, &usecase.AddPaymentMethodInput{
			SchoolID:     uuid.New(),
			Type:         "card",
			Token:        "tok_visa",
			MaskedDetail: "**** 4242",
		})

		require.NoError(t, err)
		assert.Equal(t, "ciphertext", pm.TokenCipher)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		service, _ := newBillingService(t)

		_, err := service.AddPaymentMethod(ctx, &usecase.AddPaymentMethodInput{
			SchoolID: uuid.New(),
			Type:     "card",
		})

		var validationErr *domainErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestBillingService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("collection rate derives from the buckets", func(t *testing.T) {
		service, m := newBillingService(t)

		m.invoiceRepo.On("CollectionTotals", ctx).Return(billing.CollectionTotals{
			Paid:    decimal.NewFromInt(750),
			Pending: decimal.NewFromInt(150),
			Overdue: decimal.NewFromInt(100),
		}, int64(12), nil)

		stats, err := service.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, "75", stats.CollectionRate.String())
		assert.Equal(t, int64(12), stats.InvoiceCount)
		assert.True(t, stats.OverdueAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("no invoices yields a zero rate", func(t *testing.T) {
		service, m := newBillingService(t)

		m.invoiceRepo.On("CollectionTotals", ctx).Return(billing.CollectionTotals{
			Paid:    decimal.Zero,
			Pending: decimal.Zero,
			Overdue: decimal.Zero,
		}, int64(0), nil)

		stats, err := service.Stats(ctx)

		require.NoError(t, err)
		assert.True(t, stats.CollectionRate.IsZero())
		assert.Equal(t, int64(0), stats.InvoiceCount)
	})
}
