package usecase_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"schoolhub/internal/domain/billing"
	"schoolhub/internal/domain/entity"
	"schoolhub/internal/domain/gateway"
	"schoolhub/internal/domain/model"
)

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) GetBySchoolID(ctx context.Context, schoolID uuid.UUID) (*model.Subscription, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) List(ctx context.Context, status string, offset, limit int) ([]model.Subscription, int64, error) {
	args := m.Called(ctx, status, offset, limit)
	return args.Get(0).([]model.Subscription), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, sub *model.Subscription, newStatus model.SubscriptionStatus, action string, actorID *uuid.UUID) error {
	args := m.Called(ctx, sub, newStatus, action, actorID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ChangePlan(ctx context.Context, sub *model.Subscription, targetSlug string, actorID *uuid.UUID, detail model.JSONB) error {
	args := m.Called(ctx, sub, targetSlug, actorID, detail)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) CountByStatus(ctx context.Context) (*entity.SubscriptionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionStats), args.Error(1)
}

// MockSchoolRepository is a mock implementation of SchoolRepository
type MockSchoolRepository struct {
	mock.Mock
}

func (m *MockSchoolRepository) Create(ctx context.Context, school *model.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

func (m *MockSchoolRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.School, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.School), args.Error(1)
}

func (m *MockSchoolRepository) GetBySubdomain(ctx context.Context, subdomain string) (*model.School, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.School), args.Error(1)
}

func (m *MockSchoolRepository) List(ctx context.Context, offset, limit int) ([]model.School, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]model.School), args.Get(1).(int64), args.Error(2)
}

func (m *MockSchoolRepository) Update(ctx context.Context, school *model.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) CreateWithLineItems(ctx context.Context, invoice *model.Invoice, items []model.InvoiceLineItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID, offset, limit int) ([]model.Invoice, int64, error) {
	args := m.Called(ctx, subscriptionID, offset, limit)
	return args.Get(0).([]model.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CollectionTotals(ctx context.Context) (billing.CollectionTotals, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(billing.CollectionTotals), args.Get(1).(int64), args.Error(2)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Record(ctx context.Context, payment *model.Payment, actorID *uuid.UUID) error {
	args := m.Called(ctx, payment, actorID)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]model.Payment), args.Error(1)
}

// MockPaymentMethodRepository is a mock implementation of PaymentMethodRepository
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) Create(ctx context.Context, pm *model.PaymentMethod) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.PaymentMethod, error) {
	args := m.Called(ctx, schoolID)
	return args.Get(0).([]model.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStaffRepository is a mock implementation of StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Staff), args.Error(1)
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, offset, limit int) ([]model.Staff, int64, error) {
	args := m.Called(ctx, schoolID, offset, limit)
	return args.Get(0).([]model.Staff), args.Get(1).(int64), args.Error(2)
}

func (m *MockStaffRepository) Update(ctx context.Context, staff *model.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

// MockCardGateway is a mock implementation of CardGateway
type MockCardGateway struct {
	mock.Mock
}

func (m *MockCardGateway) Name() string {
	return "mock"
}

func (m *MockCardGateway) Charge(ctx context.Context, req *gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.ChargeResult), args.Error(1)
}

// MockTokenCipher is a mock implementation of TokenCipher
type MockTokenCipher struct {
	mock.Mock
}

func (m *MockTokenCipher) Encrypt(plaintext string) (string, string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenCipher) Decrypt(ciphertext, iv string) (string, error) {
	args := m.Called(ciphertext, iv)
	return args.String(0), args.Error(1)
}
