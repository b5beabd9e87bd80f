package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"schoolhub/internal/usecase"
)

type BillingHandler struct {
	billingService *usecase.BillingService
	logger         *zap.Logger
}

func NewBillingHandler(billingService *usecase.BillingService, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// IssueInvoice handles POST /api/v1/subscriptions/:id/invoices
func (h *BillingHandler) IssueInvoice(c echo.Context) error {
	subscriptionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	invoice, err := h.billingService.IssueInvoice(c.Request().Context(), subscriptionID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, invoice)
}

// ListInvoices handles GET /api/v1/subscriptions/:id/invoices
func (h *BillingHandler) ListInvoices(c echo.Context) error {
	subscriptionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	invoices, meta, err := h.billingService.ListInvoices(c.Request().Context(), subscriptionID, bindPagination(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":       invoices,
		"pagination": meta,
	})
}

// GetInvoice handles GET /api/v1/invoices/:id
func (h *BillingHandler) GetInvoice(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	invoice, err := h.billingService.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, invoice)
}

// SendInvoice handles POST /api/v1/invoices/:id/send
func (h *BillingHandler) SendInvoice(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.billingService.SendInvoice(c.Request().Context(), id); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type recordPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	Method          string          `json:"method" validate:"required,oneof=card bank_transfer mobile_money cash"`
	Reference       string          `json:"reference"`
	PaymentMethodID *string         `json:"payment_method_id" validate:"omitempty,uuid"`
}

// RecordPayment handles POST /api/v1/invoices/:id/payments
func (h *BillingHandler) RecordPayment(c echo.Context) error {
	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	input := &usecase.RecordPaymentInput{
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		ActorID:   actorID(c),
	}
	if req.PaymentMethodID != nil {
		pmID, err := uuid.Parse(*req.PaymentMethodID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment_method_id"})
		}
		input.PaymentMethodID = &pmID
	}

	payment, err := h.billingService.RecordPayment(c.Request().Context(), input)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

type addPaymentMethodRequest struct {
	Type         string `json:"type" validate:"required,oneof=card bank_transfer mobile_money"`
	Token        string `json:"token" validate:"required"`
	MaskedDetail string `json:"masked_detail"`
	IsDefault    bool   `json:"is_default"`
}

// AddPaymentMethod handles POST /api/v1/schools/:id/payment-methods
func (h *BillingHandler) AddPaymentMethod(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req addPaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	pm, err := h.billingService.AddPaymentMethod(c.Request().Context(), &usecase.AddPaymentMethodInput{
		SchoolID:     schoolID,
		Type:         req.Type,
		Token:        req.Token,
		MaskedDetail: req.MaskedDetail,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, pm)
}

// ListPaymentMethods handles GET /api/v1/schools/:id/payment-methods
func (h *BillingHandler) ListPaymentMethods(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	methods, err := h.billingService.ListPaymentMethods(c.Request().Context(), schoolID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": methods})
}

// DeletePaymentMethod handles DELETE /api/v1/payment-methods/:id
func (h *BillingHandler) DeletePaymentMethod(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.billingService.DeletePaymentMethod(c.Request().Context(), id); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStats handles GET /api/v1/billing/stats
func (h *BillingHandler) GetStats(c echo.Context) error {
	stats, err := h.billingService.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, stats)
}
