package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"schoolhub/internal/domain/billing"
	"schoolhub/internal/middleware/auth"
	"schoolhub/internal/usecase"
)

type SubscriptionHandler struct {
	subscriptionService *usecase.SubscriptionService
	logger              *zap.Logger
}

func NewSubscriptionHandler(subscriptionService *usecase.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

type createSubscriptionRequest struct {
	SchoolID     string `json:"school_id" validate:"required,uuid"`
	PlanSlug     string `json:"plan_slug" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
	AutoRenew    *bool  `json:"auto_renew"`
}

// CreateSubscription handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	var req createSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	schoolID, _ := uuid.Parse(req.SchoolID)
	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request().Context(), &usecase.CreateSubscriptionInput{
		SchoolID:     schoolID,
		PlanSlug:     req.PlanSlug,
		BillingCycle: req.BillingCycle,
		AutoRenew:    autoRenew,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, sub)
}

// ListSubscriptions handles GET /api/v1/subscriptions
func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	resp, err := h.subscriptionService.ListSubscriptions(
		c.Request().Context(),
		c.QueryParam("status"),
		bindPagination(c),
	)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetSubscription handles GET /api/v1/subscriptions/:id
func (h *SubscriptionHandler) GetSubscription(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	sub, err := h.subscriptionService.GetSubscription(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, sub)
}

// GetSchoolSubscription handles GET /api/v1/schools/:id/subscription
func (h *SubscriptionHandler) GetSchoolSubscription(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	sub, err := h.subscriptionService.GetSchoolSubscription(c.Request().Context(), schoolID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, sub)
}

type changePlanRequest struct {
	TargetPlan    string `json:"target_plan" validate:"required"`
	EffectiveDate string `json:"effective_date" validate:"omitempty,oneof=immediate next_cycle"`
}

// ChangePlan handles POST /api/v1/subscriptions/:id/change-plan
func (h *SubscriptionHandler) ChangePlan(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req changePlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.subscriptionService.ChangePlan(c.Request().Context(), id, req.TargetPlan, req.EffectiveDate, actorID(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}

// applyAction is shared by the five status action endpoints.
func (h *SubscriptionHandler) applyAction(c echo.Context, action billing.Action) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	sub, err := h.subscriptionService.ApplyAction(c.Request().Context(), id, action, actorID(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, sub)
}

// Activate handles POST /api/v1/subscriptions/:id/activate
func (h *SubscriptionHandler) Activate(c echo.Context) error {
	return h.applyAction(c, billing.ActionActivate)
}

// Suspend handles POST /api/v1/subscriptions/:id/suspend
func (h *SubscriptionHandler) Suspend(c echo.Context) error {
	return h.applyAction(c, billing.ActionSuspend)
}

// Reactivate handles POST /api/v1/subscriptions/:id/reactivate
func (h *SubscriptionHandler) Reactivate(c echo.Context) error {
	return h.applyAction(c, billing.ActionReactivate)
}

// Cancel handles POST /api/v1/subscriptions/:id/cancel
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	return h.applyAction(c, billing.ActionCancel)
}

// Deactivate handles POST /api/v1/subscriptions/:id/deactivate
func (h *SubscriptionHandler) Deactivate(c echo.Context) error {
	return h.applyAction(c, billing.ActionDeactivate)
}

// GetStats handles GET /api/v1/subscriptions/stats
func (h *SubscriptionHandler) GetStats(c echo.Context) error {
	stats, err := h.subscriptionService.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// actorID returns the authenticated staff ID for audit rows, or nil when
// the route is unauthenticated.
func actorID(c echo.Context) *uuid.UUID {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return nil
	}
	return &user.StaffID
}
