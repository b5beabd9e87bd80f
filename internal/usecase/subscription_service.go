package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schoolhub/internal/domain/billing"
	"schoolhub/internal/domain/entity"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

const trialDays = 30

// SubscriptionService manages the lifecycle of school subscriptions.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	schoolRepo       repository.SchoolRepository
	logger           *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	schoolRepo repository.SchoolRepository,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		schoolRepo:       schoolRepo,
		logger:           logger,
	}
}

// CreateSubscriptionInput carries the fields needed to start a
// subscription.
type CreateSubscriptionInput struct {
	SchoolID     uuid.UUID
	PlanSlug     string
	BillingCycle string
	AutoRenew    bool
}

// CreateSubscription starts a new subscription in trial. A school can
// hold only one subscription at a time.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, input *CreateSubscriptionInput) (*entity.Subscription, error) {
	school, err := s.schoolRepo.GetByID(ctx, input.SchoolID)
	if err != nil {
		return nil, err
	}

	existing, err := s.subscriptionRepo.GetBySchoolID(ctx, input.SchoolID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainErrors.ErrSchoolHasSubscription
	}

	if _, err := billing.GetPlan(billing.Slug(input.PlanSlug)); err != nil {
		return nil, err
	}

	cycle := billing.Cycle(input.BillingCycle)
	if cycle != billing.CycleMonthly && cycle != billing.CycleYearly {
		return nil, domainErrors.ErrInvalidBillingCycle
	}

	now := time.Now()
	nextBilling := now.AddDate(0, 0, trialDays)
	sub := &model.Subscription{
		SchoolID:        input.SchoolID,
		PlanSlug:        input.PlanSlug,
		BillingCycle:    input.BillingCycle,
		Status:          model.SubscriptionStatusTrial,
		StartDate:       now,
		NextBillingDate: &nextBilling,
		AutoRenew:       input.AutoRenew,
	}

	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("Subscription created",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("school_id", input.SchoolID.String()),
		zap.String("plan", input.PlanSlug))

	sub.School = school
	return s.toEntity(sub), nil
}

// GetSubscription returns the API view of a subscription.
func (s *SubscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toEntity(sub), nil
}

// GetSchoolSubscription returns the school's current subscription.
func (s *SubscriptionService) GetSchoolSubscription(ctx context.Context, schoolID uuid.UUID) (*entity.Subscription, error) {
	sub, err := s.subscriptionRepo.GetBySchoolID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domainErrors.ErrSubscriptionNotFound
	}
	return s.toEntity(sub), nil
}

// ListSubscriptions returns a page of subscriptions, optionally filtered
// by status.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, status string, params *entity.PaginationParams) (*entity.PaginatedSubscriptionsResponse, error) {
	params.Validate()

	if status != "" && !billing.ValidStatus(billing.Status(status)) {
		return nil, domainErrors.NewValidationError("unknown status filter: %s", status)
	}

	subs, total, err := s.subscriptionRepo.List(ctx, status, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, err
	}

	views := make([]*entity.Subscription, 0, len(subs))
	for i := range subs {
		views = append(views, s.toEntity(&subs[i]))
	}

	return &entity.PaginatedSubscriptionsResponse{
		Data:       views,
		Pagination: entity.NewPaginationMeta(params.Page, params.Limit, total),
	}, nil
}

// ChangePlan switches a subscription to another catalog plan. The price
// difference is the whole-period delta between the plans at the current
// billing cycle; time already elapsed in the period is not prorated.
// Upgrades charge the difference immediately or at the next cycle per
// effectiveDate; downgrades always credit it on the next invoice.
// Changing to the current plan applies nothing.
func (s *SubscriptionService) ChangePlan(ctx context.Context, id uuid.UUID, targetSlug, effectiveDate string, actorID *uuid.UUID) (*entity.PlanChangeResult, error) {
	switch effectiveDate {
	case "":
		effectiveDate = entity.EffectiveImmediate
	case entity.EffectiveImmediate, entity.EffectiveNextCycle:
	default:
		return nil, domainErrors.NewValidationError("unknown effective_date: %s", effectiveDate)
	}

	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	change, err := billing.CalculatePlanChange(
		billing.Slug(sub.PlanSlug),
		billing.Slug(targetSlug),
		billing.Cycle(sub.BillingCycle),
	)
	if err != nil {
		return nil, err
	}

	result := &entity.PlanChangeResult{
		PlanChange:   *change,
		PreviousPlan: sub.PlanSlug,
		NewPlan:      targetSlug,
	}
	if change.IsUpgrade {
		result.EffectiveDate = effectiveDate
	} else {
		result.EffectiveDate = entity.EffectiveNextCycle
	}

	if sub.PlanSlug == targetSlug {
		return result, nil
	}

	detail := model.JSONB{
		"from":             sub.PlanSlug,
		"to":               targetSlug,
		"is_upgrade":       change.IsUpgrade,
		"price_difference": change.PriceDifference.String(),
		"effective_date":   result.EffectiveDate,
	}
	if err := s.subscriptionRepo.ChangePlan(ctx, sub, targetSlug, actorID, detail); err != nil {
		return nil, err
	}

	now := time.Now()
	result.AppliedAt = &now

	s.logger.Info("Subscription plan changed",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("from", result.PreviousPlan),
		zap.String("to", targetSlug),
		zap.Bool("is_upgrade", change.IsUpgrade))

	return result, nil
}

// ApplyAction moves a subscription through its status machine. Actions
// not listed for the current status are rejected, including repeats of
// an already-applied action.
func (s *SubscriptionService) ApplyAction(ctx context.Context, id uuid.UUID, action billing.Action, actorID *uuid.UUID) (*entity.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := billing.Transition(billing.Status(sub.Status), action)
	if err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.UpdateStatus(ctx, sub, model.SubscriptionStatus(next), string(action), actorID); err != nil {
		return nil, err
	}

	s.logger.Info("Subscription status changed",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("action", string(action)),
		zap.String("status", string(next)))

	return s.toEntity(sub), nil
}

// Stats derives dashboard counts from the subscriptions table.
func (s *SubscriptionService) Stats(ctx context.Context) (*entity.SubscriptionStats, error) {
	return s.subscriptionRepo.CountByStatus(ctx)
}

// toEntity joins the subscription row with its catalog plan and computes
// soft-limit warnings.
func (s *SubscriptionService) toEntity(sub *model.Subscription) *entity.Subscription {
	view := &entity.Subscription{
		ID:              sub.ID,
		SchoolID:        sub.SchoolID,
		PlanSlug:        sub.PlanSlug,
		BillingCycle:    sub.BillingCycle,
		Status:          string(sub.Status),
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		NextBillingDate: sub.NextBillingDate,
		CancelledAt:     sub.CancelledAt,
		AutoRenew:       sub.AutoRenew,
		Usage: entity.Usage{
			Students:      sub.StudentsCount,
			Teachers:      sub.TeachersCount,
			StorageUsedGB: sub.StorageUsedGB,
		},
		CreatedAt: sub.CreatedAt,
		UpdatedAt: sub.UpdatedAt,
	}
	if sub.School != nil {
		view.SchoolName = sub.School.Name
	}

	plan, err := billing.GetPlan(billing.Slug(sub.PlanSlug))
	if err != nil {
		// Orphaned slug; the view still renders without plan details.
		s.logger.Warn("Subscription references unknown plan",
			zap.String("subscription_id", sub.ID.String()),
			zap.String("plan_slug", sub.PlanSlug))
		return view
	}

	view.PlanName = plan.Name
	if price, err := plan.Price(billing.Cycle(sub.BillingCycle)); err == nil {
		view.Price = price
	}
	view.Warnings = usageWarnings(sub, plan)
	return view
}

// usageWarnings flags counters at or over the plan maxima. Limits are
// soft: nothing is blocked, the API only warns.
func usageWarnings(sub *model.Subscription, plan *billing.Plan) []entity.UsageWarning {
	var warnings []entity.UsageWarning
	if sub.StudentsCount >= plan.MaxStudents {
		warnings = append(warnings, entity.UsageWarning{
			Resource: "students", Used: sub.StudentsCount, Limit: plan.MaxStudents,
		})
	}
	if sub.TeachersCount >= plan.MaxTeachers {
		warnings = append(warnings, entity.UsageWarning{
			Resource: "teachers", Used: sub.TeachersCount, Limit: plan.MaxTeachers,
		})
	}
	if sub.StorageUsedGB >= plan.StorageGB {
		warnings = append(warnings, entity.UsageWarning{
			Resource: "storage", Used: sub.StorageUsedGB, Limit: plan.StorageGB,
		})
	}
	return warnings
}
