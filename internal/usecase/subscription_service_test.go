package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"schoolhub/internal/domain/billing"
	"schoolhub/internal/domain/entity"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/usecase"
)

func newSubscription(status model.SubscriptionStatus, plan, cycle string) *model.Subscription {
	return &model.Subscription{
		ID:           uuid.New(),
		SchoolID:     uuid.New(),
		PlanSlug:     plan,
		BillingCycle: cycle,
		Status:       status,
		StartDate:    time.Now().AddDate(0, -2, 0),
	}
}

func TestSubscriptionService_CreateSubscription(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("creates trial subscription", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		schoolRepo := new(MockSchoolRepository)
		service := usecase.NewSubscriptionService(subRepo, schoolRepo, logger)

		schoolID := uuid.New()
		schoolRepo.On("GetByID", ctx, schoolID).Return(&model.School{ID: schoolID, Name: "Hillcrest Academy"}, nil)
		subRepo.On("GetBySchoolID", ctx, schoolID).Return(nil, nil)
		subRepo.On("Create", ctx, mock.AnythingOfType("*model.Subscription")).Return(nil)

		sub, err := service.CreateSubscription(ctx, &usecase.CreateSubscriptionInput{
			SchoolID:     schoolID,
			PlanSlug:     "standard",
			BillingCycle: "monthly",
			AutoRenew:    true,
		})

		require.NoError(t, err)
		assert.Equal(t, "trial", sub.Status)
		assert.Equal(t, "Standard", sub.PlanName)
		assert.Equal(t, "Hillcrest Academy", sub.SchoolName)
		assert.True(t, sub.Price.Equal(billing.Plans()[1].MonthlyPrice))
		subRepo.AssertExpectations(t)
	})

	t.Run("rejects second subscription for a school", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		schoolRepo := new(MockSchoolRepository)
		service := usecase.NewSubscriptionService(subRepo, schoolRepo, logger)

		schoolID := uuid.New()
		schoolRepo.On("GetByID", ctx, schoolID).Return(&model.School{ID: schoolID}, nil)
		subRepo.On("GetBySchoolID", ctx, schoolID).Return(newSubscription(model.SubscriptionStatusActive, "basic", "monthly"), nil)

		_, err := service.CreateSubscription(ctx, &usecase.CreateSubscriptionInput{
			SchoolID:     schoolID,
			PlanSlug:     "basic",
			BillingCycle: "monthly",
		})
		assert.ErrorIs(t, err, domainErrors.ErrSchoolHasSubscription)
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		schoolRepo := new(MockSchoolRepository)
		service := usecase.NewSubscriptionService(subRepo, schoolRepo, logger)

		schoolID := uuid.New()
		schoolRepo.On("GetByID", ctx, schoolID).Return(&model.School{ID: schoolID}, nil)
		subRepo.On("GetBySchoolID", ctx, schoolID).Return(nil, nil)

		_, err := service.CreateSubscription(ctx, &usecase.CreateSubscriptionInput{
			SchoolID:     schoolID,
			PlanSlug:     "platinum",
			BillingCycle: "monthly",
		})
		assert.ErrorIs(t, err, domainErrors.ErrPlanNotFound)
	})

	t.Run("rejects unknown billing cycle", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		schoolRepo := new(MockSchoolRepository)
		service := usecase.NewSubscriptionService(subRepo, schoolRepo, logger)

		schoolID := uuid.New()
		schoolRepo.On("GetByID", ctx, schoolID).Return(&model.School{ID: schoolID}, nil)
		subRepo.On("GetBySchoolID", ctx, schoolID).Return(nil, nil)

		_, err := service.CreateSubscription(ctx, &usecase.CreateSubscriptionInput{
			SchoolID:     schoolID,
			PlanSlug:     "basic",
			BillingCycle: "weekly",
		})
		assert.ErrorIs(t, err, domainErrors.ErrInvalidBillingCycle)
	})
}

func TestSubscriptionService_ChangePlan(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("upgrade charges the whole-period difference", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		sub := newSubscription(model.SubscriptionStatusActive, "standard", "monthly")
		subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
		subRepo.On("ChangePlan", ctx, sub, "premium", (*uuid.UUID)(nil), mock.AnythingOfType("model.JSONB")).Return(nil)

		result, err := service.ChangePlan(ctx, sub.ID, "premium", "", nil)

		require.NoError(t, err)
		assert.True(t, result.IsUpgrade)
		assert.Equal(t, "100", result.PriceDifference.String())
		assert.Equal(t, entity.EffectiveImmediate, result.EffectiveDate)
		assert.NotNil(t, result.AppliedAt)
		subRepo.AssertExpectations(t)
	})

	t.Run("upgrade honors a next_cycle choice", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		sub := newSubscription(model.SubscriptionStatusActive, "standard", "monthly")
		subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
		subRepo.On("ChangePlan", ctx, sub, "premium", (*uuid.UUID)(nil), mock.MatchedBy(func(detail model.JSONB) bool {
			return detail["effective_date"] == entity.EffectiveNextCycle
		})).Return(nil)

		result, err := service.ChangePlan(ctx, sub.ID, "premium", entity.EffectiveNextCycle, nil)

		require.NoError(t, err)
		assert.True(t, result.IsUpgrade)
		assert.Equal(t, entity.EffectiveNextCycle, result.EffectiveDate)
		subRepo.AssertExpectations(t)
	})

	t.Run("unknown effective_date is rejected", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		_, err := service.ChangePlan(ctx, uuid.New(), "premium", "tomorrow", nil)

		var validationErr *domainErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		subRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("downgrade credits on the next cycle", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		sub := newSubscription(model.SubscriptionStatusActive, "premium", "yearly")
		subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
		subRepo.On("ChangePlan", ctx, sub, "basic", (*uuid.UUID)(nil), mock.AnythingOfType("model.JSONB")).Return(nil)

		result, err := service.ChangePlan(ctx, sub.ID, "basic", entity.EffectiveImmediate, nil)

		require.NoError(t, err)
		assert.False(t, result.IsUpgrade)
		assert.Equal(t, "2000", result.PriceDifference.String())
		assert.Equal(t, entity.EffectiveNextCycle, result.EffectiveDate)
	})

	t.Run("same plan applies nothing", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		sub := newSubscription(model.SubscriptionStatusActive, "basic", "monthly")
		subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)

		result, err := service.ChangePlan(ctx, sub.ID, "basic", "", nil)

		require.NoError(t, err)
		assert.True(t, result.PriceDifference.IsZero())
		assert.Nil(t, result.AppliedAt)
		subRepo.AssertNotCalled(t, "ChangePlan")
	})

	t.Run("unknown target plan", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		sub := newSubscription(model.SubscriptionStatusActive, "basic", "monthly")
		subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)

		_, err := service.ChangePlan(ctx, sub.ID, "platinum", "", nil)
		assert.ErrorIs(t, err, domainErrors.ErrPlanNotFound)
	})
}

func TestSubscriptionService_ApplyAction(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("suspend active subscription", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		sub := newSubscription(model.SubscriptionStatusActive, "basic", "monthly")
		subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
		subRepo.On("UpdateStatus", ctx, sub, model.SubscriptionStatusSuspended, "suspend", &actorID).Return(nil)

		_, err := service.ApplyAction(ctx, sub.ID, billing.ActionSuspend, &actorID)
		require.NoError(t, err)
		subRepo.AssertExpectations(t)
	})

	t.Run("suspending a suspended subscription is rejected", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		sub := newSubscription(model.SubscriptionStatusSuspended, "basic", "monthly")
		subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)

		_, err := service.ApplyAction(ctx, sub.ID, billing.ActionSuspend, &actorID)

		var transitionErr *domainErrors.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "suspended", transitionErr.From)
		subRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("reactivate cancelled subscription", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		sub := newSubscription(model.SubscriptionStatusCancelled, "basic", "monthly")
		subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
		subRepo.On("UpdateStatus", ctx, sub, model.SubscriptionStatusActive, "reactivate", &actorID).Return(nil)

		_, err := service.ApplyAction(ctx, sub.ID, billing.ActionReactivate, &actorID)
		require.NoError(t, err)
	})
}

func TestSubscriptionService_ListSubscriptions(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("paginates and filters by status", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		subs := []model.Subscription{*newSubscription(model.SubscriptionStatusActive, "basic", "monthly")}
		subRepo.On("List", ctx, "active", 20, 20).Return(subs, int64(41), nil)

		resp, err := service.ListSubscriptions(ctx, "active", &entity.PaginationParams{Page: 2, Limit: 20})

		require.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, int64(41), resp.Pagination.Total)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		subRepo := new(MockSubscriptionRepository)
		service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

		_, err := service.ListSubscriptions(ctx, "paused", &entity.PaginationParams{})

		var validationErr *domainErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		subRepo.AssertNotCalled(t, "List")
	})
}

func TestSubscriptionService_UsageWarnings(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	subRepo := new(MockSubscriptionRepository)
	service := usecase.NewSubscriptionService(subRepo, new(MockSchoolRepository), logger)

	sub := newSubscription(model.SubscriptionStatusActive, "basic", "monthly")
	sub.StudentsCount = 300 // at the basic plan limit
	sub.TeachersCount = 10
	subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)

	view, err := service.GetSubscription(ctx, sub.ID)

	require.NoError(t, err)
	require.Len(t, view.Warnings, 1)
	assert.Equal(t, "students", view.Warnings[0].Resource)
	assert.Equal(t, 300, view.Warnings[0].Limit)
}
