package repository

import (
	"context"

	"github.com/google/uuid"

	"schoolhub/internal/domain/entity"
	"schoolhub/internal/domain/model"
)

// SubscriptionRepository persists subscriptions. Status changes and plan
// changes write their audit row in the same database transaction as the
// subscription update.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error

	// GetByID returns the subscription with its school preloaded.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subscription, error)

	// GetBySchoolID returns the school's current subscription, or nil when
	// it has none.
	GetBySchoolID(ctx context.Context, schoolID uuid.UUID) (*model.Subscription, error)

	// List returns a page of subscriptions, optionally filtered by status,
	// plus the unfiltered-by-page total.
	List(ctx context.Context, status string, offset, limit int) ([]model.Subscription, int64, error)

	// Update saves mutable subscription fields (cycle, auto-renew, dates,
	// usage counters).
	Update(ctx context.Context, sub *model.Subscription) error

	// UpdateStatus writes the new status plus an audit row atomically.
	UpdateStatus(ctx context.Context, sub *model.Subscription, newStatus model.SubscriptionStatus, action string, actorID *uuid.UUID) error

	// ChangePlan writes the new plan slug plus an audit row atomically.
	ChangePlan(ctx context.Context, sub *model.Subscription, targetSlug string, actorID *uuid.UUID, detail model.JSONB) error

	// CountByStatus derives the dashboard counts by grouping the table.
	CountByStatus(ctx context.Context) (*entity.SubscriptionStats, error)
}
