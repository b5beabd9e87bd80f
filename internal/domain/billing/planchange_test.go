package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"schoolhub/internal/domain/billing"
	domainErrors "schoolhub/internal/domain/errors"
)

func TestCalculatePlanChange(t *testing.T) {
	t.Run("monthly upgrade charges the period difference", func(t *testing.T) {
		change, err := billing.CalculatePlanChange(billing.SlugStandard, billing.SlugPremium, billing.CycleMonthly)
		assert.NoError(t, err)
		assert.True(t, change.IsUpgrade)
		assert.True(t, change.PriceDifference.Equal(decimal.NewFromInt(100)))
		assert.True(t, change.CurrentPrice.Equal(decimal.NewFromInt(199)))
		assert.True(t, change.TargetPrice.Equal(decimal.NewFromInt(299)))
	})

	t.Run("yearly downgrade credits the period difference", func(t *testing.T) {
		change, err := billing.CalculatePlanChange(billing.SlugPremium, billing.SlugBasic, billing.CycleYearly)
		assert.NoError(t, err)
		assert.False(t, change.IsUpgrade)
		assert.True(t, change.PriceDifference.Equal(decimal.NewFromInt(2000)))
		assert.True(t, change.CurrentPrice.Equal(decimal.NewFromInt(2990)))
		assert.True(t, change.TargetPrice.Equal(decimal.NewFromInt(990)))
	})

	t.Run("same plan is a zero-difference no-op", func(t *testing.T) {
		for _, cycle := range []billing.Cycle{billing.CycleMonthly, billing.CycleYearly} {
			for _, plan := range billing.Plans() {
				change, err := billing.CalculatePlanChange(plan.Slug, plan.Slug, cycle)
				assert.NoError(t, err)
				assert.False(t, change.IsUpgrade)
				assert.True(t, change.PriceDifference.IsZero())
			}
		}
	})

	t.Run("unknown plan slugs are rejected", func(t *testing.T) {
		_, err := billing.CalculatePlanChange("enterprise", billing.SlugBasic, billing.CycleMonthly)
		assert.ErrorIs(t, err, domainErrors.ErrPlanNotFound)

		_, err = billing.CalculatePlanChange(billing.SlugBasic, "enterprise", billing.CycleMonthly)
		assert.ErrorIs(t, err, domainErrors.ErrPlanNotFound)
	})

	t.Run("invalid cycle is rejected", func(t *testing.T) {
		_, err := billing.CalculatePlanChange(billing.SlugBasic, billing.SlugPremium, "weekly")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidBillingCycle)
	})
}

// The calculator's outputs must agree with the catalog for every plan
// pair and both cycles: isUpgrade iff the target costs more, and the
// difference is the absolute price delta.
func TestPlanChangeProperties(t *testing.T) {
	plans := billing.Plans()
	for _, cycle := range []billing.Cycle{billing.CycleMonthly, billing.CycleYearly} {
		for _, current := range plans {
			for _, target := range plans {
				change, err := billing.CalculatePlanChange(current.Slug, target.Slug, cycle)
				assert.NoError(t, err)

				currentPrice, _ := current.Price(cycle)
				targetPrice, _ := target.Price(cycle)

				assert.Equal(t, targetPrice.GreaterThan(currentPrice), change.IsUpgrade,
					"%s -> %s (%s)", current.Slug, target.Slug, cycle)
				assert.True(t, change.PriceDifference.Equal(targetPrice.Sub(currentPrice).Abs()),
					"%s -> %s (%s)", current.Slug, target.Slug, cycle)
			}
		}
	}
}
