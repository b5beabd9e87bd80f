package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"schoolhub/internal/domain/billing"
	domainErrors "schoolhub/internal/domain/errors"
)

func TestGetPlan(t *testing.T) {
	t.Run("known slugs resolve", func(t *testing.T) {
		for _, slug := range []billing.Slug{billing.SlugBasic, billing.SlugStandard, billing.SlugPremium} {
			plan, err := billing.GetPlan(slug)
			assert.NoError(t, err)
			assert.NotNil(t, plan)
			assert.Equal(t, slug, plan.Slug)
		}
	})

	t.Run("unknown slug is rejected", func(t *testing.T) {
		plan, err := billing.GetPlan("enterprise")
		assert.Nil(t, plan)
		assert.ErrorIs(t, err, domainErrors.ErrPlanNotFound)
	})
}

func TestYearlyDiscountInvariant(t *testing.T) {
	twelve := decimal.NewFromInt(12)
	for _, plan := range billing.Plans() {
		assert.True(t, plan.YearlyPrice.LessThan(plan.MonthlyPrice.Mul(twelve)),
			"plan %s: yearly price %s must undercut 12 monthly payments of %s",
			plan.Slug, plan.YearlyPrice, plan.MonthlyPrice)
	}
}

func TestPlanPrice(t *testing.T) {
	plan, err := billing.GetPlan(billing.SlugStandard)
	assert.NoError(t, err)

	monthly, err := plan.Price(billing.CycleMonthly)
	assert.NoError(t, err)
	assert.True(t, monthly.Equal(decimal.NewFromInt(199)))

	yearly, err := plan.Price(billing.CycleYearly)
	assert.NoError(t, err)
	assert.True(t, yearly.Equal(decimal.NewFromInt(1990)))

	_, err = plan.Price("weekly")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidBillingCycle)
}
