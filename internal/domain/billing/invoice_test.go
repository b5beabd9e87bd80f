package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"schoolhub/internal/domain/billing"
)

func TestComputeTax(t *testing.T) {
	tests := []struct {
		amount string
		tax    string
		total  string
	}{
		{amount: "99", tax: "14.85", total: "113.85"},
		{amount: "199", tax: "29.85", total: "228.85"},
		{amount: "0", tax: "0", total: "0"},
		{amount: "0.10", tax: "0.02", total: "0.12"},
		{amount: "2990", tax: "448.5", total: "3438.5"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			tax := billing.ComputeTax(amount)
			assert.True(t, tax.Equal(decimal.RequireFromString(tt.tax)), "tax: got %s want %s", tax, tt.tax)

			total := billing.InvoiceTotal(amount)
			assert.True(t, total.Equal(decimal.RequireFromString(tt.total)), "total: got %s want %s", total, tt.total)
			assert.True(t, total.Equal(amount.Add(tax)))
		})
	}
}

func TestCollectionRate(t *testing.T) {
	t.Run("zero invoices yields zero, not NaN", func(t *testing.T) {
		rate := billing.CollectionRate(billing.CollectionTotals{})
		assert.True(t, rate.IsZero())
	})

	t.Run("fully collected is 100", func(t *testing.T) {
		rate := billing.CollectionRate(billing.CollectionTotals{
			Paid: decimal.NewFromInt(500),
		})
		assert.True(t, rate.Equal(decimal.NewFromInt(100)))
	})

	t.Run("partial collection", func(t *testing.T) {
		rate := billing.CollectionRate(billing.CollectionTotals{
			Paid:    decimal.NewFromInt(750),
			Pending: decimal.NewFromInt(150),
			Overdue: decimal.NewFromInt(100),
		})
		assert.True(t, rate.Equal(decimal.NewFromInt(75)))
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		rate := billing.CollectionRate(billing.CollectionTotals{
			Paid:    decimal.NewFromInt(1),
			Pending: decimal.NewFromInt(2),
		})
		assert.True(t, rate.Equal(decimal.RequireFromString("33.33")))
	})
}
