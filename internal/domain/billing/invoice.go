package billing

import "github.com/shopspring/decimal"

// TaxRate is the flat tax applied to every invoice amount.
var TaxRate = decimal.NewFromFloat(0.15)

// ComputeTax returns the tax on an invoice amount, rounded to cents.
func ComputeTax(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(TaxRate).Round(2)
}

// InvoiceTotal returns amount plus its tax. The invariant total = amount +
// tax holds by construction everywhere invoices are created.
func InvoiceTotal(amount decimal.Decimal) decimal.Decimal {
	return amount.Add(ComputeTax(amount))
}

// CollectionTotals are the per-bucket invoice sums a collection rate is
// derived from.
type CollectionTotals struct {
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
	Overdue decimal.Decimal `json:"overdue"`
}

// CollectionRate returns paid / (paid + pending + overdue) as a
// percentage rounded to two decimals. With nothing invoiced the rate is
// defined as zero.
func CollectionRate(t CollectionTotals) decimal.Decimal {
	invoiced := t.Paid.Add(t.Pending).Add(t.Overdue)
	if invoiced.IsZero() {
		return decimal.Zero
	}
	return t.Paid.Div(invoiced).Mul(decimal.NewFromInt(100)).Round(2)
}
