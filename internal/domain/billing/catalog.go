package billing

import (
	"github.com/shopspring/decimal"

	domainErrors "schoolhub/internal/domain/errors"
)

// Slug identifies a plan tier.
type Slug string

const (
	SlugBasic    Slug = "basic"
	SlugStandard Slug = "standard"
	SlugPremium  Slug = "premium"
)

// Cycle is the billing interval of a subscription.
type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
)

// Feature is one line of a plan's feature matrix.
type Feature struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// Plan is a tier of service. The catalog is reference data compiled into
// the binary; changing it requires a deploy, not a runtime API.
type Plan struct {
	Slug         Slug            `json:"slug"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	YearlyPrice  decimal.Decimal `json:"yearly_price"`
	MaxStudents  int             `json:"max_students"`
	MaxTeachers  int             `json:"max_teachers"`
	MaxSchools   int             `json:"max_schools"`
	StorageGB    int             `json:"storage_gb"`
	Features     []Feature       `json:"features"`
}

// Price returns the plan price for the given billing cycle.
func (p *Plan) Price(cycle Cycle) (decimal.Decimal, error) {
	switch cycle {
	case CycleMonthly:
		return p.MonthlyPrice, nil
	case CycleYearly:
		return p.YearlyPrice, nil
	default:
		return decimal.Zero, domainErrors.ErrInvalidBillingCycle
	}
}

// catalog is ordered cheapest first; Plans preserves this order.
var catalog = []Plan{
	{
		Slug:         SlugBasic,
		Name:         "Basic",
		MonthlyPrice: decimal.NewFromInt(99),
		YearlyPrice:  decimal.NewFromInt(990),
		MaxStudents:  300,
		MaxTeachers:  25,
		MaxSchools:   1,
		StorageGB:    10,
		Features: []Feature{
			{Name: "Student & staff records", Included: true},
			{Name: "Classes and subjects", Included: true},
			{Name: "Admissions pipeline", Included: true},
			{Name: "Invoicing & payments", Included: true},
			{Name: "Website builder", Included: false},
			{Name: "Priority support", Included: false},
		},
	},
	{
		Slug:         SlugStandard,
		Name:         "Standard",
		MonthlyPrice: decimal.NewFromInt(199),
		YearlyPrice:  decimal.NewFromInt(1990),
		MaxStudents:  1200,
		MaxTeachers:  100,
		MaxSchools:   3,
		StorageGB:    50,
		Features: []Feature{
			{Name: "Student & staff records", Included: true},
			{Name: "Classes and subjects", Included: true},
			{Name: "Admissions pipeline", Included: true},
			{Name: "Invoicing & payments", Included: true},
			{Name: "Website builder", Included: true},
			{Name: "Priority support", Included: false},
		},
	},
	{
		Slug:         SlugPremium,
		Name:         "Premium",
		MonthlyPrice: decimal.NewFromInt(299),
		YearlyPrice:  decimal.NewFromInt(2990),
		MaxStudents:  5000,
		MaxTeachers:  400,
		MaxSchools:   10,
		StorageGB:    200,
		Features: []Feature{
			{Name: "Student & staff records", Included: true},
			{Name: "Classes and subjects", Included: true},
			{Name: "Admissions pipeline", Included: true},
			{Name: "Invoicing & payments", Included: true},
			{Name: "Website builder", Included: true},
			{Name: "Priority support", Included: true},
		},
	},
}

// GetPlan looks up a plan by slug.
func GetPlan(slug Slug) (*Plan, error) {
	for i := range catalog {
		if catalog[i].Slug == slug {
			return &catalog[i], nil
		}
	}
	return nil, domainErrors.ErrPlanNotFound
}

// Plans returns the full catalog, cheapest tier first.
func Plans() []Plan {
	plans := make([]Plan, len(catalog))
	copy(plans, catalog)
	return plans
}
