package billing

import "github.com/shopspring/decimal"

// PlanChange describes the pricing outcome of switching plans.
type PlanChange struct {
	IsUpgrade       bool            `json:"is_upgrade"`
	PriceDifference decimal.Decimal `json:"price_difference"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	TargetPrice     decimal.Decimal `json:"target_price"`
}

// CalculatePlanChange compares the current and target plan at the given
// billing cycle. The difference is the whole-period price delta; elapsed
// time in the current period is not prorated. Upgrades charge the
// difference, downgrades credit it on the next invoice. Selecting the
// same plan yields a zero difference and is treated as a no-op by callers.
func CalculatePlanChange(current, target Slug, cycle Cycle) (*PlanChange, error) {
	currentPlan, err := GetPlan(current)
	if err != nil {
		return nil, err
	}
	targetPlan, err := GetPlan(target)
	if err != nil {
		return nil, err
	}

	currentPrice, err := currentPlan.Price(cycle)
	if err != nil {
		return nil, err
	}
	targetPrice, err := targetPlan.Price(cycle)
	if err != nil {
		return nil, err
	}

	return &PlanChange{
		IsUpgrade:       targetPrice.GreaterThan(currentPrice),
		PriceDifference: targetPrice.Sub(currentPrice).Abs(),
		CurrentPrice:    currentPrice,
		TargetPrice:     targetPrice,
	}, nil
}
