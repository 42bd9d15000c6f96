package plans

import (
	"github.com/shopspring/decimal"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// PriceForCycle returns the stored price for the requested billing cycle.
// Unknown cycles resolve to the monthly price so stale stored values never
// break price math; boundaries are expected to validate cycles on input.
func PriceForCycle(plan *models.SubscriptionPlan, cycle enums.BillingCycle) decimal.Decimal {
	switch cycle {
	case enums.BillingCycleQuarterly:
		return plan.PriceQuarterly
	case enums.BillingCycleSemiannual:
		return plan.PriceSemiannual
	case enums.BillingCycleAnnual:
		return plan.PriceAnnual
	default:
		return plan.PriceMonthly
	}
}

// SavingsPercentage returns the whole-percent discount of a cycle's price
// against paying monthly for the same span. A free or unpriced monthly
// baseline reports zero rather than a division error.
func SavingsPercentage(plan *models.SubscriptionPlan, cycle enums.BillingCycle) int {
	baseline := plan.PriceMonthly.Mul(decimal.NewFromInt(int64(cycle.Months())))
	if baseline.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	cyclePrice := PriceForCycle(plan, cycle)
	savings := baseline.Sub(cyclePrice).Div(baseline).Mul(oneHundred)
	return int(savings.Round(0).IntPart())
}
