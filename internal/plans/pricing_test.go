package plans

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
)

func planWithPrices(monthly, quarterly, semiannual, annual string) *models.SubscriptionPlan {
	return &models.SubscriptionPlan{
		PriceMonthly:    decimal.RequireFromString(monthly),
		PriceQuarterly:  decimal.RequireFromString(quarterly),
		PriceSemiannual: decimal.RequireFromString(semiannual),
		PriceAnnual:     decimal.RequireFromString(annual),
	}
}

func TestPriceForCycle(t *testing.T) {
	plan := planWithPrices("3.00", "7.50", "15.00", "30.00")

	assert.True(t, PriceForCycle(plan, enums.BillingCycleMonthly).Equal(decimal.RequireFromString("3.00")))
	assert.True(t, PriceForCycle(plan, enums.BillingCycleQuarterly).Equal(decimal.RequireFromString("7.50")))
	assert.True(t, PriceForCycle(plan, enums.BillingCycleSemiannual).Equal(decimal.RequireFromString("15.00")))
	assert.True(t, PriceForCycle(plan, enums.BillingCycleAnnual).Equal(decimal.RequireFromString("30.00")))
}

func TestPriceForCycleUnknownFallsBackToMonthly(t *testing.T) {
	plan := planWithPrices("3.00", "7.50", "15.00", "30.00")
	got := PriceForCycle(plan, enums.BillingCycle("weekly"))
	assert.True(t, got.Equal(decimal.RequireFromString("3.00")))
}

func TestSavingsPercentage(t *testing.T) {
	tests := []struct {
		name  string
		plan  *models.SubscriptionPlan
		cycle enums.BillingCycle
		want  int
	}{
		{"monthly is never discounted", planWithPrices("3.00", "7.50", "15.00", "30.00"), enums.BillingCycleMonthly, 0},
		{"quarterly 7.50 vs 9.00", planWithPrices("3.00", "7.50", "15.00", "30.00"), enums.BillingCycleQuarterly, 17},
		{"semiannual 15 vs 18", planWithPrices("3.00", "7.50", "15.00", "30.00"), enums.BillingCycleSemiannual, 17},
		{"annual 30 vs 36", planWithPrices("3.00", "7.50", "15.00", "30.00"), enums.BillingCycleAnnual, 17},
		{"annual 100 vs 120", planWithPrices("10.00", "25.00", "50.00", "100.00"), enums.BillingCycleAnnual, 17},
		{"exactly half", planWithPrices("2.00", "3.00", "12.00", "24.00"), enums.BillingCycleQuarterly, 50},
		{"free monthly baseline reports zero", planWithPrices("0.00", "5.00", "10.00", "20.00"), enums.BillingCycleAnnual, 0},
		{"more expensive cycle goes negative", planWithPrices("1.00", "4.00", "6.00", "12.00"), enums.BillingCycleQuarterly, -33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SavingsPercentage(tt.plan, tt.cycle))
		})
	}
}
