package enums

import "fmt"

// BillingCycle defines how often a subscription renews and which stored price applies.
type BillingCycle string

const (
	BillingCycleMonthly    BillingCycle = "monthly"
	BillingCycleQuarterly  BillingCycle = "quarterly"
	BillingCycleSemiannual BillingCycle = "semiannual"
	BillingCycleAnnual     BillingCycle = "annual"
)

var validBillingCycles = []BillingCycle{
	BillingCycleMonthly,
	BillingCycleQuarterly,
	BillingCycleSemiannual,
	BillingCycleAnnual,
}

// String implements fmt.Stringer.
func (b BillingCycle) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BillingCycle.
func (b BillingCycle) IsValid() bool {
	for _, candidate := range validBillingCycles {
		if candidate == b {
			return true
		}
	}
	return false
}

// Months returns the number of calendar months the cycle spans.
// Annual reports 12 for price math; date arithmetic adds calendar years instead.
func (b BillingCycle) Months() int {
	switch b {
	case BillingCycleQuarterly:
		return 3
	case BillingCycleSemiannual:
		return 6
	case BillingCycleAnnual:
		return 12
	default:
		return 1
	}
}

// ParseBillingCycle converts raw input into a BillingCycle.
func ParseBillingCycle(value string) (BillingCycle, error) {
	for _, candidate := range validBillingCycles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid billing cycle %q", value)
}

// BillingCycles returns every known cycle in renewal-length order.
func BillingCycles() []BillingCycle {
	cycles := make([]BillingCycle, len(validBillingCycles))
	copy(cycles, validBillingCycles)
	return cycles
}
