package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBillingMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewBillingMetrics(reg)
	metrics.IncRenewal("monthly", "renew")
	metrics.IncRenewal("monthly", "renew")
	metrics.AddExpirations(3)
	metrics.IncLimitDenial("profiles")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "conectlink_subscription_renewals_total", "cycle", "monthly"); err != nil {
		t.Fatalf("fetch renewals: %v", err)
	} else if got != 2 {
		t.Fatalf("expected renewals=2, got %f", got)
	}

	if mf := findMetricFamily(mfs, "conectlink_subscription_expirations_total"); mf == nil {
		t.Fatal("expirations metric not found")
	} else if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 3 {
		t.Fatalf("expected expirations=3, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "conectlink_entitlement_limit_denials_total", "resource", "profiles"); err != nil {
		t.Fatalf("fetch denials: %v", err)
	} else if got != 1 {
		t.Fatalf("expected denials=1, got %f", got)
	}
}

func TestBillingMetricsNilSafe(t *testing.T) {
	var metrics *BillingMetrics
	metrics.IncRenewal("monthly", "renew")
	metrics.AddExpirations(1)
	metrics.IncLimitDenial("products")
}
