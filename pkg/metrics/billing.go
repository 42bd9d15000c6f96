package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "conectlink"

// BillingMetrics records subscription lifecycle activity.
type BillingMetrics struct {
	renewals     *prometheus.CounterVec
	expirations  prometheus.Counter
	limitDenials *prometheus.CounterVec
}

// NewBillingMetrics registers the billing metrics on the provided registerer.
func NewBillingMetrics(reg prometheus.Registerer) *BillingMetrics {
	if reg == nil {
		return &BillingMetrics{}
	}
	renewals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "subscription_renewals_total",
		Help:      "Subscriptions created or renewed, by billing cycle and mode.",
	}, []string{"cycle", "mode"})
	expirations := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "subscription_expirations_total",
		Help:      "Subscriptions transitioned to expired.",
	})
	limitDenials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "entitlement_limit_denials_total",
		Help:      "Creations rejected because a plan limit was reached.",
	}, []string{"resource"})
	reg.MustRegister(renewals, expirations, limitDenials)
	return &BillingMetrics{
		renewals:     renewals,
		expirations:  expirations,
		limitDenials: limitDenials,
	}
}

// IncRenewal increments the renewal counter for a cycle. Mode is "renew" or "extend".
func (b *BillingMetrics) IncRenewal(cycle, mode string) {
	if b == nil || b.renewals == nil {
		return
	}
	b.renewals.WithLabelValues(normalizeLabel(cycle), normalizeLabel(mode)).Inc()
}

// AddExpirations adds to the expiration counter.
func (b *BillingMetrics) AddExpirations(n int) {
	if b == nil || b.expirations == nil || n <= 0 {
		return
	}
	b.expirations.Add(float64(n))
}

// IncLimitDenial increments the denial counter for a resource kind.
func (b *BillingMetrics) IncLimitDenial(resource string) {
	if b == nil || b.limitDenials == nil {
		return
	}
	b.limitDenials.WithLabelValues(normalizeLabel(resource)).Inc()
}
