package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteTotal counts checkout quote outcomes by source (cart or items).
	QuoteTotal *prometheus.CounterVec
	// CouponApplyTotal counts coupon application outcomes.
	CouponApplyTotal *prometheus.CounterVec
	// CartMutationTotal counts cart mutation outcomes by operation.
	CartMutationTotal *prometheus.CounterVec
	// QuoteItems records the number of lines per quote request.
	QuoteItems prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_total",
			Help:      "Count of checkout quote outcomes.",
		}, []string{"source", "result"})
		CouponApplyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_apply_total",
			Help:      "Count of coupon application outcomes.",
		}, []string{"result"})
		CartMutationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutation_total",
			Help:      "Count of cart mutation outcomes by operation.",
		}, []string{"op", "result"})
		QuoteItems = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_items",
			Help:      "Number of lines per quote request.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		})

		mustRegisterCollector(reg, QuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteTotal = v
			}
		})
		mustRegisterCollector(reg, CouponApplyTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CouponApplyTotal = v
			}
		})
		mustRegisterCollector(reg, CartMutationTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartMutationTotal = v
			}
		})
		mustRegisterCollector(reg, QuoteItems, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				QuoteItems = v
			}
		})
	})
}

// ObserveQuote records a quote outcome. Safe to call before registration.
func ObserveQuote(source, result string) {
	if QuoteTotal != nil {
		QuoteTotal.WithLabelValues(source, result).Inc()
	}
}

// ObserveCouponApply records a coupon application outcome.
func ObserveCouponApply(result string) {
	if CouponApplyTotal != nil {
		CouponApplyTotal.WithLabelValues(result).Inc()
	}
}

// ObserveQuoteSize records the number of lines in a quote request.
func ObserveQuoteSize(lines int) {
	if QuoteItems != nil {
		QuoteItems.Observe(float64(lines))
	}
}

// ObserveCartMutation records a cart mutation outcome.
func ObserveCartMutation(op, result string) {
	if CartMutationTotal != nil {
		CartMutationTotal.WithLabelValues(op, result).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
