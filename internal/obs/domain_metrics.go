package obs

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/toko-till/internal/common"
)

// PricingMetrics counts catalog and cart outcomes. It satisfies catalog.Recorder.
type PricingMetrics struct {
	Registrations    *prometheus.CounterVec
	CartOperations   *prometheus.CounterVec
	InvoicesRendered prometheus.Counter
}

// NewPricingMetrics initialises and registers the pricing collectors. Registering
// twice against the same registry reuses the existing collectors.
func NewPricingMetrics(namespace string, reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &PricingMetrics{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Count of product and coupon registrations by outcome.",
		}, []string{"kind", "result"}),
		CartOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Count of cart add and coupon operations by outcome.",
		}, []string{"operation", "result"}),
		InvoicesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_rendered_total",
			Help:      "Number of invoices rendered.",
		}),
	}
	mustRegisterCollector(reg, m.Registrations, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Registrations = v
		}
	})
	mustRegisterCollector(reg, m.CartOperations, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.CartOperations = v
		}
	})
	mustRegisterCollector(reg, m.InvoicesRendered, func(existing prometheus.Collector) {
		if v, ok := existing.(prometheus.Counter); ok {
			m.InvoicesRendered = v
		}
	})
	return m
}

// Registration records a product or coupon registration. result is the error code, or OK.
func (m *PricingMetrics) Registration(kind string, err error) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(kind, common.ErrorCode(err)).Inc()
}

// CartOperation records an add or use call on a cart.
func (m *PricingMetrics) CartOperation(op string, err error) {
	if m == nil {
		return
	}
	m.CartOperations.WithLabelValues(op, common.ErrorCode(err)).Inc()
}

// InvoiceRendered records one rendered invoice.
func (m *PricingMetrics) InvoiceRendered() {
	if m == nil {
		return
	}
	m.InvoicesRendered.Inc()
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register metric: %w", err))
	}
}
