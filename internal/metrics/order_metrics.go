package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики оформления заказов.
type OrderMetrics struct {
	ordersCreated    prometheus.Counter
	ordersRejected   *prometheus.CounterVec
	stockDecremented prometheus.Counter
	createDuration   prometheus.Histogram
	inFlight         prometheus.Gauge
}

// NewOrderMetrics регистрирует метрики в глобальном реестре Prometheus.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer регистрирует метрики в переданном реестре.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	return &OrderMetrics{
		ordersCreated: NewCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersRejected: NewCounterVec(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_rejected_total",
			Help: "Total number of rejected order requests by reason",
		}, []string{"reason"}),
		stockDecremented: NewCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_stock_units_decremented_total",
			Help: "Total number of stock units written off by created orders",
		}),
		createDuration: NewHistogram(registerer, prometheus.HistogramOpts{
			Name:    "checkout_create_order_duration_seconds",
			Help:    "Duration of order creation in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		inFlight: NewGauge(registerer, prometheus.GaugeOpts{
			Name: "checkout_create_order_in_flight",
			Help: "Number of order creations currently in progress",
		}),
	}
}

// RecordOrderCreated учитывает созданный заказ и списанные единицы товара.
func (m *OrderMetrics) RecordOrderCreated(units int64) {
	m.ordersCreated.Inc()
	if units > 0 {
		m.stockDecremented.Add(float64(units))
	}
}

// RecordOrderRejected увеличивает счётчик отказов с указанной причиной.
func (m *OrderMetrics) RecordOrderRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

// StartCreate отмечает начало оформления и возвращает функцию завершения.
func (m *OrderMetrics) StartCreate() func() {
	started := time.Now()
	m.inFlight.Inc()
	return func() {
		m.inFlight.Dec()
		m.createDuration.Observe(time.Since(started).Seconds())
	}
}
