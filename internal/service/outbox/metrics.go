package outbox

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/checkout/internal/metrics"
)

// workerMetrics - метрики relay-воркера outbox.
type workerMetrics struct {
	publishAttempts  *prometheus.CounterVec
	pendingRecords   prometheus.Gauge
	oldestPendingAge prometheus.Gauge
}

func newWorkerMetrics(registerer prometheus.Registerer) *workerMetrics {
	return &workerMetrics{
		publishAttempts: metrics.NewCounterVec(registerer, prometheus.CounterOpts{
			Name: "checkout_outbox_publish_attempts_total",
			Help: "Total number of outbox publish attempts grouped by result.",
		}, []string{"result"}),
		pendingRecords: metrics.NewGauge(registerer, prometheus.GaugeOpts{
			Name: "checkout_outbox_pending_records",
			Help: "Current number of pending records in transactional outbox.",
		}),
		oldestPendingAge: metrics.NewGauge(registerer, prometheus.GaugeOpts{
			Name: "checkout_outbox_oldest_pending_age_seconds",
			Help: "Age in seconds of the oldest pending outbox record.",
		}),
	}
}
