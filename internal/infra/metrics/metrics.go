// Package metrics concentra os contadores de domínio expostos em /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewaySends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_sends_total",
			Help: "Total number of messaging gateway send attempts",
		},
		[]string{"status"},
	)

	triggerFires = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trigger_fires_total",
			Help: "Total number of trigger fires",
		},
		[]string{"type"},
	)

	pendingTimers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trigger_pending_timers",
			Help: "Number of armed trigger timers across sessions",
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tenant_sessions_active",
			Help: "Number of tenant sessions with a live subscription",
		},
	)

	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Total number of leads created",
		},
		[]string{"origin"},
	)
)

func RecordGatewaySend(status string) {
	gatewaySends.WithLabelValues(status).Inc()
}

func RecordTriggerFire(triggerType string) {
	triggerFires.WithLabelValues(triggerType).Inc()
}

func AddPendingTimers(delta int) {
	pendingTimers.Add(float64(delta))
}

func RecordSessionStarted() {
	activeSessions.Inc()
}

func RecordSessionEnded() {
	activeSessions.Dec()
}

func RecordLeadCreated(origin string) {
	leadsCreated.WithLabelValues(origin).Inc()
}
