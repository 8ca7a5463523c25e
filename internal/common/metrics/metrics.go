// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_total",
			Help: "Total number of messages handled, by resolved intent",
		},
		[]string{"intent"},
	)

	MessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_message_duration_seconds",
			Help: "Duration of message handling in seconds",
		},
		[]string{"intent"},
	)

	FlowsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_flows_started_total",
			Help: "Total number of multi-turn flows started",
		},
		[]string{"intent"},
	)

	FlowsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_flows_completed_total",
			Help: "Total number of multi-turn flows completed, by outcome",
		},
		[]string{"intent", "outcome"},
	)

	ActiveFlows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assistant_flows_active",
			Help: "Number of conversations currently inside a multi-turn flow",
		},
		[]string{"intent"},
	)
)
