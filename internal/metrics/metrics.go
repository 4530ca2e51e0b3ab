// Package metrics exposes Prometheus counters for the message pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reply outcomes.
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
	OutcomeEmpty  = "empty"
)

type Metrics struct {
	MessagesTotal      *prometheus.CounterVec
	RepliesTotal       *prometheus.CounterVec
	ReactionsTotal     *prometheus.CounterVec
	CommandsTotal      *prometheus.CounterVec
	CompletionDuration prometheus.Histogram
	WriteFailures      *prometheus.CounterVec
	TrackedChannels    prometheus.Gauge
}

// New registers the metrics with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MessagesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aisling_messages_total",
			Help: "Inbound messages by the trigger that fired (none when ignored)",
		}, []string{"trigger"}),
		RepliesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aisling_replies_total",
			Help: "Reply attempts by outcome",
		}, []string{"outcome"}),
		ReactionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aisling_reactions_total",
			Help: "Emoji reactions by mood and outcome",
		}, []string{"mood", "outcome"}),
		CommandsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aisling_commands_total",
			Help: "Prefix commands by name and status",
		}, []string{"command", "status"}),
		CompletionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "aisling_completion_duration_seconds",
			Help:    "Latency of completion requests",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 60},
		}),
		WriteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aisling_write_failures_total",
			Help: "Failed durable writes by target",
		}, []string{"target"}),
		TrackedChannels: f.NewGauge(prometheus.GaugeOpts{
			Name: "aisling_tracked_channels",
			Help: "Channels with an in-memory conversation history",
		}),
	}
}

func (m *Metrics) ObserveCompletion(d time.Duration) {
	m.CompletionDuration.Observe(d.Seconds())
}
