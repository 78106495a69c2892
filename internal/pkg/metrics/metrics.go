package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assistant groups the collectors for the conversational pipeline.
// A nil *Assistant is valid and records nothing.
type Assistant struct {
	nodeExecutions     *prometheus.CounterVec
	generationFailures *prometheus.CounterVec
	responses          *prometheus.CounterVec
	processDuration    prometheus.Histogram
}

func NewAssistant(reg prometheus.Registerer) *Assistant {
	factory := promauto.With(reg)
	return &Assistant{
		nodeExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_assistant_node_executions_total",
				Help: "Total number of workflow node executions",
			},
			[]string{"node"},
		),
		generationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_assistant_generation_failures_total",
				Help: "Total number of failed or degraded model calls",
			},
			[]string{"stage"},
		),
		responses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_assistant_responses_total",
				Help: "Total number of replies by response type",
			},
			[]string{"type"},
		),
		processDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "storefront_assistant_process_duration_seconds",
				Help:    "End to end duration of message processing",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
		),
	}
}

func (a *Assistant) NodeExecuted(node string) {
	if a == nil {
		return
	}
	a.nodeExecutions.WithLabelValues(node).Inc()
}

func (a *Assistant) GenerationFailed(stage string) {
	if a == nil {
		return
	}
	a.generationFailures.WithLabelValues(stage).Inc()
}

func (a *Assistant) ResponseSent(responseType string, elapsed time.Duration) {
	if a == nil {
		return
	}
	a.responses.WithLabelValues(responseType).Inc()
	a.processDuration.Observe(elapsed.Seconds())
}
