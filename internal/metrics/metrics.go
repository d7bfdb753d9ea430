package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the service counters exposed on /metrics.
type Metrics struct {
	EvaluationPasses prometheus.Counter
	AlertsChecked    prometheus.Counter
	AlertsTriggered  prometheus.Counter
	QuoteFetches     prometheus.Counter
	QuoteFailures    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EvaluationPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stockwatch",
			Subsystem: "alerts",
			Name:      "evaluation_passes_total",
			Help:      "The total number of alert evaluation passes run",
		}),
		AlertsChecked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stockwatch",
			Subsystem: "alerts",
			Name:      "checked_total",
			Help:      "The total number of alert condition checks performed",
		}),
		AlertsTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stockwatch",
			Subsystem: "alerts",
			Name:      "triggered_total",
			Help:      "The total number of alerts that crossed their threshold",
		}),
		QuoteFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stockwatch",
			Subsystem: "quotes",
			Name:      "fetches_total",
			Help:      "The total number of quote fetches issued during evaluation",
		}),
		QuoteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stockwatch",
			Subsystem: "quotes",
			Name:      "failures_total",
			Help:      "The total number of quote fetches that yielded no price",
		}),
	}
	reg.MustRegister(m.EvaluationPasses, m.AlertsChecked, m.AlertsTriggered, m.QuoteFetches, m.QuoteFailures)
	return m
}
