// Package observability holds the Prometheus collectors for the compiler
// service surfaces. The library core stays metrics-free; the facade and
// the HTTP adapter record here.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the compiler's collectors so callers can register them
// on any registry (tests use a private one).
type Metrics struct {
	Compiles        *prometheus.CounterVec
	CompileDuration prometheus.Histogram
	RulesEmitted    prometheus.Counter
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autograph_compiles_total",
				Help: "Total number of compile invocations by outcome",
			},
			[]string{"status"},
		),
		CompileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "autograph_compile_duration_seconds",
				Help: "Duration of compile invocations",
			},
		),
		RulesEmitted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "autograph_rules_emitted_total",
				Help: "Total number of automations emitted",
			},
		),
	}
	reg.MustRegister(m.Compiles, m.CompileDuration, m.RulesEmitted)
	return m
}

// Status labels for the Compiles counter.
const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
)
