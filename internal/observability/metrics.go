package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "prediction_league"

// Metrics records prediction activity as Prometheus counters. It satisfies usecase.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	submissions *prometheus.CounterVec
	resets      *prometheus.CounterVec
	removed     *prometheus.CounterVec
	gateChecks  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "prediction_submissions_total",
				Help:      "Prediction submissions by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		resets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "prediction_resets_total",
				Help:      "Reset requests by mode",
			},
			[]string{"mode"},
		),
		removed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "predictions_removed_total",
				Help:      "Predictions deleted by resets, by mode",
			},
			[]string{"mode"},
		),
		gateChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "reveal_gate_checks_total",
				Help:      "Reveal gate evaluations by mode and result",
			},
			[]string{"mode", "allowed"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.resets,
		m.removed,
		m.gateChecks,
	)

	return m
}

func (m *Metrics) PredictionSubmitted(mode, outcome string) {
	m.submissions.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) PredictionsReset(mode string, removed int) {
	m.resets.WithLabelValues(mode).Inc()
	if removed > 0 {
		m.removed.WithLabelValues(mode).Add(float64(removed))
	}
}

func (m *Metrics) GateEvaluated(mode string, allowed bool) {
	m.gateChecks.WithLabelValues(mode, strconv.FormatBool(allowed)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
