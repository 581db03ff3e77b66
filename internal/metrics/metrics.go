// Package metrics exposes reconciliation measurements in the Prometheus
// text format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"organizerdashboard/internal/domain"
)

// Recorder implements domain.ReconcileObserver on its own registry.
type Recorder struct {
	registry      *prometheus.Registry
	outcomes      *prometheus.CounterVec
	sectionErrors *prometheus.CounterVec
	duration      prometheus.Histogram
	remoteCalls   *prometheus.CounterVec
}

// NewRecorder registers the dashboard collectors plus the Go runtime and
// process collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_reconcile_outcomes_total",
			Help: "Saves by outcome.",
		}, []string{"outcome"}),
		sectionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_reconcile_section_errors_total",
			Help: "Errors reported by saves, by section.",
		}, []string{"section"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_reconcile_duration_seconds",
			Help:    "Wall time of a save against the event API.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_remote_calls_total",
			Help: "Calls to the event API by operation and result.",
		}, []string{"operation", "result"}),
	}
	r.registry.MustRegister(
		r.outcomes, r.sectionErrors, r.duration, r.remoteCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) ObserveCall(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.remoteCalls.WithLabelValues(operation, result).Inc()
}

func (r *Recorder) ObserveSave(_ int64, outcome domain.Outcome, d time.Duration) {
	r.outcomes.WithLabelValues(string(outcome.Kind())).Inc()
	for _, e := range outcome.Errors {
		r.sectionErrors.WithLabelValues(string(e.Section)).Inc()
	}
	r.duration.Observe(d.Seconds())
}

// Handler serves the registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
