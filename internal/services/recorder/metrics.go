package recorder

import (
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	runs       *prometheus.CounterVec
	failures   *prometheus.CounterVec
	outcomes   *prometheus.CounterVec
	latency    prometheus.Histogram
	duration   prometheus.Histogram
	historyLen prometheus.Gauge
}

// NewMetrics registers the recorder collectors with reg. A nil reg keeps them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_runs_total", Help: "Recorder invocations by trigger",
		}, []string{"trigger"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_failures_total", Help: "Invocations that did not persist their record",
		}, []string{"kind"}),
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_probe_outcomes_total", Help: "Probe outcomes",
		}, []string{"result"}),
		latency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "recorder_probe_latency_seconds",
			Help:    "Probe latency",
			Buckets: prometheus.DefBuckets,
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "recorder_run_duration_seconds",
			Help:    "Whole invocation duration",
			Buckets: prometheus.DefBuckets,
		}),
		historyLen: f.NewGauge(prometheus.GaugeOpts{
			Name: "recorder_history_length", Help: "Records in the history after the last write",
		}),
	}
}

func (m *Metrics) observeProbe(r probe.Record) {
	m.outcomes.WithLabelValues(r.Outcome.String()).Inc()
	m.latency.Observe((time.Duration(r.LatencyMillis) * time.Millisecond).Seconds())
}
